package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/waysgoods/inventory/internal/assets"
	"github.com/waysgoods/inventory/internal/middleware"
	"github.com/waysgoods/inventory/internal/models"
	"github.com/waysgoods/inventory/internal/service"
	"github.com/waysgoods/inventory/internal/transport"
	"github.com/waysgoods/inventory/pkg/logging"
)

type ProductHTTP struct {
	Svc    *service.ProductService
	Assets assets.Store
}

func (h *ProductHTTP) respond(p *models.Product) transport.ProductResponse {
	return transport.NewProductResponse(p, h.Assets.URL(p.Image))
}

func (h *ProductHTTP) respondAll(items []models.Product) []transport.ProductResponse {
	out := make([]transport.ProductResponse, 0, len(items))
	for i := range items {
		out = append(out, h.respond(&items[i]))
	}
	return out
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "validation", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail(validationMessage(err)))
	}

	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		l.Warn("product_create_failed", "status", 401, "reason", "missing identity")
		return c.JSON(http.StatusUnauthorized, transport.Fail("Access denied"))
	}

	image, _ := c.Get(middleware.ContextImage).(string)

	created, err := h.Svc.Create(ctx, userID, req.Name, *req.BuyPrice, *req.SellPrice, *req.Stock, image)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			l.Warn("product_create_failed", "status", 400, "reason", "duplicate name", "name", req.Name)
			return c.JSON(http.StatusBadRequest, transport.Fail("Product with the same name already exists"))
		}
		l.Error("product_create_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("product_create_success", "product_id", created.ID)
	return c.JSON(http.StatusOK, transport.Success("Data successfully added", h.respond(created)))
}

// GetProducts lists every product, or searches by name substring when the
// query parameter is present.
func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	var (
		items []models.Product
		err   error
	)
	if name := c.QueryParam("name"); name != "" {
		items, err = h.Svc.Search(ctx, name)
	} else {
		items, err = h.Svc.List(ctx)
	}
	if err != nil {
		l.Error("product_list_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.Envelope{
		Status: "Success",
		Data:   h.respondAll(items),
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_get_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid product id"))
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_get_failed", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("product_get_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.Envelope{
		Status: "Success",
		Data:   h.respond(product),
	})
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid product id"))
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.BuyPrice != nil {
		fields["buy_price"] = *req.BuyPrice
	}
	if req.SellPrice != nil {
		fields["sell_price"] = *req.SellPrice
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}

	newImage, _ := c.Get(middleware.ContextImage).(string)

	updated, err := h.Svc.Update(ctx, id, fields, newImage)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_update_failed", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("product_update_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("product_update_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.Success("Data successfully updated", h.respond(updated)))
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_delete_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid product id"))
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_failed", "status", 404, "id", id)
			return c.JSON(http.StatusNotFound, transport.Fail("Product not found"))
		}
		l.Error("product_delete_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("product_delete_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.Success("Data successfully deleted", nil))
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
