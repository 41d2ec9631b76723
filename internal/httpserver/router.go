package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waysgoods/inventory/internal/assets"
	"github.com/waysgoods/inventory/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP

	JWTSecret []byte

	AssetStore     assets.Store
	UploadDir      string
	UploadMaxBytes int64
	PublicPath     string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewRequestValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Static(d.PublicPath, d.UploadDir)

	authMw := middleware.NewBearerAuth(d.JWTSecret)

	createIntake := &middleware.FileIntake{
		Field:    "image",
		Store:    d.AssetStore,
		MaxBytes: d.UploadMaxBytes,
		Required: true,
	}
	updateIntake := &middleware.FileIntake{
		Field:    "image",
		Store:    d.AssetStore,
		MaxBytes: d.UploadMaxBytes,
	}

	e.POST("/login", d.AuthHandler.Login)
	e.GET("/check-auth", d.AuthHandler.CheckAuth, authMw.RequireAuth)

	products := e.Group("/products", authMw.RequireAuth)
	products.POST("", d.ProductHandler.CreateProduct, createIntake.Middleware)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, updateIntake.Middleware)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
