package service

import (
	"context"
	"fmt"
	"time"

	"github.com/waysgoods/inventory/internal/assets"
	"github.com/waysgoods/inventory/internal/events"
	"github.com/waysgoods/inventory/internal/models"
	"github.com/waysgoods/inventory/pkg/logging"
)

// ProductRepo is the store access needed by ProductService.
type ProductRepo interface {
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
	Products(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, name string) ([]models.Product, error)
	ProductNameExists(ctx context.Context, name string) (bool, error)
	CreateProduct(ctx context.Context, prod *models.Product) error
	UpdateProductFields(ctx context.Context, id uint, fields map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductService struct {
	Repo     ProductRepo
	Assets   assets.Store
	Producer *events.Producer
}

// publish is fire-and-forget: event delivery must not fail the request.
func (s *ProductService) publish(ctx context.Context, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}

// Create inserts a product owned by userID. The name-uniqueness check is a
// plain check-then-act, concurrent creates can still race past it; the store
// carries no unique constraint, matching the accepted gap.
func (s *ProductService) Create(ctx context.Context, userID uint, name string, buyPrice, sellPrice, stock int64, image string) (*models.Product, error) {
	exists, err := s.Repo.ProductNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	prod := models.Product{
		UserID:    userID,
		Name:      name,
		BuyPrice:  buyPrice,
		SellPrice: sellPrice,
		Stock:     stock,
		Image:     image,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	created, err := s.Repo.ProductByID(ctx, prod.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})

	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.ProductByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.Products(ctx)
}

func (s *ProductService) Search(ctx context.Context, name string) ([]models.Product, error) {
	return s.Repo.SearchProducts(ctx, name)
}

// Update applies a partial field update. When newImage is set the previous
// asset is released before the single update call that writes the new
// reference.
func (s *ProductService) Update(ctx context.Context, id uint, fields map[string]any, newImage string) (*models.Product, error) {
	current, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if newImage != "" {
		if err := s.Assets.Remove(ctx, current.Image); err != nil {
			return nil, err
		}
		fields["image"] = newImage
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.Repo.UpdateProductFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_updated",
		"productID": updated.ID,
		"name":      updated.Name,
	})

	return updated, nil
}

// Delete releases the product's asset before removing the row. The row is
// looked up first so a missing product fails cleanly instead of releasing
// anything.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	current, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Assets.Remove(ctx, current.Image); err != nil {
		return err
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}
