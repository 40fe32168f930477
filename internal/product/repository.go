package product

import (
	"context"

	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product/dto"
)

type Repository interface {
	// Create fails with ErrAlreadyExists, wrapping the store's own error, when
	// the id is taken.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
}

// BatchRepository is implemented by persistent stores that support the bulk
// import and seed paths.
type BatchRepository interface {
	// Upsert writes every product in one transaction. Existing ids are
	// updated in place; the rest are inserted.
	Upsert(ctx context.Context, products []model.Product, reset bool) (*dto.UpsertResult, error)
	// ReplaceAll wipes products and categories and loads the given set.
	ReplaceAll(ctx context.Context, categories []string, products []model.Product) error
	Count(ctx context.Context) (int, error)
	Columns(ctx context.Context) ([]string, error)
	Newest(ctx context.Context, n int) ([]model.Product, error)
}
