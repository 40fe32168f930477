package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/category"
	"github.com/fekuna/catalog-service/internal/model"
	"github.com/fekuna/catalog-service/internal/product"
	"github.com/fekuna/catalog-service/internal/product/dto"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type productUseCase struct {
	repo       product.Repository
	categories category.Cache
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewProductUseCase(repo product.Repository, categories category.Cache, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		categories: categories,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	id := strings.TrimSpace(input.ID)
	name := strings.TrimSpace(input.Name)
	if id == "" {
		return nil, errors.Wrap(product.ErrInvalidInput, "id")
	}
	if name == "" {
		return nil, errors.Wrap(product.ErrInvalidInput, "name")
	}

	desc := input.Description
	if desc.IsEmpty() {
		desc = nil
	}

	p := &model.Product{
		ID:           id,
		Name:         name,
		BaseCategory: model.DeriveBaseCategory(name),
		Description:  desc,
		Image:        strings.TrimSpace(input.Image),
		Price:        input.Price,
		CreatedAt:    uc.now().UTC().Truncate(time.Millisecond),
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// The insert may have added a category row.
	if err := uc.categories.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate category cache", zap.Error(err))
	}

	uc.logger.Info("product created", zap.String("id", p.ID), zap.String("base_category", p.BaseCategory))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	return uc.repo.FindAll(ctx, filters)
}
