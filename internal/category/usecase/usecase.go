package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/catalog-service/internal/category"
	"github.com/fekuna/catalog-service/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	cache  category.Cache
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, cache category.Cache, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// ListCategories serves from the cache and falls back to the repository on
// a miss or a cache failure.
func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]string, error) {
	names, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Warn("category cache read failed", zap.Error(err))
	}
	if ok {
		return names, nil
	}

	names, err = uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, names); err != nil {
		uc.logger.Warn("category cache write failed", zap.Error(err))
	}
	return names, nil
}

func (uc *categoryUseCase) InvalidateCache(ctx context.Context) error {
	return uc.cache.Invalidate(ctx)
}
