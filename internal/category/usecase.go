package category

import "context"

type UseCase interface {
	ListCategories(ctx context.Context) ([]string, error)
	InvalidateCache(ctx context.Context) error
}
