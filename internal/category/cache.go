package category

import "context"

// Cache holds the category list between requests. Entries never expire; a
// write that can add a category must call Invalidate.
type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context) (names []string, ok bool, err error)
	Set(ctx context.Context, names []string) error
	Invalidate(ctx context.Context) error
}
