package cache

import (
	"context"
	"sync"
)

// MemoryCache keeps the list for the life of the process.
type MemoryCache struct {
	mu    sync.RWMutex
	names []string
	ok    bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get(_ context.Context) ([]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok {
		return nil, false, nil
	}
	return append([]string(nil), c.names...), true, nil
}

func (c *MemoryCache) Set(_ context.Context, names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append([]string(nil), names...)
	c.ok = true
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = nil
	c.ok = false
	return nil
}
