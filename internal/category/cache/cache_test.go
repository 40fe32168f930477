package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/catalog-service/internal/category"
)

func exerciseCache(t *testing.T, c category.Cache) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, []string{"A", "B"}))
	names, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, names)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache())
}

func TestMemoryCache_EmptyListIsAHit(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Set(context.Background(), nil))
	_, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, "")
	exerciseCache(t, c)

	require.NoError(t, c.Set(context.Background(), []string{"X"}))
	assert.True(t, mr.Exists(DefaultKey))
	assert.Equal(t, 0, int(mr.TTL(DefaultKey)))
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	require.NoError(t, mr.Set(DefaultKey, "{not json"))

	_, ok, err := NewRedisCache(client, "").Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
