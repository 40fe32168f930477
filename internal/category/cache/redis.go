package cache

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const DefaultKey = "catalog:categories"

// RedisCache shares the list between API replicas. The key has no TTL.
type RedisCache struct {
	client *redis.Client
	key    string
}

func NewRedisCache(client *redis.Client, key string) *RedisCache {
	if key == "" {
		key = DefaultKey
	}
	return &RedisCache{client: client, key: key}
}

func (c *RedisCache) Get(ctx context.Context) ([]string, bool, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get categories")
	}
	var names []string
	if err := json.Unmarshal(val, &names); err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return names, true, nil
}

func (c *RedisCache) Set(ctx context.Context, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return errors.Wrap(err, "encode categories")
	}
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		return errors.Wrap(err, "redis set categories")
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return errors.Wrap(err, "redis del categories")
	}
	return nil
}
