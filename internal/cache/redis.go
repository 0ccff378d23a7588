package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefix for cached lookups
const cacheKeyPrefix = "lookup:"

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an already connected Redis client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetLookup retrieves a cached lookup by key
func (c *RedisCache) GetLookup(ctx context.Context, key string) (*LookupResult, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, err
	}

	var result LookupResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetLookup stores a lookup result with TTL
func (c *RedisCache) SetLookup(ctx context.Context, key string, result *LookupResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err()
}

// Close is a no-op: the client is shared and owned by the caller.
func (c *RedisCache) Close() error {
	return nil
}
