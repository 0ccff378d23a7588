package backup

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "backups:"

// redisKV is the part of *redis.Client the transport needs.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisTransport keeps one snapshot per user under backups:<user>.
type RedisTransport struct {
	client redisKV
}

func NewRedisTransport(client redisKV) *RedisTransport {
	return &RedisTransport{client: client}
}

func (t *RedisTransport) Name() string { return "redis" }

func (t *RedisTransport) Put(ctx context.Context, user string, data []byte) error {
	return t.client.Set(ctx, redisKeyPrefix+user, data, 0).Err()
}

func (t *RedisTransport) Get(ctx context.Context, user string) ([]byte, error) {
	data, err := t.client.Get(ctx, redisKeyPrefix+user).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}
