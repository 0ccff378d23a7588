package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing.
// Used when CACHE_PROVIDER=none or Redis is unreachable - all operations
// succeed but no actual caching occurs (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetLookup always returns nil (cache miss)
func (c *NoOpCache) GetLookup(ctx context.Context, key string) (*LookupResult, error) {
	return nil, nil
}

// SetLookup does nothing and always succeeds
func (c *NoOpCache) SetLookup(ctx context.Context, key string, result *LookupResult, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds
func (c *NoOpCache) Close() error {
	return nil
}
