package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache provides lookup result caching
type Cache interface {
	// GetLookup retrieves a cached lookup by key
	// Returns nil if not found
	GetLookup(ctx context.Context, key string) (*LookupResult, error)

	// SetLookup stores a lookup result with TTL
	SetLookup(ctx context.Context, key string, result *LookupResult, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// LookupResult represents a cached /meaning response
type LookupResult struct {
	Title       string   `json:"title"`
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	ModelUsed   string   `json:"modelUsed"`
}

// GenerateCacheKey derives a stable key from the normalized query, language
// and provider family.
func GenerateCacheKey(word, language, family string) string {
	norm := strings.Join(strings.Fields(strings.ToLower(word)), " ")
	sum := sha256.Sum256([]byte(norm + "|" + strings.ToLower(language) + "|" + strings.ToLower(family)))
	return hex.EncodeToString(sum[:])
}
