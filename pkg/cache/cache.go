// Package cache provides rendered-page caching for the plot service.
//
// A render session is fully determined by its request, so pages are cached
// under a hash of the request body. Backends:
//   - Null: caching disabled (tests, one-shot CLI runs)
//   - File: local directory cache for CLI usage
//   - Redis: shared cache for multi-instance server deployments
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TTLPage is how long a rendered page stays cached.
const TTLPage = 1 * time.Hour

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// PageKey builds the cache key for a rendered page from the request hash.
func PageKey(requestHash string) string {
	return "page:" + requestHash
}
