// Package cache stores rendered artifacts keyed by content hash.
//
// The CLI's render command caches SVG output under [RenderKey], so
// re-rendering an unchanged graph skips graphviz entirely. Backends:
//   - [FileCache]: entries as files under a cache directory
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key-value cache with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// RenderKey returns the cache key for an artifact rendered from source in
// the given output format: "render:<format>:<sha256 of source>".
func RenderKey(source []byte, format string) string {
	return "render:" + format + ":" + Hash(source)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
