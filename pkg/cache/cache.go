// Package cache provides response caching for package index lookups.
//
// The Cache interface abstracts over storage backends so the PyPI client
// does not care where responses live:
//   - FileCache: per-user cache under the XDG cache directory (CLI default)
//   - RedisCache: shared cache for CI fleets running many checks
//   - NullCache: no-op backend for --no-cache and tests
//
// Entries carry a TTL; expired entries are treated as misses and removed
// lazily on read.
package cache

import (
	"context"
	"time"
)

// Cache stores raw response bytes under string keys with per-entry TTL.
//
// Implementations must treat expired entries as misses. A TTL of zero
// means the entry never expires.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and fresh; data is nil on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources (connections, handles).
	Close() error
}
