// Package cache stores computed layouts between runs.
//
// Layout is the only expensive operation in microtosca, and its result is
// fully determined by the DOT document and the layout parameters. The CLI
// keys results by [Key] over those inputs and keeps them in a [FileCache]
// under the user's cache directory. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired and unreadable entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}
