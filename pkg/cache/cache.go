// Package cache stores optimisation results between runs.
//
// Entries are opaque byte slices addressed by string keys. Keys are built by
// a [Keyer] from the content hash of the input network and the options of
// the run, so a changed network or a changed option never hits a stale
// entry.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per entry below a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for batch jobs on many hosts
//   - [NullCache]: stores nothing, used when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl keeps the entry forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases the backend.
	Close() error
}
