// Package cache defines the local artifact cache capability carried by a
// store configuration.
//
// The cache is an opaque key→artifact store for optional use by higher
// layers (memoized downloads, staged uploads). The core file-store contract
// never calls into it directly; it only carries the reference.
package cache

import (
	"context"
	"errors"
)

// ErrKeyNotFound indicates the requested key is not present in the cache.
// A cache miss is an expected condition, not a failure: callers branch with
// errors.Is and fall back to the backing store.
var ErrKeyNotFound = errors.New("cache key not found")

// Cache is an opaque key→artifact store.
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Entries may be evicted at any time; a cache provides no durability
// guarantee and callers must always be prepared for a miss.
type Cache interface {
	// Get returns the artifact stored under key, or ErrKeyNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the artifact under key, replacing any prior entry.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the entry under key. Deleting a missing key is an
	// idempotent no-op.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
