// Package memory provides an in-process cache backed by a plain map.
//
// Entries live for the lifetime of the process and are never evicted. It is
// intended for tests and for short-lived executions where a disk-backed
// cache is not worth setting up.
package memory

import (
	"context"
	"sync"

	"github.com/driftfs/driftfs/pkg/cache"
)

// MemoryCache implements cache.Cache with a mutex-protected map.
//
// Values are copied on Set and Get so callers can never alias the cache's
// internal storage.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]byte),
	}
}

// Get returns the artifact stored under key, or cache.ErrKeyNotFound.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores the artifact under key, replacing any prior entry.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = stored
	return nil
}

// Delete removes the entry under key. Missing keys are a no-op.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]byte)
	return nil
}
