// Package badger provides a disk-backed cache built on BadgerDB.
//
// Unlike the in-process cache it survives restarts and supports entry
// expiry. It suits long-lived executions that repeatedly materialize the
// same remote artifacts.
package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/driftfs/driftfs/pkg/cache"
)

// Config holds settings for a Badger-backed cache.
type Config struct {
	// Path is the directory the database lives in. Ignored when InMemory
	// is set.
	Path string

	// InMemory runs the database without any files on disk. Entries are
	// lost on Close. Useful for tests.
	InMemory bool

	// TTL is the lifetime applied to every entry. Zero means entries never
	// expire.
	TTL time.Duration

	// BadgerOptions overrides the database options entirely when non-nil.
	BadgerOptions *badger.Options
}

// BadgerCache implements cache.Cache on top of a BadgerDB instance.
//
// All operations run in Badger transactions; concurrent use from multiple
// goroutines is safe.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerCache opens (or creates) the cache database described by config.
func NewBadgerCache(ctx context.Context, config Config) (*BadgerCache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts badger.Options
	if config.BadgerOptions != nil {
		opts = *config.BadgerOptions
	} else {
		opts = badger.DefaultOptions(config.Path)
		if config.InMemory {
			opts = opts.WithInMemory(true)
		}

		// Cache entries are whole artifacts; they are already compressed
		// more often than not.
		opts = opts.WithLoggingLevel(badger.WARNING)
		opts = opts.WithCompression(options.None)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database at %s: %w", config.Path, err)
	}

	return &BadgerCache{
		db:  db,
		ttl: config.TTL,
	}, nil
}

// Get returns the artifact stored under key, or cache.ErrKeyNotFound when
// the key is absent or expired.
func (c *BadgerCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, cache.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}
	return value, nil
}

// Set stores the artifact under key, replacing any prior entry. The
// configured TTL is applied.
func (c *BadgerCache) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry under key. Missing keys are a no-op.
func (c *BadgerCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete cache key %q: %w", key, err)
	}
	return nil
}

// RunGC reclaims space from Badger's value log. Callers that keep a cache
// open for a long time should invoke this periodically; one pass at a
// discard ratio of 0.5 is usually enough.
func (c *BadgerCache) RunGC(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := c.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close flushes and closes the underlying database.
func (c *BadgerCache) Close() error {
	return c.db.Close()
}
