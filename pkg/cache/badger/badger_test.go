package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(context.Background(), Config{
		InMemory: true,
		TTL:      ttl,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBadgerCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 0)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	require.NoError(t, c.Set(ctx, "artifact", []byte("payload")))

	got, err := c.Get(ctx, "artifact")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, c.Delete(ctx, "artifact"))
	_, err = c.Get(ctx, "artifact")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	require.NoError(t, c.Delete(ctx, "artifact"))
}

func TestBadgerCache_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 50*time.Millisecond)

	require.NoError(t, c.Set(ctx, "short-lived", []byte("x")))

	got, err := c.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	time.Sleep(100 * time.Millisecond)

	_, err = c.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestBadgerCache_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := NewBadgerCache(ctx, Config{Path: dir})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "durable", []byte("still here")))
	require.NoError(t, c.Close())

	reopened, err := NewBadgerCache(ctx, Config{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "durable")
	require.NoError(t, err)
	assert.Equal(t, []byte("still here"), got)
}

func TestBadgerCache_CancelledContext(t *testing.T) {
	c := newTestCache(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, "k", nil), context.Canceled)
}
