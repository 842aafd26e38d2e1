package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/cache"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	require.NoError(t, c.Set(ctx, "artifact", []byte("payload")))

	got, err := c.Get(ctx, "artifact")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, c.Set(ctx, "artifact", []byte("replaced")))
	got, err = c.Get(ctx, "artifact")
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), got)

	require.NoError(t, c.Delete(ctx, "artifact"))
	_, err = c.Get(ctx, "artifact")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	// Deleting again is a no-op.
	require.NoError(t, c.Delete(ctx, "artifact"))
}

func TestMemoryCache_CopiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	original := []byte("immutable")
	require.NoError(t, c.Set(ctx, "k", original))

	// Mutating the caller's slice must not affect the cached entry.
	original[0] = 'X'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), got)

	// Mutating a returned slice must not affect later reads.
	got[0] = 'Y'
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), again)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i)
			for j := 0; j < 50; j++ {
				value := fmt.Appendf(nil, "value-%d-%d", i, j)
				assert.NoError(t, c.Set(ctx, key, value))
				got, err := c.Get(ctx, key)
				assert.NoError(t, err)
				assert.Equal(t, value, got)
			}
		}()
	}
	wg.Wait()
}
