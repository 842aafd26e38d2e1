package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachememory "github.com/driftfs/driftfs/pkg/cache/memory"
	"github.com/driftfs/driftfs/pkg/codec/json"
	"github.com/driftfs/driftfs/pkg/store"
)

func TestNewConfiguration(t *testing.T) {
	s := newTestStore(t)

	cfg := store.NewConfiguration(s)

	assert.Same(t, s, cfg.Store)
	assert.True(t, strings.HasPrefix(cfg.DefaultDirectory, "/"))
	assert.Nil(t, cfg.Cache)
	assert.Nil(t, cfg.Serializer)

	// Separate configurations over the same store get separate working
	// directories.
	other := store.NewConfiguration(s)
	assert.NotEqual(t, cfg.DefaultDirectory, other.DefaultDirectory)
}

func TestConfigurationDerivation(t *testing.T) {
	s := newTestStore(t)

	base := store.NewConfiguration(s)
	derived := base.
		WithDefaultDirectory("/jobs/42").
		WithCache(cachememory.NewMemoryCache()).
		WithSerializer(json.NewSerializer())

	assert.Equal(t, "/jobs/42", derived.DefaultDirectory)
	assert.NotNil(t, derived.Cache)
	assert.NotNil(t, derived.Serializer)

	// The base configuration is untouched.
	assert.NotEqual(t, "/jobs/42", base.DefaultDirectory)
	assert.Nil(t, base.Cache)
	assert.Nil(t, base.Serializer)
}

func TestConfigurationResolveFilePath(t *testing.T) {
	s := newTestStore(t)
	cfg := store.NewConfiguration(s).WithDefaultDirectory("/work")

	assert.Equal(t, "/explicit.txt", cfg.ResolveFilePath("/explicit.txt"))

	generated := cfg.ResolveFilePath("")
	dir, err := s.DirectoryName(generated)
	require.NoError(t, err)
	assert.Equal(t, "/work", dir)

	assert.NotEqual(t, generated, cfg.ResolveFilePath(""))
}

func TestConfigurationResolveDirectory(t *testing.T) {
	s := newTestStore(t)
	cfg := store.NewConfiguration(s)

	assert.Equal(t, "/data", cfg.ResolveDirectory("/data"))
	assert.Equal(t, s.RootDirectory(), cfg.ResolveDirectory(""))
}

func TestConfigurationDefaultDirectoryMaterializes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	cfg := store.NewConfiguration(s)

	// Reserved but not yet created.
	exists, err := s.DirectoryExists(ctx, cfg.DefaultDirectory)
	require.NoError(t, err)
	assert.False(t, exists)

	path := cfg.ResolveFilePath("")
	err = store.WriteAllText(ctx, s, path, "payload")
	require.NoError(t, err)

	exists, err = s.DirectoryExists(ctx, cfg.DefaultDirectory)
	require.NoError(t, err)
	assert.True(t, exists)
}
