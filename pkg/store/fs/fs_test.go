package fs_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/driftfs/driftfs/pkg/store/fs"
	storetesting "github.com/driftfs/driftfs/pkg/store/testing"
)

var errBoom = errors.New("boom")

func TestFileSystemStore(t *testing.T) {
	suite := &storetesting.StoreTestSuite{
		NewStore: func(t *testing.T) store.FileStore {
			s, err := fs.NewFileSystemStore(context.Background(), t.TempDir())
			require.NoError(t, err)
			return s
		},
	}
	suite.Run(t)
}

func TestFileSystemStore_Identity(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	s, err := fs.NewFileSystemStore(ctx, base)
	require.NoError(t, err)

	assert.Equal(t, "filesystem", s.Name())

	abs, err := filepath.Abs(base)
	require.NoError(t, err)
	assert.Equal(t, abs, s.ID())
}

func TestFileSystemStore_CreatesBaseDirectory(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "nested", "root")

	_, err := fs.NewFileSystemStore(ctx, base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestFileSystemStore_PathsStayInsideBase verifies the store maps its paths
// under the base directory and rejects traversal out of it.
func TestFileSystemStore_PathsStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	s, err := fs.NewFileSystemStore(ctx, base)
	require.NoError(t, err)

	err = store.WriteAllText(ctx, s, "/docs/readme.txt", "hello")
	require.NoError(t, err)

	onDisk := filepath.Join(base, "docs", "readme.txt")
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = s.NormalizePath("/../outside.txt")
	assert.ErrorIs(t, err, store.ErrInvalidPath)
}

// TestFileSystemStore_NoStagingLeftovers verifies that a failed write does not
// leave temporary files behind in the target directory.
func TestFileSystemStore_NoStagingLeftovers(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()

	s, err := fs.NewFileSystemStore(ctx, base)
	require.NoError(t, err)

	err = s.Write(ctx, "/data/out.bin", func(w io.Writer) error {
		return errBoom
	})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(base, "data"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
