package store_test

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/driftfs/driftfs/pkg/store/memory"
)

func newTestStore(t *testing.T) store.FileStore {
	t.Helper()
	s, err := memory.NewMemoryFileStore(context.Background())
	require.NoError(t, err)
	return s
}

func TestRandomFilePath(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p := store.RandomFilePath(s, "/staging")

		dir, err := s.DirectoryName(p)
		require.NoError(t, err)
		assert.Equal(t, "/staging", dir)

		assert.False(t, seen[p], "random path repeated: %s", p)
		seen[p] = true
	}
}

func TestReadWriteAllText(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := store.WriteAllText(ctx, s, "/greeting.txt", "héllo wörld")
	require.NoError(t, err)

	text, err := store.ReadAllText(ctx, s, "/greeting.txt")
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", text)

	_, err = store.ReadAllText(ctx, s, "/missing.txt")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReadWriteLines(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	lines := []string{"first", "", "third", "fourth"}
	err := store.WriteLines(ctx, s, "/lines.txt", lines)
	require.NoError(t, err)

	got, err := store.ReadLines(ctx, s, "/lines.txt")
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestReadLines_Empty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := store.WriteAllBytes(ctx, s, "/empty.txt", nil)
	require.NoError(t, err)

	got, err := store.ReadLines(ctx, s, "/empty.txt")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadDeserializer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := store.WriteAllText(ctx, s, "/record.json", `{"name":"drift","count":3}`)
	require.NoError(t, err)

	got, err := store.Read(ctx, s, "/record.json", func(r io.Reader) (record, error) {
		var rec record
		err := json.NewDecoder(r).Decode(&rec)
		return rec, err
	})
	require.NoError(t, err)
	assert.Equal(t, record{Name: "drift", Count: 3}, got)
}

func TestWriteResult(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := store.WriteResult(ctx, s, "/counted.txt", func(w io.Writer) (int, error) {
		return io.WriteString(w, "twelve bytes")
	})
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	size, err := s.FileSize(ctx, "/counted.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)
}

func TestEnumerateRootDirectories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateDirectory(ctx, "/alpha"))
	require.NoError(t, s.CreateDirectory(ctx, "/beta/nested"))

	dirs, err := store.EnumerateRootDirectories(ctx, s)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/alpha", "/beta"}, dirs)
}

func TestPathsEqual(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, store.PathsEqual(s, "/a/b/c.txt", "a/./b/c.txt"))
	assert.True(t, store.PathsEqual(s, "/a/b/../c", "/a/c"))
	assert.False(t, store.PathsEqual(s, "/a/b", "/a/c"))

	// Invalid paths never compare equal.
	assert.False(t, store.PathsEqual(s, "", ""))
	assert.False(t, store.PathsEqual(s, "/a", strings.Repeat("../", 3)+"a"))
}
