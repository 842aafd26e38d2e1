package testing

import (
	"io"
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/stretchr/testify/require"
)

// mustWriteFile writes data to path and fails the test on error.
func mustWriteFile(t *testing.T, s store.FileStore, path string, data []byte) {
	t.Helper()

	err := s.Write(testContext(), path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	require.NoError(t, err, "failed to write %s", path)
}

// mustReadFile reads the whole file at path and fails the test on error.
func mustReadFile(t *testing.T, s store.FileStore, path string) []byte {
	t.Helper()

	rc, err := s.BeginRead(testContext(), path)
	require.NoError(t, err, "failed to open %s", path)
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	require.NoError(t, err, "failed to read %s", path)
	return data
}

// assertFileExists asserts the existence state of the file at path.
func assertFileExists(t *testing.T, s store.FileStore, path string, want bool) {
	t.Helper()

	exists, err := s.FileExists(testContext(), path)
	require.NoError(t, err)
	require.Equal(t, want, exists, "unexpected existence for %s", path)
}

// generateTestData produces deterministic pseudo-random bytes of the given
// size, cheap enough for large payloads.
func generateTestData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}
	return data
}

// normalized returns the canonical form of path on s, failing the test if
// the path does not normalize.
func normalized(t *testing.T, s store.FileStore, path string) string {
	t.Helper()

	n, err := s.NormalizePath(path)
	require.NoError(t, err, "path %q did not normalize", path)
	return n
}
