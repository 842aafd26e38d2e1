package testing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWriteTests executes the streaming write contract tests, in particular
// the all-or-nothing commit guarantee.
func (suite *StoreTestSuite) RunWriteTests(t *testing.T) {
	t.Run("Write_RootRejected", suite.testWriteRootRejected)
	t.Run("Write_FailureLeavesNothing", suite.testWriteFailureLeavesNothing)
	t.Run("Write_FailureKeepsPrior", suite.testWriteFailureKeepsPrior)
	t.Run("Write_Cancelled", suite.testWriteCancelled)
	t.Run("Write_Overwrite", suite.testWriteOverwrite)
	t.Run("WriteResult_CarriesValue", suite.testWriteResultCarriesValue)
	t.Run("CopyFrom_CopyTo_RoundTrip", suite.testCopyRoundTrip)
	t.Run("Read_ReleasesOnDeserializerError", suite.testReadReleases)
	t.Run("ConcurrentWriters_DistinctPaths", suite.testConcurrentWritersDistinctPaths)
}

var errWriterFailed = errors.New("writer deliberately failed")

func (suite *StoreTestSuite) testWriteRootRejected(t *testing.T) {
	s := suite.NewStore(t)

	// The root is a directory, never a file: writing to it must fail before
	// the writer runs, and must not disturb the namespace.
	for _, path := range []string{"/", "//", "/."} {
		err := s.Write(testContext(), path, func(w io.Writer) error {
			t.Errorf("writer ran for %q", path)
			return nil
		})
		assert.ErrorIs(t, err, store.ErrTypeMismatch, "path %q", path)
	}

	err := s.CopyFrom(testContext(), "/", bytes.NewReader([]byte("nope")))
	assert.ErrorIs(t, err, store.ErrTypeMismatch)

	exists, err := s.DirectoryExists(testContext(), s.RootDirectory())
	require.NoError(t, err)
	assert.True(t, exists, "the root directory must survive rejected writes")
}

func (suite *StoreTestSuite) testWriteFailureLeavesNothing(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "never.bin")

	err := s.Write(testContext(), path, func(w io.Writer) error {
		// Bytes go out before the failure; none may become visible.
		_, _ = w.Write([]byte("partial"))
		return errWriterFailed
	})
	require.ErrorIs(t, err, errWriterFailed, "the writer's own error must propagate")

	assertFileExists(t, s, path, false)
}

func (suite *StoreTestSuite) testWriteFailureKeepsPrior(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "stable.bin")

	mustWriteFile(t, s, path, []byte("prior"))

	err := s.Write(testContext(), path, func(w io.Writer) error {
		_, _ = w.Write([]byte("replacement that never lands"))
		return errWriterFailed
	})
	require.ErrorIs(t, err, errWriterFailed)

	// The prior durable state survives the failed overwrite.
	assert.Equal(t, []byte("prior"), mustReadFile(t, s, path))
}

func (suite *StoreTestSuite) testWriteCancelled(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "cancelled.bin")

	ctx, cancel := context.WithCancel(testContext())

	err := s.Write(ctx, path, func(w io.Writer) error {
		_, _ = w.Write([]byte("doomed"))
		cancel()
		return nil
	})
	require.Error(t, err)

	assertFileExists(t, s, path, false)
}

func (suite *StoreTestSuite) testWriteOverwrite(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "versioned.bin")

	mustWriteFile(t, s, path, []byte("first"))
	mustWriteFile(t, s, path, []byte("second, longer version"))

	assert.Equal(t, []byte("second, longer version"), mustReadFile(t, s, path))
}

func (suite *StoreTestSuite) testWriteResultCarriesValue(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "counted.bin")
	data := generateTestData(1234)

	n, err := store.WriteResult(testContext(), s, path, func(w io.Writer) (int, error) {
		return w.Write(data)
	})
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, mustReadFile(t, s, path))
}

func (suite *StoreTestSuite) testCopyRoundTrip(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "streamed.bin")
	data := generateTestData(64 * 1024)

	require.NoError(t, s.CopyFrom(testContext(), path, bytes.NewReader(data)))

	var out bytes.Buffer
	out.WriteString("prefix-")
	require.NoError(t, s.CopyTo(testContext(), path, &out))

	// CopyTo appends at the destination's current position.
	assert.Equal(t, append([]byte("prefix-"), data...), out.Bytes())

	err := s.CopyTo(testContext(), s.Combine(s.RootDirectory(), "missing.bin"), &out)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *StoreTestSuite) testReadReleases(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "deser.bin")

	mustWriteFile(t, s, path, []byte("payload"))

	errDeser := errors.New("deserializer failed")
	_, err := store.Read(testContext(), s, path, func(r io.Reader) (string, error) {
		return "", errDeser
	})
	require.ErrorIs(t, err, errDeser)

	// The stream was released: the file remains deletable and re-readable.
	require.NoError(t, s.DeleteFile(testContext(), path))
}

func (suite *StoreTestSuite) testConcurrentWritersDistinctPaths(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "parallel")

	const writers = 8
	paths := make([]string, writers)
	payloads := make([][]byte, writers)

	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		paths[i] = s.Combine(dir, string(rune('a'+i))+".bin")
		payloads[i] = generateTestData(8*1024 + i)

		go func(path string, data []byte) {
			done <- s.Write(testContext(), path, func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			})
		}(paths[i], payloads[i])
	}

	for k := 0; k < writers; k++ {
		require.NoError(t, <-done)
	}

	for i := 0; i < writers; i++ {
		assert.Equal(t, payloads[i], mustReadFile(t, s, paths[i]))
	}
}
