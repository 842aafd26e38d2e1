package testing

import (
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFileTests executes all single-file operation tests.
func (suite *StoreTestSuite) RunFileTests(t *testing.T) {
	t.Run("FileExists", suite.testFileExists)
	t.Run("FileSize_NotFound", suite.testFileSizeNotFound)
	t.Run("FileSize_Directory", suite.testFileSizeDirectory)
	t.Run("FileSize_AfterWrite", suite.testFileSizeAfterWrite)
	t.Run("BeginRead_NotFound", suite.testBeginReadNotFound)
	t.Run("DeleteFile_Idempotent", suite.testDeleteFileIdempotent)
	t.Run("DeleteFile_KeepsSiblings", suite.testDeleteFileKeepsSiblings)
	t.Run("ReadWrite_RoundTrip", suite.testReadWriteRoundTrip)
	t.Run("ReadWrite_Empty", suite.testReadWriteEmpty)
	t.Run("ReadWrite_Large", suite.testReadWriteLarge)
}

func (suite *StoreTestSuite) testFileExists(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "exists", "probe.bin")

	assertFileExists(t, s, path, false)
	mustWriteFile(t, s, path, []byte("probe"))
	assertFileExists(t, s, path, true)

	// A directory is not a file.
	dir := s.Combine(s.RootDirectory(), "exists")
	exists, err := s.FileExists(testContext(), dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func (suite *StoreTestSuite) testFileSizeNotFound(t *testing.T) {
	s := suite.NewStore(t)

	_, err := s.FileSize(testContext(), s.Combine(s.RootDirectory(), "missing.bin"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *StoreTestSuite) testFileSizeDirectory(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "sized-dir")

	require.NoError(t, s.CreateDirectory(testContext(), dir))

	_, err := s.FileSize(testContext(), dir)
	require.ErrorIs(t, err, store.ErrTypeMismatch)
}

func (suite *StoreTestSuite) testFileSizeAfterWrite(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "data", "a.txt")

	mustWriteFile(t, s, path, []byte("hello"))

	size, err := s.FileSize(testContext(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	assert.Equal(t, []byte("hello"), mustReadFile(t, s, path))
}

func (suite *StoreTestSuite) testBeginReadNotFound(t *testing.T) {
	s := suite.NewStore(t)

	_, err := s.BeginRead(testContext(), s.Combine(s.RootDirectory(), "missing.bin"))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *StoreTestSuite) testDeleteFileIdempotent(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "doomed.bin")

	mustWriteFile(t, s, path, []byte("doomed"))

	require.NoError(t, s.DeleteFile(testContext(), path))
	assertFileExists(t, s, path, false)

	// Deleting again is a documented no-op.
	require.NoError(t, s.DeleteFile(testContext(), path))
}

func (suite *StoreTestSuite) testDeleteFileKeepsSiblings(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "siblings")
	doomed := s.Combine(dir, "doomed.bin")
	kept := s.Combine(dir, "kept.bin")

	mustWriteFile(t, s, doomed, []byte("doomed"))
	mustWriteFile(t, s, kept, []byte("kept"))

	require.NoError(t, s.DeleteFile(testContext(), doomed))

	assertFileExists(t, s, doomed, false)
	assert.Equal(t, []byte("kept"), mustReadFile(t, s, kept))
}

func (suite *StoreTestSuite) testReadWriteRoundTrip(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "roundtrip.bin")
	data := generateTestData(4096)

	mustWriteFile(t, s, path, data)
	assert.Equal(t, data, mustReadFile(t, s, path))
}

func (suite *StoreTestSuite) testReadWriteEmpty(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "empty.bin")

	mustWriteFile(t, s, path, nil)

	assertFileExists(t, s, path, true)
	assert.Empty(t, mustReadFile(t, s, path))

	size, err := s.FileSize(testContext(), path)
	require.NoError(t, err)
	assert.Zero(t, size)
}

func (suite *StoreTestSuite) testReadWriteLarge(t *testing.T) {
	s := suite.NewStore(t)
	path := s.Combine(s.RootDirectory(), "large.bin")
	data := generateTestData(2 * 1024 * 1024)

	mustWriteFile(t, s, path, data)
	assert.Equal(t, data, mustReadFile(t, s, path))
}
