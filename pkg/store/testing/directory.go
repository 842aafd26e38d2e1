package testing

import (
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDirectoryTests executes all directory lifecycle and enumeration tests.
func (suite *StoreTestSuite) RunDirectoryTests(t *testing.T) {
	t.Run("CreateDirectory_Idempotent", suite.testCreateDirectoryIdempotent)
	t.Run("CreateDirectory_Intermediates", suite.testCreateDirectoryIntermediates)
	t.Run("DeleteDirectory_NonEmpty", suite.testDeleteDirectoryNonEmpty)
	t.Run("DeleteDirectory_Recursive", suite.testDeleteDirectoryRecursive)
	t.Run("EnumerateFiles_SetEquality", suite.testEnumerateFilesSetEquality)
	t.Run("EnumerateFiles_NotFound", suite.testEnumerateNotFound)
	t.Run("EnumerateDirectories", suite.testEnumerateDirectories)
	t.Run("EnumerateRoot", suite.testEnumerateRoot)
}

func (suite *StoreTestSuite) testCreateDirectoryIdempotent(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "idempotent")

	require.NoError(t, s.CreateDirectory(testContext(), dir))
	require.NoError(t, s.CreateDirectory(testContext(), dir))

	exists, err := s.DirectoryExists(testContext(), dir)
	require.NoError(t, err)
	assert.True(t, exists)
}

func (suite *StoreTestSuite) testCreateDirectoryIntermediates(t *testing.T) {
	s := suite.NewStore(t)
	deep := s.Combine(s.RootDirectory(), "one", "two", "three")

	require.NoError(t, s.CreateDirectory(testContext(), deep))

	for _, dir := range []string{
		s.Combine(s.RootDirectory(), "one"),
		s.Combine(s.RootDirectory(), "one", "two"),
		deep,
	} {
		exists, err := s.DirectoryExists(testContext(), dir)
		require.NoError(t, err)
		assert.True(t, exists, "intermediate %s must exist", dir)
	}
}

func (suite *StoreTestSuite) testDeleteDirectoryNonEmpty(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "occupied")
	file := s.Combine(dir, "tenant.txt")

	mustWriteFile(t, s, file, []byte("tenant"))

	err := s.DeleteDirectory(testContext(), dir, false)
	require.ErrorIs(t, err, store.ErrDirectoryNotEmpty)

	// Contents untouched by the failed delete.
	assert.Equal(t, []byte("tenant"), mustReadFile(t, s, file))

	// The same call with recursive=true succeeds.
	require.NoError(t, s.DeleteDirectory(testContext(), dir, true))

	exists, err := s.DirectoryExists(testContext(), dir)
	require.NoError(t, err)
	assert.False(t, exists)
	assertFileExists(t, s, file, false)
}

func (suite *StoreTestSuite) testDeleteDirectoryRecursive(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "tree")

	mustWriteFile(t, s, s.Combine(dir, "a.txt"), []byte("a"))
	mustWriteFile(t, s, s.Combine(dir, "sub", "b.txt"), []byte("b"))

	require.NoError(t, s.DeleteDirectory(testContext(), dir, true))

	exists, err := s.DirectoryExists(testContext(), dir)
	require.NoError(t, err)
	assert.False(t, exists)

	// An empty directory deletes without recursive.
	empty := s.Combine(s.RootDirectory(), "vacant")
	require.NoError(t, s.CreateDirectory(testContext(), empty))
	require.NoError(t, s.DeleteDirectory(testContext(), empty, false))
}

func (suite *StoreTestSuite) testEnumerateFilesSetEquality(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "data")

	// Creation order must not matter.
	mustWriteFile(t, s, s.Combine(dir, "b.txt"), []byte("b"))
	mustWriteFile(t, s, s.Combine(dir, "a.txt"), []byte("a"))

	files, err := s.EnumerateFiles(testContext(), dir)
	require.NoError(t, err)

	want := []string{
		normalized(t, s, s.Combine(dir, "a.txt")),
		normalized(t, s, s.Combine(dir, "b.txt")),
	}
	assert.ElementsMatch(t, want, files)
}

func (suite *StoreTestSuite) testEnumerateNotFound(t *testing.T) {
	s := suite.NewStore(t)
	missing := s.Combine(s.RootDirectory(), "missing-dir")

	_, err := s.EnumerateFiles(testContext(), missing)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.EnumerateDirectories(testContext(), missing)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func (suite *StoreTestSuite) testEnumerateDirectories(t *testing.T) {
	s := suite.NewStore(t)
	dir := s.Combine(s.RootDirectory(), "parent")

	require.NoError(t, s.CreateDirectory(testContext(), s.Combine(dir, "x")))
	require.NoError(t, s.CreateDirectory(testContext(), s.Combine(dir, "y")))
	mustWriteFile(t, s, s.Combine(dir, "not-a-dir.txt"), []byte("f"))

	dirs, err := s.EnumerateDirectories(testContext(), dir)
	require.NoError(t, err)

	want := []string{
		normalized(t, s, s.Combine(dir, "x")),
		normalized(t, s, s.Combine(dir, "y")),
	}
	assert.ElementsMatch(t, want, dirs)

	// Enumeration is single-level: files do not appear among directories.
	files, err := s.EnumerateFiles(testContext(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{normalized(t, s, s.Combine(dir, "not-a-dir.txt"))}, files)
}

func (suite *StoreTestSuite) testEnumerateRoot(t *testing.T) {
	s := suite.NewStore(t)

	require.NoError(t, s.CreateDirectory(testContext(), s.Combine(s.RootDirectory(), "top")))

	dirs, err := store.EnumerateRootDirectories(testContext(), s)
	require.NoError(t, err)
	assert.Contains(t, dirs, normalized(t, s, s.Combine(s.RootDirectory(), "top")))
}
