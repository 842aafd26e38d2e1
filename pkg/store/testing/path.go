package testing

import (
	"sync"
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPathTests executes all pure path-model tests.
func (suite *StoreTestSuite) RunPathTests(t *testing.T) {
	t.Run("Combine_Associative", suite.testCombineAssociative)
	t.Run("Combine_RoundTrip", suite.testCombineRoundTrip)
	t.Run("DirectoryName_Root", suite.testDirectoryNameRoot)
	t.Run("NormalizePath_Canonical", suite.testNormalizePathCanonical)
	t.Run("NormalizePath_Rejections", suite.testNormalizePathRejections)
	t.Run("UniqueDirectoryPath_Distinct", suite.testUniqueDirectoryPathDistinct)
	t.Run("UniqueDirectoryPath_Concurrent", suite.testUniqueDirectoryPathConcurrent)
}

func (suite *StoreTestSuite) testCombineAssociative(t *testing.T) {
	s := suite.NewStore(t)

	cases := [][3]string{
		{"a", "b", "c"},
		{"/data", "nested", "leaf.txt"},
		{"alpha", "beta/gamma", "delta"},
	}

	for _, c := range cases {
		left := s.Combine(s.Combine(c[0], c[1]), c[2])
		flat := s.Combine(c[0], c[1], c[2])
		assert.Equal(t, flat, left, "Combine must be associative for %v", c)
	}
}

func (suite *StoreTestSuite) testCombineRoundTrip(t *testing.T) {
	s := suite.NewStore(t)

	dir := s.Combine(s.RootDirectory(), "alpha", "beta")
	p := s.Combine(dir, "gamma.txt")

	name, err := s.FileName(p)
	require.NoError(t, err)
	assert.Equal(t, "gamma.txt", name)

	parent, err := s.DirectoryName(p)
	require.NoError(t, err)
	assert.Equal(t, normalized(t, s, dir), normalized(t, s, parent))
}

func (suite *StoreTestSuite) testDirectoryNameRoot(t *testing.T) {
	s := suite.NewStore(t)

	_, err := s.DirectoryName(s.RootDirectory())
	require.ErrorIs(t, err, store.ErrInvalidPath)

	_, err = s.FileName(s.RootDirectory())
	require.ErrorIs(t, err, store.ErrInvalidPath)
}

func (suite *StoreTestSuite) testNormalizePathCanonical(t *testing.T) {
	s := suite.NewStore(t)

	// Normalization must be idempotent and stable for every path the store
	// itself produces.
	produced := []string{
		s.RootDirectory(),
		s.Combine(s.RootDirectory(), "data", "a.txt"),
		s.UniqueDirectoryPath(),
	}

	for _, p := range produced {
		n := normalized(t, s, p)
		assert.Equal(t, n, normalized(t, s, n), "normalization must be idempotent for %q", p)
	}

	// Redundant separators and dot segments collapse.
	assert.Equal(t,
		normalized(t, s, s.Combine("data", "a.txt")),
		normalized(t, s, "data//./a.txt"))
}

func (suite *StoreTestSuite) testNormalizePathRejections(t *testing.T) {
	s := suite.NewStore(t)

	rejected := []string{
		"",
		"../escape",
		"a/../../escape",
		"foreign://scheme/path",
	}

	for _, p := range rejected {
		_, err := s.NormalizePath(p)
		require.ErrorIs(t, err, store.ErrInvalidPath, "expected rejection of %q", p)
	}
}

func (suite *StoreTestSuite) testUniqueDirectoryPathDistinct(t *testing.T) {
	s := suite.NewStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		p := s.UniqueDirectoryPath()
		require.False(t, seen[p], "duplicate unique path %q", p)
		seen[p] = true

		// Round-trip closure: produced paths are valid input everywhere.
		normalized(t, s, p)
	}
}

func (suite *StoreTestSuite) testUniqueDirectoryPathConcurrent(t *testing.T) {
	s := suite.NewStore(t)

	const goroutines = 16
	const perGoroutine = 32

	results := make(chan string, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				results <- s.UniqueDirectoryPath()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for p := range results {
		require.False(t, seen[p], "concurrent duplicate unique path %q", p)
		seen[p] = true
	}
	require.Len(t, seen, goroutines*perGoroutine)
}
