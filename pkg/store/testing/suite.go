// Package testing provides a reusable conformance suite for FileStore
// implementations.
//
// The suite tests the interface contract, not implementation details, so it
// runs unchanged against every backend (memory, filesystem, S3, ...).
//
// Usage:
//
//	func TestMyFileStore(t *testing.T) {
//	    suite := &storetesting.StoreTestSuite{
//	        NewStore: func(t *testing.T) store.FileStore {
//	            return mystore.New(t.TempDir())
//	        },
//	    }
//	    suite.Run(t)
//	}
package testing

import (
	"context"
	"testing"

	"github.com/driftfs/driftfs/pkg/store"
)

// StoreTestSuite is a conformance test suite for FileStore implementations.
type StoreTestSuite struct {
	// NewStore is a factory that creates a fresh FileStore instance for each
	// test, ensuring test isolation.
	NewStore func(t *testing.T) store.FileStore
}

// Run executes all tests in the suite.
func (suite *StoreTestSuite) Run(t *testing.T) {
	t.Run("PathModel", suite.RunPathTests)
	t.Run("FileOperations", suite.RunFileTests)
	t.Run("DirectoryOperations", suite.RunDirectoryTests)
	t.Run("WriteOperations", suite.RunWriteTests)
}

// testContext returns a standard test context.
func testContext() context.Context {
	return context.Background()
}
