package store

import (
	"github.com/driftfs/driftfs/pkg/cache"
	"github.com/driftfs/driftfs/pkg/codec"
)

// ============================================================================
// Configuration
// ============================================================================

// Configuration is the immutable bundle binding one store instance to a
// default working directory, a local cache capability, and a serializer
// capability.
//
// A Configuration is constructed once per logical execution (by
// config.Build or directly in tests) before any file operation, and is
// read-only thereafter. It is shared by value across all operations of that
// execution; changing the default directory means deriving a new value with
// WithDefaultDirectory, never mutating in place.
//
// Cache and Serializer are capability references the configuration carries
// for higher layers. The convenience operations in this package never call
// into them directly.
type Configuration struct {
	// Store is the file store all operations of this execution run against.
	Store FileStore

	// DefaultDirectory is the working directory used when an operation
	// accepts an optional path and none is given. It is not required to
	// exist until first used.
	DefaultDirectory string

	// Cache is the local key→artifact cache capability, or nil when the
	// execution runs uncached.
	Cache cache.Cache

	// Serializer is the value↔stream codec capability, or nil when the
	// execution never persists structured values.
	Serializer codec.Serializer
}

// NewConfiguration returns a Configuration rooted at the store's default
// unique working directory.
//
// The directory name is reserved but not created; the first Write beneath it
// materializes it on backends that track directories.
func NewConfiguration(s FileStore) Configuration {
	return Configuration{
		Store:            s,
		DefaultDirectory: s.UniqueDirectoryPath(),
	}
}

// WithDefaultDirectory derives a new Configuration with the given default
// directory. The receiver is unchanged.
func (c Configuration) WithDefaultDirectory(directory string) Configuration {
	c.DefaultDirectory = directory
	return c
}

// WithCache derives a new Configuration carrying the given cache capability.
func (c Configuration) WithCache(cc cache.Cache) Configuration {
	c.Cache = cc
	return c
}

// WithSerializer derives a new Configuration carrying the given serializer
// capability.
func (c Configuration) WithSerializer(s codec.Serializer) Configuration {
	c.Serializer = s
	return c
}

// ResolveFilePath applies the path-defaulting rule for file creation: an
// explicit path is returned unchanged, an empty path falls back to a random
// file path under the default directory.
//
// The fallback is applied identically regardless of backend.
func (c Configuration) ResolveFilePath(path string) string {
	if path != "" {
		return path
	}
	return RandomFilePath(c.Store, c.DefaultDirectory)
}

// ResolveDirectory applies the path-defaulting rule for enumeration: an
// explicit directory is returned unchanged, an empty directory falls back to
// the store root.
func (c Configuration) ResolveDirectory(directory string) string {
	if directory != "" {
		return directory
	}
	return c.Store.RootDirectory()
}
