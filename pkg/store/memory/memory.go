// Package memory implements an in-memory file store backend.
//
// This file contains the store type, constructor, identity, and directory
// lifecycle operations.
package memory

import (
	"context"
	"fmt"
	gopath "path"
	"sort"
	"strings"
	"sync"

	"github.com/driftfs/driftfs/pkg/store"
	"github.com/google/uuid"
)

// MemoryFileStore implements store.FileStore using in-memory storage.
//
// All files and directories live in maps keyed by normalized path. It is
// designed for:
//   - Testing and development
//   - Ephemeral scratch storage
//   - Conformance-suite baselines for other backends
//
// Characteristics:
//   - Fast: all operations are memory-speed
//   - Volatile: data lost on process exit
//   - Thread-safe: protected by an RWMutex; data copied on read/write so
//     caller-owned buffers never race with store state
//
// Concurrent writes to the same path are last-writer-wins: each Write
// buffers privately and commits under the write lock.
type MemoryFileStore struct {
	store.SlashPathModel

	id string

	// mu protects files and dirs
	mu sync.RWMutex

	// files maps normalized file path to contents
	files map[string][]byte

	// dirs holds every explicitly or implicitly created directory,
	// excluding the root, which always exists
	dirs map[string]bool
}

// NewMemoryFileStore creates an empty in-memory file store.
//
// The store begins with an existing root directory and nothing else. The
// instance ID is a fresh random token, so two memory stores never share an
// identity.
func NewMemoryFileStore(ctx context.Context) (*MemoryFileStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &MemoryFileStore{
		id:    "memory-" + uuid.NewString(),
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}, nil
}

// Name returns the backend kind.
func (s *MemoryFileStore) Name() string {
	return "memory"
}

// ID returns the per-instance identifier.
func (s *MemoryFileStore) ID() string {
	return s.id
}

// ============================================================================
// Directory Operations
// ============================================================================

// DirectoryExists reports whether directory exists. The root always exists.
func (s *MemoryFileStore) DirectoryExists(ctx context.Context, directory string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return false, err
	}
	if normalized == "/" {
		return true, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirs[normalized], nil
}

// CreateDirectory creates directory and any missing intermediates
// (mkdir -p). Creating an existing directory is a no-op.
func (s *MemoryFileStore) CreateDirectory(ctx context.Context, directory string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.createDirLocked(normalized)
	return nil
}

// createDirLocked marks normalized and all its ancestors as existing
// directories. Caller must hold the write lock.
func (s *MemoryFileStore) createDirLocked(normalized string) {
	for dir := normalized; dir != "/"; dir = gopath.Dir(dir) {
		s.dirs[dir] = true
	}
}

// DeleteDirectory removes directory.
//
// With recursive false the directory must be empty; a non-empty directory
// fails with ErrDirectoryNotEmpty. Deleting a missing directory is a no-op.
// The root cannot be deleted.
func (s *MemoryFileStore) DeleteDirectory(ctx context.Context, directory string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return err
	}
	if normalized == "/" {
		return fmt.Errorf("cannot delete store root: %w", store.ErrInvalidPath)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, isFile := s.files[normalized]; isFile {
		return fmt.Errorf("path %s is a file: %w", directory, store.ErrTypeMismatch)
	}

	prefix := normalized + "/"

	if !recursive {
		for path := range s.files {
			if strings.HasPrefix(path, prefix) {
				return fmt.Errorf("directory %s: %w", directory, store.ErrDirectoryNotEmpty)
			}
		}
		for path := range s.dirs {
			if strings.HasPrefix(path, prefix) {
				return fmt.Errorf("directory %s: %w", directory, store.ErrDirectoryNotEmpty)
			}
		}
		delete(s.dirs, normalized)
		return nil
	}

	for path := range s.files {
		if strings.HasPrefix(path, prefix) {
			delete(s.files, path)
		}
	}
	for path := range s.dirs {
		if strings.HasPrefix(path, prefix) {
			delete(s.dirs, path)
		}
	}
	delete(s.dirs, normalized)

	return nil
}

// EnumerateFiles returns the files directly under directory, sorted.
func (s *MemoryFileStore) EnumerateFiles(ctx context.Context, directory string) ([]string, error) {
	return s.enumerate(ctx, directory, true)
}

// EnumerateDirectories returns the subdirectories directly under directory,
// sorted.
func (s *MemoryFileStore) EnumerateDirectories(ctx context.Context, directory string) ([]string, error) {
	return s.enumerate(ctx, directory, false)
}

func (s *MemoryFileStore) enumerate(ctx context.Context, directory string, wantFiles bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, isFile := s.files[normalized]; isFile {
		return nil, fmt.Errorf("path %s is a file: %w", directory, store.ErrTypeMismatch)
	}
	if normalized != "/" && !s.dirs[normalized] {
		return nil, fmt.Errorf("directory %s: %w", directory, store.ErrNotFound)
	}

	var results []string
	if wantFiles {
		for path := range s.files {
			if gopath.Dir(path) == normalized {
				results = append(results, path)
			}
		}
	} else {
		for path := range s.dirs {
			if gopath.Dir(path) == normalized {
				results = append(results, path)
			}
		}
	}

	sort.Strings(results)
	return results, nil
}
