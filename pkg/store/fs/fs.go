// Package fs implements a local-filesystem file store backend.
//
// This file contains the store type, constructor, identity, and the mapping
// between store paths and on-disk paths.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/driftfs/driftfs/pkg/store"
)

// FileSystemStore implements store.FileStore on a local directory tree.
//
// The store namespace is a "/"-rooted tree mapped under a single base
// directory on disk: store path "/data/a.txt" lives at
// filepath.Join(basePath, "data/a.txt").
//
// Thread Safety:
// Individual filesystem operations are thread-safe at the OS level. Write
// stages into a temporary file in the target directory and commits with
// rename, so concurrent writers to the same path are last-writer-wins and a
// reader never observes a partially-written file.
type FileSystemStore struct {
	store.SlashPathModel

	basePath string
}

// NewFileSystemStore creates a file store rooted at basePath, creating the
// base directory if it does not exist.
func NewFileSystemStore(ctx context.Context, basePath string) (*FileSystemStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileSystemStore{basePath: abs}, nil
}

// Name returns the backend kind.
func (s *FileSystemStore) Name() string {
	return "filesystem"
}

// ID returns the absolute base directory, which identifies the mount.
func (s *FileSystemStore) ID() string {
	return s.basePath
}

// diskPath maps a normalized store path onto the disk. Inputs must have
// passed NormalizePath, which guarantees they cannot escape basePath.
func (s *FileSystemStore) diskPath(normalized string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(normalized))
}
