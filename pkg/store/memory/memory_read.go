// Read-side operations: existence checks, size queries, and streaming reads.

package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/driftfs/driftfs/pkg/store"
)

// FileExists reports whether a file exists at path. A directory at path
// reports false.
func (s *MemoryFileStore) FileExists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[normalized]
	return ok, nil
}

// FileSize returns the size of the file at path in bytes.
func (s *MemoryFileStore) FileSize(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[normalized]
	if !ok {
		if normalized == "/" || s.dirs[normalized] {
			return 0, fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
		}
		return 0, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
	}

	return int64(len(data)), nil
}

// BeginRead opens the file at path for reading, positioned at offset 0.
//
// The returned reader holds a private copy of the contents, so a concurrent
// overwrite of the same path never disturbs an in-flight read.
func (s *MemoryFileStore) BeginRead(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[normalized]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
	}

	snapshot := append([]byte(nil), data...)
	return io.NopCloser(bytes.NewReader(snapshot)), nil
}

// CopyTo copies the full contents of the file at sourceFile into dst.
func (s *MemoryFileStore) CopyTo(ctx context.Context, sourceFile string, dst io.Writer) error {
	rc, err := s.BeginRead(ctx, sourceFile)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	if _, err := io.Copy(dst, rc); err != nil {
		return fmt.Errorf("failed to copy %s: %w", sourceFile, err)
	}
	return nil
}
