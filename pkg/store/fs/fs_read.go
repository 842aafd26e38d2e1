// Read-side operations: existence checks, size queries, and streaming reads.

package fs

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/driftfs/driftfs/pkg/store"
)

// FileExists reports whether a regular file exists at path. A directory at
// path reports false.
func (s *FileSystemStore) FileExists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(s.diskPath(normalized))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return !info.IsDir(), nil
}

// FileSize returns the size of the file at path in bytes.
func (s *FileSystemStore) FileSize(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(s.diskPath(normalized))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	return info.Size(), nil
}

// BeginRead opens the file at path for reading, positioned at offset 0.
//
// The caller owns the returned reader and must close it. The reader has no
// built-in cancellation; callers monitoring a context should close it when
// the context ends.
func (s *FileSystemStore) BeginRead(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(s.diskPath(normalized))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	return file, nil
}

// CopyTo copies the full contents of the file at sourceFile into dst.
func (s *FileSystemStore) CopyTo(ctx context.Context, sourceFile string, dst io.Writer) error {
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
