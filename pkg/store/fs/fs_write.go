// Write-side operations: atomic streaming writes, stream ingestion, and file
// deletion.

package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/driftfs/driftfs/pkg/store"
)

// Write creates or replaces the file at path with whatever fn writes.
//
// The data is staged into a temporary file in the target directory and
// committed with an atomic rename once fn returns nil and the file is
// synced. On fn failure (or cancellation) the temporary file is removed and
// any prior file at path is untouched, so a partially-written file is never
// observable.
func (s *FileSystemStore) Write(ctx context.Context, path string, fn func(w io.Writer) error) error {
	// ========================================================================
	// Step 1: Normalize and prepare the target directory
	// ========================================================================

	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return err
	}
	if normalized == "/" {
		return fmt.Errorf("cannot write to store root: %w", store.ErrTypeMismatch)
	}

	// NormalizePath rejects escaping paths, so for any non-root path the
	// parent of target is still inside basePath.
	target := s.diskPath(normalized)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	// ========================================================================
	// Step 2: Stage into a temporary file in the same directory
	// ========================================================================

	tmp, err := os.CreateTemp(filepath.Dir(target), ".drift-write-*")
	if err != nil {
		return fmt.Errorf("failed to create staging file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := fn(tmp); err != nil {
		cleanup()
		return fmt.Errorf("writer failed for %s: %w", path, err)
	}

	// A cancelled write commits nothing.
	if err := ctx.Err(); err != nil {
		cleanup()
		return err
	}

	// ========================================================================
	// Step 3: Sync and atomically commit with rename
	// ========================================================================

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync staging file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close staging file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}

	return nil
}

// CopyFrom copies all remaining bytes of src into a new or overwritten file
// at target, with the same commit guarantee as Write.
func (s *FileSystemStore) CopyFrom(ctx context.Context, target string, src io.Reader) error {
	return s.Write(ctx, target, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}

// DeleteFile removes the file at path. Deleting a missing file is an
// idempotent no-op; deleting a directory fails with ErrTypeMismatch.
func (s *FileSystemStore) DeleteFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return err
	}

	target := s.diskPath(normalized)

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	return nil
}
