// Directory lifecycle and enumeration operations.

package fs

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/driftfs/driftfs/pkg/store"
)

// DirectoryExists reports whether a directory exists at directory.
func (s *FileSystemStore) DirectoryExists(ctx context.Context, directory string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(s.diskPath(normalized))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", directory, err)
	}

	return info.IsDir(), nil
}

// CreateDirectory creates directory and any missing intermediates
// (mkdir -p). Creating an existing directory is a no-op.
func (s *FileSystemStore) CreateDirectory(ctx context.Context, directory string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.diskPath(normalized), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", directory, err)
	}

	return nil
}

// DeleteDirectory removes directory.
//
// With recursive false the directory must be empty; a non-empty directory
// fails with ErrDirectoryNotEmpty. Deleting a missing directory is a no-op.
// The root cannot be deleted.
func (s *FileSystemStore) DeleteDirectory(ctx context.Context, directory string, recursive bool) error {
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

	target := s.diskPath(normalized)

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is a file: %w", directory, store.ErrTypeMismatch)
	}

	if recursive {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to delete directory %s: %w", directory, err)
		}
		return nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", directory, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s: %w", directory, store.ErrDirectoryNotEmpty)
	}

	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to delete directory %s: %w", directory, err)
	}

	return nil
}

// EnumerateFiles returns the files directly under directory, in the
// lexical order os.ReadDir provides.
func (s *FileSystemStore) EnumerateFiles(ctx context.Context, directory string) ([]string, error) {
	return s.enumerate(ctx, directory, true)
}

// EnumerateDirectories returns the subdirectories directly under directory.
func (s *FileSystemStore) EnumerateDirectories(ctx context.Context, directory string) ([]string, error) {
	return s.enumerate(ctx, directory, false)
}

func (s *FileSystemStore) enumerate(ctx context.Context, directory string, wantFiles bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.diskPath(normalized))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory %s: %w", directory, store.ErrNotFound)
		}
		if info, statErr := os.Stat(s.diskPath(normalized)); statErr == nil && !info.IsDir() {
			return nil, fmt.Errorf("path %s is a file: %w", directory, store.ErrTypeMismatch)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", directory, err)
	}

	var results []string
	for _, entry := range entries {
		if entry.IsDir() == wantFiles {
			continue
		}
		// In-flight write stages are not part of the namespace.
		if strings.HasPrefix(entry.Name(), ".drift-write-") {
			continue
		}
		results = append(results, s.Combine(normalized, entry.Name()))
	}

	return results, nil
}
