package store

import (
	"fmt"
	gopath "path"
	"strings"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Slash Path Model
// ============================================================================

// SlashPathModel implements the pure path operations of FileStore for stores
// whose namespace is a "/"-rooted, "/"-separated tree. The filesystem,
// memory, and S3 backends all embed it.
//
// All methods are pure and perform no I/O.
type SlashPathModel struct{}

// RootDirectory returns "/", the top of every slash namespace.
func (SlashPathModel) RootDirectory() string {
	return "/"
}

// Combine joins segments left to right with "/" and cleans the result.
// Cleaning makes the operation associative: combining a combined prefix with
// a further segment equals combining all segments at once.
func (SlashPathModel) Combine(paths ...string) string {
	return gopath.Join(paths...)
}

// DirectoryName returns the parent portion of path, or ErrInvalidPath when
// path already denotes the root.
func (m SlashPathModel) DirectoryName(path string) (string, error) {
	normalized, err := m.NormalizePath(path)
	if err != nil {
		return "", err
	}
	if normalized == "/" {
		return "", fmt.Errorf("path %q has no parent directory: %w", path, ErrInvalidPath)
	}
	return gopath.Dir(normalized), nil
}

// FileName returns the final segment of path, or ErrInvalidPath when path
// denotes the root.
func (m SlashPathModel) FileName(path string) (string, error) {
	normalized, err := m.NormalizePath(path)
	if err != nil {
		return "", err
	}
	if normalized == "/" {
		return "", fmt.Errorf("path %q has no file name: %w", path, ErrInvalidPath)
	}
	return gopath.Base(normalized), nil
}

// NormalizePath returns the canonical absolute form of path inside a slash
// namespace.
//
// Relative inputs resolve against the root. Inputs are rejected with
// ErrInvalidPath when they are empty, carry a URI scheme, contain a NUL
// byte, or escape the root after cleaning (leading "..").
func (SlashPathModel) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path: %w", ErrInvalidPath)
	}
	if strings.Contains(path, "://") {
		return "", fmt.Errorf("path %q carries a scheme foreign to this store: %w", path, ErrInvalidPath)
	}
	if strings.ContainsRune(path, '\x00') {
		return "", fmt.Errorf("path %q contains a NUL byte: %w", path, ErrInvalidPath)
	}

	cleaned := gopath.Clean("/" + path)
	if cleaned == "/.." || strings.HasPrefix(cleaned, "/../") {
		return "", fmt.Errorf("path %q escapes the store root: %w", path, ErrInvalidPath)
	}

	return cleaned, nil
}

// UniqueDirectoryPath reserves a fresh root-level directory name derived
// from a ULID. The default entropy source is a locked monotonic reader, so
// concurrent calls from any number of goroutines never collide.
func (SlashPathModel) UniqueDirectoryPath() string {
	return "/drift-" + ulid.Make().String()
}
