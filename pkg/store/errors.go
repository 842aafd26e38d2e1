package store

import "errors"

// ============================================================================
// Standard File Store Errors
// ============================================================================

// These errors provide a consistent way to indicate common failure conditions
// across all file store implementations. Callers should check for them with
// errors.Is and never rely on error strings.
//
// Error Wrapping:
// Implementations wrap these sentinels with additional context:
//
//	if os.IsNotExist(err) {
//	    return fmt.Errorf("file %s: %w", path, store.ErrNotFound)
//	}

var (
	// ErrNotFound indicates the operation referenced a path that does not
	// exist where existence was required.
	//
	// This error is returned when:
	//   - BeginRead, FileSize, or CopyTo reference an absent file
	//   - EnumerateFiles or EnumerateDirectories reference an absent directory
	//
	// Note: DeleteFile on a missing path is NOT an error — it is an
	// idempotent no-op on every bundled backend.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidPath indicates a path could not be normalized into this
	// store's namespace.
	//
	// This error is returned when:
	//   - NormalizePath receives a malformed or empty path
	//   - The path carries a foreign scheme (e.g. an s3:// URI for a bucket
	//     the store does not own)
	//   - The path escapes the store root after normalization
	ErrInvalidPath = errors.New("invalid path")

	// ErrTypeMismatch indicates the operation expected a file but found a
	// directory, or vice versa.
	//
	// This error is returned when:
	//   - FileSize or DeleteFile reference a directory
	//   - Enumeration operations reference a file
	ErrTypeMismatch = errors.New("path type mismatch")

	// ErrDirectoryNotEmpty indicates a non-recursive delete was attempted on
	// a directory with contents. Retry with recursive=true to remove the
	// directory and everything under it.
	ErrDirectoryNotEmpty = errors.New("directory not empty")

	// ErrUnavailable indicates the storage backend is unreachable, timed
	// out, or returned a retriable fault.
	//
	// This is a transient error. The store itself never retries; retry
	// policy belongs to the caller or its scheduler.
	ErrUnavailable = errors.New("storage unavailable")
)
