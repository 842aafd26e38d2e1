package store

import (
	"context"
	"io"
)

// ============================================================================
// FileStore Interface
// ============================================================================

// FileStore provides a backend-agnostic contract for file and directory
// storage.
//
// This interface is designed to abstract away the underlying storage mechanism
// (local filesystem, S3-compatible object storage, memory, etc.) and provide a
// consistent API for path manipulation, directory lifecycle, and streaming
// file I/O. Callers hold only this interface, never a concrete backend type,
// so backends can be swapped transparently.
//
// Path Namespace:
//
// Every store owns a single rooted namespace of opaque path strings. Paths
// produced by Combine, DirectoryName, FileName, and UniqueDirectoryPath are
// always acceptable as input to every other path-consuming operation on the
// same store instance (round-trip closure). NormalizePath is the sole
// validation gate: it either returns the canonical absolute form of a path or
// rejects it with ErrInvalidPath. All other path-accepting operations may
// assume their input is normalizable; they normalize internally.
//
// Store Identity:
//
// Name reports the backend kind ("filesystem", "memory", "s3") and ID reports
// a stable instance identifier (base directory, bucket, random instance
// token). Callers use the pair to detect backend mismatches when a path or
// cached artifact produced by one store is replayed against another.
//
// Write Semantics:
//
// Write takes a caller-supplied function rather than returning a raw writable
// stream so backends needing request/response framing (multipart upload
// commit, temp-file rename) can own the stream lifecycle. The function
// boundary is the transactional unit: on success the file is fully durable at
// the target path, on failure no partially-written file is observable.
//
// Enumeration:
//
// EnumerateFiles and EnumerateDirectories return single-level,
// non-recursive listings. Recursive traversal is a caller-composed operation,
// not a backend primitive, because recursive listing cost varies too much
// across backends to standardize.
//
// Thread Safety:
//
// Implementations must be safe for concurrent use by multiple goroutines.
// Concurrent writes to the same path have last-writer-wins semantics on all
// bundled backends. Streams returned by BeginRead and loaned by Write are
// single-owner and must not be shared across goroutines.
//
// Error Handling:
//
// Operations surface the sentinel errors in errors.go wrapped with context
// (fmt.Errorf + %w); callers branch with errors.Is. The store never retries:
// transient backend faults surface as ErrUnavailable and retry policy belongs
// to the caller.
type FileStore interface {
	// ========================================================================
	// Identity
	// ========================================================================

	// Name returns the human-readable backend kind, e.g. "filesystem" or "s3".
	Name() string

	// ID returns a stable identifier distinguishing store instances of the
	// same kind (e.g. distinct base directories, buckets, or accounts).
	ID() string

	// ========================================================================
	// Path Model (pure, no I/O)
	// ========================================================================

	// RootDirectory returns the store's top-level directory. Enumerating the
	// root always succeeds on a reachable store.
	RootDirectory() string

	// Combine joins path segments left to right using the store's separator
	// convention. It is associative:
	//
	//	s.Combine(s.Combine(a, b), c) == s.Combine(a, b, c)
	Combine(paths ...string) string

	// DirectoryName returns the parent-directory portion of path.
	//
	// Returns ErrInvalidPath if path has no normalizable parent, e.g. it
	// already denotes the store root.
	DirectoryName(path string) (string, error)

	// FileName returns the final segment of path. It round-trips with
	// Combine: FileName(Combine(dir, name)) == name.
	//
	// Returns ErrInvalidPath if path has no final segment (the store root).
	FileName(path string) (string, error)

	// NormalizePath returns the normalized absolute form of path, or
	// ErrInvalidPath if the input cannot be interpreted inside this store's
	// namespace (malformed, wrong scheme, escapes the store root).
	//
	// This is the store's sole path-validation gate; every other operation
	// accepts anything NormalizePath accepts.
	NormalizePath(path string) (string, error)

	// UniqueDirectoryPath returns a directory path guaranteed not to collide
	// with any existing or concurrently generated path from this store
	// instance. It only reserves a name; the directory is not created.
	UniqueDirectoryPath() string

	// ========================================================================
	// Files
	// ========================================================================

	// FileExists reports whether a file exists at path. A directory at path
	// reports false. Backend unreachability surfaces as ErrUnavailable.
	FileExists(ctx context.Context, path string) (bool, error)

	// FileSize returns the size in bytes of the file at path.
	//
	// Returns ErrNotFound if nothing exists at path and ErrTypeMismatch if
	// path references a directory.
	FileSize(ctx context.Context, path string) (int64, error)

	// DeleteFile removes the file at path.
	//
	// Deleting a missing file is an idempotent no-op on every bundled
	// backend: the call returns nil. Returns ErrTypeMismatch if path
	// references a directory.
	DeleteFile(ctx context.Context, path string) error

	// ========================================================================
	// Directories
	// ========================================================================

	// EnumerateFiles returns the paths of files directly under directory
	// (non-recursive). Returns ErrNotFound if the directory is absent.
	EnumerateFiles(ctx context.Context, directory string) ([]string, error)

	// EnumerateDirectories returns the paths of subdirectories directly under
	// directory (non-recursive). Returns ErrNotFound if the directory is
	// absent.
	EnumerateDirectories(ctx context.Context, directory string) ([]string, error)

	// DirectoryExists reports whether a directory exists at path.
	DirectoryExists(ctx context.Context, directory string) (bool, error)

	// CreateDirectory creates the directory and any missing intermediate
	// directories (mkdir -p semantics). Creating an existing directory is an
	// idempotent no-op.
	CreateDirectory(ctx context.Context, directory string) error

	// DeleteDirectory removes the directory. With recursive false the
	// directory must be empty; a non-empty directory fails with
	// ErrDirectoryNotEmpty. With recursive true the directory and all its
	// contents are removed.
	DeleteDirectory(ctx context.Context, directory string, recursive bool) error

	// ========================================================================
	// Streaming I/O
	// ========================================================================

	// Write creates or replaces the file at path with whatever fn writes to
	// the loaned writer.
	//
	// The writer is on loan to fn only for the duration of its execution; fn
	// must not retain it. On fn failure (or context cancellation) the store
	// guarantees no partially-written file is observable at path: the target
	// is either fully committed or fully absent/unchanged, and fn's own error
	// propagates to the caller unmodified (wrapped with %w).
	//
	// A path that normalizes to the root directory fails with
	// ErrTypeMismatch before fn runs: the root is a directory, never a file.
	Write(ctx context.Context, path string, fn func(w io.Writer) error) error

	// BeginRead opens the file at path for reading, positioned at offset 0.
	//
	// The caller owns the returned reader and must close it. Returns
	// ErrNotFound if the file is absent.
	BeginRead(ctx context.Context, path string) (io.ReadCloser, error)

	// CopyFrom copies all remaining bytes of src into a new or overwritten
	// file at target, with the same commit guarantee as Write.
	CopyFrom(ctx context.Context, target string, src io.Reader) error

	// CopyTo copies the full contents of the file at sourceFile into dst,
	// starting at dst's current position. Returns ErrNotFound if the file is
	// absent.
	CopyTo(ctx context.Context, sourceFile string, dst io.Writer) error
}
