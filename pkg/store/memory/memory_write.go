// Write-side operations: streaming writes, stream ingestion, and file
// deletion.

package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	gopath "path"

	"github.com/driftfs/driftfs/pkg/store"
)

// Write creates or replaces the file at path with whatever fn writes.
//
// The writer fn receives is a private buffer; nothing is observable at path
// until fn returns nil, at which point the buffer is committed in one
// critical section. On fn failure the buffer is discarded and any prior file
// at path is untouched, so a partially-written file is never visible.
func (s *MemoryFileStore) Write(ctx context.Context, path string, fn func(w io.Writer) error) error {
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

	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return fmt.Errorf("writer failed for %s: %w", path, err)
	}

	// Re-check after the writer ran: a cancelled write commits nothing.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirs[normalized] {
		return fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	s.files[normalized] = buf.Bytes()
	s.createDirLocked(gopath.Dir(normalized))

	return nil
}

// CopyFrom copies all remaining bytes of src into a new or overwritten file
// at target.
func (s *MemoryFileStore) CopyFrom(ctx context.Context, target string, src io.Reader) error {
	return s.Write(ctx, target, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}

// DeleteFile removes the file at path. Deleting a missing file is an
// idempotent no-op.
func (s *MemoryFileStore) DeleteFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirs[normalized] {
		return fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	delete(s.files, normalized)
	return nil
}
