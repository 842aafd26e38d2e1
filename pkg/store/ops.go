package store

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// ============================================================================
// Convenience Operation Layer
// ============================================================================
//
// Everything in this file is expressible purely in terms of the FileStore
// capability interface and therefore requires no new backend capability.
// Generic helpers are package-level functions because Go methods cannot carry
// their own type parameters.
//
// Text helpers use UTF-8, always. There is no locale-dependent default.

// RandomFilePath returns Combine(directory, token) with a fresh random file
// name token.
//
// Collision probability is whatever the UUID generator provides; unlike
// FileStore.UniqueDirectoryPath the result is not guaranteed collision-free.
func RandomFilePath(s FileStore, directory string) string {
	return s.Combine(directory, uuid.NewString())
}

// EnumerateRootDirectories lists the directories directly under the store
// root.
func EnumerateRootDirectories(ctx context.Context, s FileStore) ([]string, error) {
	return s.EnumerateDirectories(ctx, s.RootDirectory())
}

// Read scope-acquires a read stream for path, runs deserialize over it, and
// guarantees the stream is released on every exit path, including a
// deserializer failure. The deserializer's result or error propagates to the
// caller.
//
// The reader is on loan to deserialize only for the duration of its own
// execution; it must not be retained.
func Read[T any](ctx context.Context, s FileStore, path string, deserialize func(r io.Reader) (T, error)) (T, error) {
	var zero T

	rc, err := s.BeginRead(ctx, path)
	if err != nil {
		return zero, err
	}
	defer func() { _ = rc.Close() }()

	return deserialize(rc)
}

// WriteResult is the result-carrying form of FileStore.Write: fn consumes
// the loaned writer and produces a value alongside the committed file.
//
// The commit guarantee is unchanged — on fn failure no partially-written
// file is observable at path and fn's error propagates.
func WriteResult[R any](ctx context.Context, s FileStore, path string, fn func(w io.Writer) (R, error)) (R, error) {
	var result R

	err := s.Write(ctx, path, func(w io.Writer) error {
		r, err := fn(w)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		var zero R
		return zero, err
	}

	return result, nil
}

// ReadAllBytes reads the entire file at path.
func ReadAllBytes(ctx context.Context, s FileStore, path string) ([]byte, error) {
	return Read(ctx, s, path, func(r io.Reader) ([]byte, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, nil
	})
}

// WriteAllBytes creates or replaces the file at path with data.
func WriteAllBytes(ctx context.Context, s FileStore, path string, data []byte) error {
	return s.Write(ctx, path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ReadAllText reads the entire file at path as a UTF-8 string.
func ReadAllText(ctx context.Context, s FileStore, path string) (string, error) {
	data, err := ReadAllBytes(ctx, s, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteAllText creates or replaces the file at path with the UTF-8 encoding
// of text.
func WriteAllText(ctx context.Context, s FileStore, path string, text string) error {
	return s.Write(ctx, path, func(w io.Writer) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

// ReadLines reads the file at path as UTF-8 text split into lines. Line
// terminators ("\n" or "\r\n") are not included in the results.
func ReadLines(ctx context.Context, s FileStore, path string) ([]string, error) {
	return Read(ctx, s, path, func(r io.Reader) ([]string, error) {
		var lines []string

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan lines of %s: %w", path, err)
		}

		return lines, nil
	})
}

// WriteLines creates or replaces the file at path with the given lines,
// each terminated by "\n", encoded as UTF-8.
func WriteLines(ctx context.Context, s FileStore, path string, lines []string) error {
	return s.Write(ctx, path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, line := range lines {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// maxLineLength bounds a single line accepted by ReadLines (16MB).
const maxLineLength = 16 * 1024 * 1024

// PathsEqual reports whether two paths denote the same location on store s,
// comparing their normalized forms. Paths that fail normalization are never
// equal to anything.
func PathsEqual(s FileStore, a, b string) bool {
	na, err := s.NormalizePath(a)
	if err != nil {
		return false
	}
	nb, err := s.NormalizePath(b)
	if err != nil {
		return false
	}
	return na == nb
}
