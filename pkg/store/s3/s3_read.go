// Read-side operations: existence checks, size queries, and streaming reads.

package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/driftfs/driftfs/pkg/store"
)

// FileExists reports whether an object exists at path. Directory markers do
// not count as files.
func (s *S3FileStore) FileExists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return false, err
	}
	if normalized == "/" {
		return false, nil
	}

	_, err = s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(normalized)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to head %s: %w", path, err)
	}

	return true, nil
}

// FileSize returns the size of the object at path in bytes.
//
// A path holding only a directory marker or key prefix reports
// ErrTypeMismatch; an entirely absent path reports ErrNotFound.
func (s *S3FileStore) FileSize(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return 0, err
	}
	if normalized == "/" {
		return 0, fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
	}

	head, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(normalized)),
	})
	if err != nil {
		if isNotFound(err) {
			isDir, dirErr := s.DirectoryExists(ctx, normalized)
			if dirErr == nil && isDir {
				return 0, fmt.Errorf("path %s is a directory: %w", path, store.ErrTypeMismatch)
			}
			return 0, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to head %s: %w", path, err)
	}

	return aws.ToInt64(head.ContentLength), nil
}

// BeginRead opens the object at path for reading, positioned at offset 0.
//
// The caller owns the returned reader and must close it to release the
// underlying HTTP response body.
func (s *S3FileStore) BeginRead(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(normalized)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", path, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}

	return result.Body, nil
}

// CopyTo copies the full contents of the object at sourceFile into dst.
func (s *S3FileStore) CopyTo(ctx context.Context, sourceFile string, dst io.Writer) error {
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

// isNotFound reports whether an S3 error means the object or bucket entry
// does not exist. GetObject surfaces NoSuchKey while HeadObject surfaces a
// bare NotFound, so both are checked.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
