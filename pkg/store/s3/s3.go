// Package s3 implements a file store backend on Amazon S3 or S3-compatible
// object storage.
//
// This file contains the store type, configuration, constructor, identity,
// and the path model mapping store paths onto object keys.
package s3

import (
	"context"
	"fmt"
	gopath "path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/driftfs/driftfs/pkg/store"
)

// S3FileStore implements store.FileStore on an S3 bucket.
//
// Path-To-Key Design:
//   - Store path "/data/a.txt" maps to object key "<keyPrefix>data/a.txt"
//   - Directories exist as zero-byte marker objects with a trailing "/"
//     ("<keyPrefix>data/"), plus implicitly as non-empty key prefixes
//   - Enumeration uses ListObjectsV2 with Delimiter "/" so listings are
//     single-level, matching the contract
//
// Foreign Paths:
// NormalizePath additionally accepts full "s3://bucket/key" URIs, but only
// for this store's own bucket; a URI naming any other bucket is rejected
// with ErrInvalidPath. This lets callers detect when a path produced by one
// account is replayed against another.
//
// Concurrency:
// S3 operations are safe for concurrent use. Concurrent writers to the same
// key are last-writer-wins under S3's consistency model. Write streams
// through a multipart upload which is aborted on any failure, so S3 never
// exposes a partially-uploaded object.
type S3FileStore struct {
	store.SlashPathModel

	client    *awss3.Client
	bucket    string
	keyPrefix string
	partSize  int64
}

// Config contains the settings for an S3 file store.
type Config struct {
	// Client is the configured S3 client.
	Client *awss3.Client

	// Bucket is the bucket name. It must already exist.
	Bucket string

	// KeyPrefix is an optional prefix prepended to every object key,
	// normalized to end with "/" when non-empty.
	KeyPrefix string

	// PartSize is the multipart upload part size in bytes. Values below the
	// S3 minimum of 5MB are raised to the 10MB default.
	PartSize int64
}

// defaultPartSize is the multipart part size used when none is configured.
const defaultPartSize = 10 * 1024 * 1024

// minPartSize is the S3 minimum for any part except the last.
const minPartSize = 5 * 1024 * 1024

// NewS3FileStore creates a file store over the given bucket and verifies
// access to it with a HeadBucket call. The bucket is not created.
func NewS3FileStore(ctx context.Context, cfg Config) (*S3FileStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Client == nil {
		return nil, fmt.Errorf("s3 file store: client is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 file store: bucket is required")
	}

	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	partSize := cfg.PartSize
	if partSize < minPartSize {
		partSize = defaultPartSize
	}

	s := &S3FileStore{
		client:    cfg.Client,
		bucket:    cfg.Bucket,
		keyPrefix: prefix,
		partSize:  partSize,
	}

	if _, err := s.client.HeadBucket(ctx, &awss3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return nil, fmt.Errorf("bucket %s not accessible: %w", s.bucket, store.ErrUnavailable)
	}

	return s, nil
}

// Name returns the backend kind.
func (s *S3FileStore) Name() string {
	return "s3"
}

// ID identifies the bucket and prefix this instance is bound to.
func (s *S3FileStore) ID() string {
	return "s3://" + s.bucket + "/" + s.keyPrefix
}

// ============================================================================
// Path Model
// ============================================================================
//
// DirectoryName and FileName are redefined rather than inherited so they run
// through this store's NormalizePath (the embedded slash model cannot see
// the URI handling below).

// NormalizePath returns the canonical "/"-rooted form of path.
//
// Accepts plain slash paths and "s3://bucket/key" URIs for this store's own
// bucket. URIs for any other bucket or scheme fail with ErrInvalidPath.
func (s *S3FileStore) NormalizePath(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "s3://"); ok {
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket != s.bucket {
			return "", fmt.Errorf("path %q references foreign bucket %q: %w", path, bucket, store.ErrInvalidPath)
		}
		return s.SlashPathModel.NormalizePath("/" + key)
	}
	return s.SlashPathModel.NormalizePath(path)
}

// DirectoryName returns the parent portion of path.
func (s *S3FileStore) DirectoryName(path string) (string, error) {
	normalized, err := s.NormalizePath(path)
	if err != nil {
		return "", err
	}
	if normalized == "/" {
		return "", fmt.Errorf("path %q has no parent directory: %w", path, store.ErrInvalidPath)
	}
	return gopath.Dir(normalized), nil
}

// FileName returns the final segment of path.
func (s *S3FileStore) FileName(path string) (string, error) {
	normalized, err := s.NormalizePath(path)
	if err != nil {
		return "", err
	}
	if normalized == "/" {
		return "", fmt.Errorf("path %q has no file name: %w", path, store.ErrInvalidPath)
	}
	return gopath.Base(normalized), nil
}

// objectKey maps a normalized store path to its object key.
func (s *S3FileStore) objectKey(normalized string) string {
	return s.keyPrefix + strings.TrimPrefix(normalized, "/")
}

// directoryKey maps a normalized directory path to the prefix all its
// descendants share. The root maps to the bare key prefix.
func (s *S3FileStore) directoryKey(normalized string) string {
	if normalized == "/" {
		return s.keyPrefix
	}
	return s.objectKey(normalized) + "/"
}

// storePath maps an object key back into the store namespace.
func (s *S3FileStore) storePath(key string) string {
	return "/" + strings.TrimPrefix(key, s.keyPrefix)
}
