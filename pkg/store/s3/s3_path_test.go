package s3

import (
	"context"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/store"
)

// newUnconnectedStore builds a store for exercising path logic only. None of
// the methods under test touch the S3 client.
func newUnconnectedStore(bucket, keyPrefix string) *S3FileStore {
	return &S3FileStore{
		bucket:    bucket,
		keyPrefix: keyPrefix,
		partSize:  defaultPartSize,
	}
}

func TestS3NormalizePath(t *testing.T) {
	s := newUnconnectedStore("archive", "team/")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain absolute", "/docs/readme.txt", "/docs/readme.txt"},
		{"plain relative", "docs/readme.txt", "/docs/readme.txt"},
		{"dot segments", "/docs/./a/../readme.txt", "/docs/readme.txt"},
		{"own bucket uri", "s3://archive/docs/readme.txt", "/docs/readme.txt"},
		{"own bucket root", "s3://archive/", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.NormalizePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestS3NormalizePath_ForeignBucket(t *testing.T) {
	s := newUnconnectedStore("archive", "")

	_, err := s.NormalizePath("s3://elsewhere/docs/readme.txt")
	assert.ErrorIs(t, err, store.ErrInvalidPath)
}

func TestS3DirectoryNameAndFileName_URIs(t *testing.T) {
	s := newUnconnectedStore("archive", "")

	dir, err := s.DirectoryName("s3://archive/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "/docs", dir)

	name, err := s.FileName("s3://archive/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "readme.txt", name)

	_, err = s.DirectoryName("s3://archive/")
	assert.ErrorIs(t, err, store.ErrInvalidPath)
}

func TestS3KeyMapping(t *testing.T) {
	s := newUnconnectedStore("archive", "team/")

	assert.Equal(t, "team/docs/readme.txt", s.objectKey("/docs/readme.txt"))
	assert.Equal(t, "team/docs/", s.directoryKey("/docs"))
	assert.Equal(t, "team/", s.directoryKey("/"))
	assert.Equal(t, "/docs/readme.txt", s.storePath("team/docs/readme.txt"))
}

func TestS3ConfigValidation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3FileStore(ctx, Config{Bucket: "archive"})
	assert.Error(t, err)

	_, err = NewS3FileStore(ctx, Config{Client: &awss3.Client{}})
	assert.Error(t, err)
}
