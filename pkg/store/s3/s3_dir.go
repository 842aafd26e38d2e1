// Directory lifecycle and enumeration operations. Directories are zero-byte
// marker objects with a trailing "/" in their key, plus the implicit
// prefixes of existing objects.

package s3

import (
	"context"
	"fmt"
	gopath "path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/driftfs/driftfs/pkg/store"
)

// DirectoryExists reports whether directory exists, either as a marker
// object or as a non-empty key prefix. The root always exists.
func (s *S3FileStore) DirectoryExists(ctx context.Context, directory string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return false, err
	}
	if normalized == "/" {
		return true, nil
	}

	result, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.directoryKey(normalized)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("failed to list %s: %w", directory, err)
	}

	return aws.ToInt32(result.KeyCount) > 0, nil
}

// CreateDirectory creates marker objects for directory and every missing
// ancestor (mkdir -p). Re-creating an existing directory rewrites its
// markers, which is observably a no-op.
func (s *S3FileStore) CreateDirectory(ctx context.Context, directory string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return err
	}

	for dir := normalized; dir != "/"; dir = gopath.Dir(dir) {
		_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.directoryKey(dir)),
			Body:   strings.NewReader(""),
		})
		if err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// DeleteDirectory removes directory.
//
// With recursive false the directory must hold nothing but its own marker;
// any real content fails with ErrDirectoryNotEmpty. With recursive true all
// keys under the prefix are batch-deleted. Deleting a missing directory is
// a no-op; the root cannot be deleted.
func (s *S3FileStore) DeleteDirectory(ctx context.Context, directory string, recursive bool) error {
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

	marker := s.directoryKey(normalized)

	if !recursive {
		result, err := s.client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
			Bucket:  aws.String(s.bucket),
			Prefix:  aws.String(marker),
			MaxKeys: aws.Int32(2),
		})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", directory, err)
		}
		for _, obj := range result.Contents {
			if aws.ToString(obj.Key) != marker {
				return fmt.Errorf("directory %s: %w", directory, store.ErrDirectoryNotEmpty)
			}
		}

		_, err = s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(marker),
		})
		if err != nil {
			return fmt.Errorf("failed to delete directory %s: %w", directory, err)
		}
		return nil
	}

	// Recursive: collect and batch-delete everything under the prefix.
	paginator := awss3.NewListObjectsV2Paginator(s.client, &awss3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(marker),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", directory, err)
		}
		if len(page.Contents) == 0 {
			continue
		}

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}

		_, err = s.client.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{
				Objects: objects,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to delete contents of %s: %w", directory, err)
		}
	}

	return nil
}

// EnumerateFiles returns the objects directly under directory, in the key
// order S3 provides. Directory markers are not files and are skipped.
func (s *S3FileStore) EnumerateFiles(ctx context.Context, directory string) ([]string, error) {
	files, _, err := s.list(ctx, directory)
	return files, err
}

// EnumerateDirectories returns the common prefixes directly under
// directory, i.e. its subdirectories.
func (s *S3FileStore) EnumerateDirectories(ctx context.Context, directory string) ([]string, error) {
	_, dirs, err := s.list(ctx, directory)
	return dirs, err
}

// list performs one delimited, paginated listing of directory and splits
// the results into files and subdirectories.
func (s *S3FileStore) list(ctx context.Context, directory string) (files, dirs []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	normalized, err := s.NormalizePath(directory)
	if err != nil {
		return nil, nil, err
	}

	prefix := s.directoryKey(normalized)
	sawAny := false

	paginator := awss3.NewListObjectsV2Paginator(s.client, &awss3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list %s: %w", directory, err)
		}

		for _, obj := range page.Contents {
			sawAny = true
			key := aws.ToString(obj.Key)
			if key == prefix {
				// The directory's own marker.
				continue
			}
			files = append(files, s.storePath(key))
		}

		for _, cp := range page.CommonPrefixes {
			sawAny = true
			key := strings.TrimSuffix(aws.ToString(cp.Prefix), "/")
			dirs = append(dirs, s.storePath(key))
		}
	}

	if !sawAny && normalized != "/" {
		return nil, nil, fmt.Errorf("directory %s: %w", directory, store.ErrNotFound)
	}

	return files, dirs, nil
}
