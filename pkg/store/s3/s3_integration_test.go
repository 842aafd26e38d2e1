//go:build integration

package s3_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftfs/driftfs/pkg/store"
	s3store "github.com/driftfs/driftfs/pkg/store/s3"
	storetesting "github.com/driftfs/driftfs/pkg/store/testing"
)

// setupTestS3 creates an S3 client and a test bucket on an S3-compatible
// endpoint (Localstack by default) and returns a cleanup function that
// empties and deletes the bucket.
func setupTestS3(t *testing.T, bucketName string) (*awss3.Client, func()) {
	t.Helper()
	ctx := context.Background()

	endpoint := os.Getenv("LOCALSTACK_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:4566"
	}

	cfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion("us-east-1"),
		awsConfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               endpoint,
					HostnameImmutable: true,
					Source:            aws.EndpointSourceCustom,
				}, nil
			},
		)),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			"test", "test", "",
		)),
	)
	if err != nil {
		t.Fatalf("Failed to load AWS config: %v", err)
	}

	// Path-style URLs are required for Localstack.
	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.UsePathStyle = true
	})

	_, err = client.CreateBucket(ctx, &awss3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		t.Fatalf("Failed to create test bucket: %v", err)
	}

	cleanup := func() {
		listResp, _ := client.ListObjectsV2(ctx, &awss3.ListObjectsV2Input{
			Bucket: aws.String(bucketName),
		})
		if listResp != nil {
			for _, obj := range listResp.Contents {
				client.DeleteObject(ctx, &awss3.DeleteObjectInput{
					Bucket: aws.String(bucketName),
					Key:    obj.Key,
				})
			}
		}
		client.DeleteBucket(ctx, &awss3.DeleteBucketInput{
			Bucket: aws.String(bucketName),
		})
	}

	return client, cleanup
}

// TestS3FileStore_Integration runs the full store test suite against an
// S3-compatible service.
//
// Prerequisites:
//   - Localstack running on localhost:4566 (or LOCALSTACK_ENDPOINT set)
//   - Run with: go test -tags=integration ./pkg/store/s3/...
//
// To start Localstack:
//
//	docker run --rm -p 4566:4566 localstack/localstack
func TestS3FileStore_Integration(t *testing.T) {
	ctx := context.Background()

	bucketName := "driftfs-test-bucket"
	client, cleanup := setupTestS3(t, bucketName)
	defer cleanup()

	// Each test gets a fresh store with a unique key prefix for isolation.
	testCounter := 0
	suite := &storetesting.StoreTestSuite{
		NewStore: func(t *testing.T) store.FileStore {
			testCounter++
			s, err := s3store.NewS3FileStore(ctx, s3store.Config{
				Client:    client,
				Bucket:    bucketName,
				KeyPrefix: fmt.Sprintf("test-%d/", testCounter),
				PartSize:  5 * 1024 * 1024,
			})
			require.NoError(t, err)
			return s
		},
	}
	suite.Run(t)
}

// TestS3FileStore_Multipart writes a payload larger than the part size so the
// upload goes through the multipart path, then reads it back.
func TestS3FileStore_Multipart(t *testing.T) {
	ctx := context.Background()

	bucketName := "driftfs-multipart-test"
	client, cleanup := setupTestS3(t, bucketName)
	defer cleanup()

	s, err := s3store.NewS3FileStore(ctx, s3store.Config{
		Client:   client,
		Bucket:   bucketName,
		PartSize: 5 * 1024 * 1024,
	})
	require.NoError(t, err)

	// 12MB: two full parts plus a final partial part.
	payload := make([]byte, 12*1024*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	err = store.WriteAllBytes(ctx, s, "/big.bin", payload)
	require.NoError(t, err)

	size, err := s.FileSize(ctx, "/big.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)

	got, err := store.ReadAllBytes(ctx, s, "/big.bin")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

// TestS3FileStore_URIPaths verifies that s3:// URIs addressing the store's
// own bucket are accepted and foreign buckets are rejected.
func TestS3FileStore_URIPaths(t *testing.T) {
	ctx := context.Background()

	bucketName := "driftfs-uri-test"
	client, cleanup := setupTestS3(t, bucketName)
	defer cleanup()

	s, err := s3store.NewS3FileStore(ctx, s3store.Config{
		Client: client,
		Bucket: bucketName,
	})
	require.NoError(t, err)

	err = store.WriteAllText(ctx, s, "/reports/q1.txt", "totals")
	require.NoError(t, err)

	uri := fmt.Sprintf("s3://%s/reports/q1.txt", bucketName)
	text, err := store.ReadAllText(ctx, s, uri)
	require.NoError(t, err)
	assert.Equal(t, "totals", text)

	_, err = s.NormalizePath("s3://some-other-bucket/reports/q1.txt")
	assert.ErrorIs(t, err, store.ErrInvalidPath)
}

func TestS3FileStore_MissingBucket(t *testing.T) {
	ctx := context.Background()

	bucketName := "driftfs-headbucket-test"
	client, cleanup := setupTestS3(t, bucketName)
	defer cleanup()

	_, err := s3store.NewS3FileStore(ctx, s3store.Config{
		Client: client,
		Bucket: "driftfs-does-not-exist",
	})
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
