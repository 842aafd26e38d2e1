// Write-side operations. Write streams caller data through a buffered
// multipart upload so large files never reside fully in memory and a failed
// writer never leaves a visible object.

package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/driftfs/driftfs/pkg/store"
)

// Write creates or replaces the object at path with whatever fn writes.
//
// Data fn produces is buffered up to the configured part size; once a part
// fills it is uploaded as one part of a multipart upload. Content smaller
// than a single part is committed with one PutObject instead. On fn failure
// or cancellation any in-progress multipart upload is aborted, so S3 never
// exposes a partial object and fn's own error propagates.
func (s *S3FileStore) Write(ctx context.Context, path string, fn func(w io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return err
	}
	// objectKey("/") collapses to the bare key prefix, which is the root
	// directory marker, so a root write must never reach the bucket.
	if normalized == "/" {
		return fmt.Errorf("cannot write to store root: %w", store.ErrTypeMismatch)
	}

	w := &objectWriter{
		store: s,
		ctx:   ctx,
		key:   s.objectKey(normalized),
	}

	if err := fn(w); err != nil {
		w.abort()
		return fmt.Errorf("writer failed for %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		w.abort()
		return err
	}

	if err := w.commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}

	return nil
}

// CopyFrom copies all remaining bytes of src into the object at target,
// with the same commit guarantee as Write.
func (s *S3FileStore) CopyFrom(ctx context.Context, target string, src io.Reader) error {
	return s.Write(ctx, target, func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
}

// DeleteFile removes the object at path. S3 deletes are idempotent, so a
// missing object is a no-op.
func (s *S3FileStore) DeleteFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	normalized, err := s.NormalizePath(path)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(normalized)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	return nil
}

// ============================================================================
// objectWriter
// ============================================================================

// objectWriter accumulates writes and uploads full parts as it goes. It is
// loaned to the caller's writer function for the duration of Write only.
type objectWriter struct {
	store    *S3FileStore
	ctx      context.Context
	key      string
	buffer   bytes.Buffer
	uploadID string
	parts    []types.CompletedPart
	err      error
}

func (w *objectWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	n, err := w.buffer.Write(p)
	if err != nil {
		w.err = err
		return n, err
	}

	if int64(w.buffer.Len()) >= w.store.partSize {
		if err := w.uploadPart(); err != nil {
			w.err = err
			return n, err
		}
	}

	return n, nil
}

// uploadPart ships the current buffer as the next part, starting the
// multipart upload on first use.
func (w *objectWriter) uploadPart() error {
	if w.buffer.Len() == 0 {
		return nil
	}

	if w.uploadID == "" {
		result, err := w.store.client.CreateMultipartUpload(w.ctx, &awss3.CreateMultipartUploadInput{
			Bucket: aws.String(w.store.bucket),
			Key:    aws.String(w.key),
		})
		if err != nil {
			return fmt.Errorf("failed to create multipart upload: %w", err)
		}
		w.uploadID = aws.ToString(result.UploadId)
	}

	partNumber := int32(len(w.parts) + 1)

	// Copy out the buffer: the slice is reused after Reset.
	data := append([]byte(nil), w.buffer.Bytes()...)

	result, err := w.store.client.UploadPart(w.ctx, &awss3.UploadPartInput{
		Bucket:     aws.String(w.store.bucket),
		Key:        aws.String(w.key),
		UploadId:   aws.String(w.uploadID),
		PartNumber: aws.Int32(partNumber),
		Body:       bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to upload part %d: %w", partNumber, err)
	}

	w.parts = append(w.parts, types.CompletedPart{
		ETag:       result.ETag,
		PartNumber: aws.Int32(partNumber),
	})
	w.buffer.Reset()

	return nil
}

// commit finalizes the object: completes the multipart upload, or performs
// a single PutObject when the content never filled one part.
func (w *objectWriter) commit() error {
	if w.err != nil {
		return w.err
	}

	if w.uploadID == "" {
		_, err := w.store.client.PutObject(w.ctx, &awss3.PutObjectInput{
			Bucket: aws.String(w.store.bucket),
			Key:    aws.String(w.key),
			Body:   bytes.NewReader(w.buffer.Bytes()),
		})
		if err != nil {
			return fmt.Errorf("failed to put object: %w", err)
		}
		return nil
	}

	if err := w.uploadPart(); err != nil {
		w.abort()
		return err
	}

	parts := w.parts
	sort.Slice(parts, func(i, j int) bool {
		return aws.ToInt32(parts[i].PartNumber) < aws.ToInt32(parts[j].PartNumber)
	})

	_, err := w.store.client.CompleteMultipartUpload(w.ctx, &awss3.CompleteMultipartUploadInput{
		Bucket:          aws.String(w.store.bucket),
		Key:             aws.String(w.key),
		UploadId:        aws.String(w.uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		w.abort()
		return fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return nil
}

// abort tears down any in-progress multipart upload. A fresh timeout context
// is used so an abort still runs after the caller's context is cancelled.
func (w *objectWriter) abort() {
	if w.uploadID == "" {
		return
	}

	abortCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, _ = w.store.client.AbortMultipartUpload(abortCtx, &awss3.AbortMultipartUploadInput{
		Bucket:   aws.String(w.store.bucket),
		Key:      aws.String(w.key),
		UploadId: aws.String(w.uploadID),
	})
	w.uploadID = ""
}
