// Package storage wraps the S3-compatible media host that holds video files
// and thumbnails.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"clipstream/internal/config"
	"clipstream/internal/middleware"
	"clipstream/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectKindVideo and ObjectKindThumbnail name the two object families the
// store manages; they prefix object keys and label upload metrics.
const (
	ObjectKindVideo     = "video"
	ObjectKindThumbnail = "thumbnail"
)

const (
	defaultAttemptTimeout = 60 * time.Second
	defaultMaxAttempts    = 3
	defaultBackoffBase    = 500 * time.Millisecond
)

// objectClient is the slice of the MinIO client the store needs; tests swap in
// a fake.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MediaStore uploads media objects with a per-attempt timeout and bounded
// retry with backoff, and returns durable public URLs.
type MediaStore struct {
	client         objectClient
	bucket         string
	publicBaseURL  string
	attemptTimeout time.Duration
	maxAttempts    int
	backoffBase    time.Duration
}

// NewMediaStore connects to the configured media host.
func NewMediaStore(cfg *config.Config) (*MediaStore, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media store client: %w", err)
	}

	return &MediaStore{
		client:         client,
		bucket:         cfg.MediaBucket,
		publicBaseURL:  strings.TrimRight(cfg.MediaPublicBaseURL, "/"),
		attemptTimeout: defaultAttemptTimeout,
		maxAttempts:    defaultMaxAttempts,
		backoffBase:    defaultBackoffBase,
	}, nil
}

// EnsureBucket creates the media bucket if it doesn't exist yet.
func (s *MediaStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// NewObjectName builds a unique object key for the given kind and filename.
func NewObjectName(kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%ss/%s%s", kind, uuid.New().String(), ext)
}

// Upload stores content under objectName and returns its durable URL.
// Each attempt runs under its own timeout; transient failures are retried
// with doubling backoff up to the attempt budget.
func (s *MediaStore) Upload(ctx context.Context, kind, objectName, contentType string, content []byte) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
		_, err := s.client.PutObject(attemptCtx, s.bucket, objectName,
			bytes.NewReader(content), int64(len(content)),
			minio.PutObjectOptions{ContentType: contentType})
		cancel()

		if err == nil {
			return s.URL(objectName), nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if attempt < s.maxAttempts {
			observability.MediaUploadRetries.WithLabelValues(kind).Inc()
			middleware.Logger.WarnContext(ctx, "media upload attempt failed, retrying",
				"kind", kind, "object", objectName, "attempt", attempt, "error", err.Error())
			select {
			case <-time.After(s.backoffBase << (attempt - 1)):
			case <-ctx.Done():
			}
		}
	}

	observability.MediaUploadFailures.WithLabelValues(kind).Inc()
	return "", fmt.Errorf("upload %s %q failed after %d attempts: %w", kind, objectName, s.maxAttempts, lastErr)
}

// Remove deletes an object. Used to clean up an orphaned upload when the
// database write that should reference it fails.
func (s *MediaStore) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// URL returns the durable public URL for an object key.
func (s *MediaStore) URL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName)
}
