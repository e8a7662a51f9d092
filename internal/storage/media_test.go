package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectClient struct {
	bucketExists bool
	madeBucket   bool
	putCalls     int
	failPuts     int
	putErr       error
	removed      []string
}

func (f *fakeObjectClient) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, nil
}

func (f *fakeObjectClient) MakeBucket(_ context.Context, _ string, _ minio.MakeBucketOptions) error {
	f.madeBucket = true
	return nil
}

func (f *fakeObjectClient) PutObject(_ context.Context, _, objectName string, _ io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putCalls++
	if f.putCalls <= f.failPuts {
		return minio.UploadInfo{}, f.putErr
	}
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeObjectClient) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, objectName)
	return nil
}

func newTestStore(client *fakeObjectClient) *MediaStore {
	return &MediaStore{
		client:         client,
		bucket:         "media",
		publicBaseURL:  "http://localhost:9000",
		attemptTimeout: time.Second,
		maxAttempts:    3,
		backoffBase:    time.Millisecond,
	}
}

func TestUploadSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{}
	store := newTestStore(client)

	url, err := store.Upload(context.Background(), ObjectKindVideo, "videos/abc.mp4", "video/mp4", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/media/videos/abc.mp4", url)
	assert.Equal(t, 1, client.putCalls)
}

func TestUploadRetriesTransientFailure(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{failPuts: 2, putErr: errors.New("connection reset")}
	store := newTestStore(client)

	url, err := store.Upload(context.Background(), ObjectKindVideo, "videos/abc.mp4", "video/mp4", []byte("data"))
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	assert.Equal(t, 3, client.putCalls)
}

func TestUploadGivesUpAfterAttemptBudget(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{failPuts: 10, putErr: errors.New("unavailable")}
	store := newTestStore(client)

	_, err := store.Upload(context.Background(), ObjectKindThumbnail, "thumbnails/x.jpg", "image/jpeg", []byte("data"))
	require.Error(t, err)
	assert.Equal(t, 3, client.putCalls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestUploadStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{failPuts: 10, putErr: errors.New("unavailable")}
	store := newTestStore(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Upload(ctx, ObjectKindVideo, "videos/abc.mp4", "video/mp4", []byte("data"))
	require.Error(t, err)
	assert.Equal(t, 1, client.putCalls)
}

func TestEnsureBucketCreatesWhenMissing(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{bucketExists: false}
	store := newTestStore(client)

	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.True(t, client.madeBucket)
}

func TestEnsureBucketSkipsWhenPresent(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{bucketExists: true}
	store := newTestStore(client)

	require.NoError(t, store.EnsureBucket(context.Background()))
	assert.False(t, client.madeBucket)
}

func TestRemoveDeletesObject(t *testing.T) {
	t.Parallel()

	client := &fakeObjectClient{}
	store := newTestStore(client)

	require.NoError(t, store.Remove(context.Background(), "videos/orphan.mp4"))
	assert.Equal(t, []string{"videos/orphan.mp4"}, client.removed)
}

func TestNewObjectName(t *testing.T) {
	t.Parallel()

	name := NewObjectName(ObjectKindVideo, "My Clip.MP4")
	assert.True(t, strings.HasPrefix(name, "videos/"))
	assert.True(t, strings.HasSuffix(name, ".mp4"))
}
