package storage_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound/moderation/config"
	"github.com/lostfound/moderation/internal/storage"
)

func TestPutJSONAndOpen(t *testing.T) {
	ctx := context.Background()
	s := storage.NewStorage(storage.NewMemoryBackend("exports"))

	require.NoError(t, s.EnsureBucket(ctx))
	size, err := s.PutJSON(ctx, "exports/a.json", map[string]int{"items": 3})
	require.NoError(t, err)
	assert.Positive(t, size)
	assert.Equal(t, "exports", s.Bucket())

	rc, err := s.Open(ctx, "exports/a.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":3}`, string(data))
	assert.Equal(t, size, int64(len(data)))

	_, err = s.Open(ctx, "exports/missing.json")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestListFiltersByPrefixNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := storage.NewStorage(storage.NewMemoryBackend("exports"))

	for _, key := range []string{"exports/a.json", "exports/b.json", "other/c.json"} {
		_, err := s.PutJSON(ctx, key, struct{}{})
		require.NoError(t, err)
	}

	objects, err := s.List(ctx, "exports/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.False(t, objects[0].LastModified.Before(objects[1].LastModified))
	for _, obj := range objects {
		assert.Contains(t, []string{"exports/a.json", "exports/b.json"}, obj.Key)
	}
}

func TestNewBackendValidatesConfig(t *testing.T) {
	ctx := context.Background()

	backend, err := storage.NewBackend(ctx, config.StorageConfig{Backend: "none"})
	require.NoError(t, err)
	assert.Nil(t, backend)

	backend, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", backend.Bucket())

	_, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "minio"})
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "minio", Minio: config.MinioConfig{Endpoint: "localhost:9000"}})
	assert.EqualError(t, err, "minio access key and secret key are required")

	_, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "minio", Minio: config.MinioConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}})
	assert.EqualError(t, err, "minio bucket is required")

	_, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "gcs"})
	assert.EqualError(t, err, "gcs bucket is required")

	_, err = storage.NewBackend(ctx, config.StorageConfig{Backend: "s3"})
	assert.Error(t, err)
}
