package storage

import (
	"context"
	"fmt"

	"github.com/lostfound/moderation/config"
)

// NewBackend builds the object storage selected by cfg.Backend. It returns
// a nil backend for "none".
func NewBackend(ctx context.Context, cfg config.StorageConfig) (ObjectStorage, error) {
	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryBackend("memory"), nil
	case "minio":
		backend, err := NewMinioBackend(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case "gcs":
		backend, err := NewGCSBackend(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
