// Package storage keeps moderation snapshots in an object store. MinIO and
// Google Cloud Storage are supported, plus an in-process backend for local
// runs.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"
)

const jsonContentType = "application/json"

// ErrObjectNotFound is returned by Open when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// ObjectStorage is the set of bucket operations a backend provides.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Bucket() string
}

// Storage stores JSON documents on top of an ObjectStorage backend.
type Storage struct {
	backend ObjectStorage
}

func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// EnsureBucket creates the configured bucket when it is missing.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// PutJSON encodes v and uploads it under key. It returns the stored size.
func (s *Storage) PutJSON(ctx context.Context, key string, v any) (int64, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", key, err)
	}
	size := int64(len(data))
	if err := s.backend.Put(ctx, key, bytes.NewReader(data), size, jsonContentType); err != nil {
		return 0, fmt.Errorf("upload %s: %w", key, err)
	}
	return size, nil
}

// Open returns a reader for key. Callers close it.
func (s *Storage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, key)
}

// List returns the objects under prefix, newest first.
func (s *Storage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objects, err := s.backend.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(objects, func(i, j int) bool {
		if objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].Key > objects[j].Key
		}
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}
