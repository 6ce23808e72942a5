package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	data     []byte
	modified time.Time
}

// MemoryBackend keeps objects in process memory.
type MemoryBackend struct {
	bucket string
	now    func() time.Time

	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryBackend(bucket string) *MemoryBackend {
	return &MemoryBackend{
		bucket:  bucket,
		now:     time.Now,
		objects: make(map[string]memoryObject),
	}
}

func (m *MemoryBackend) EnsureBucket(ctx context.Context) error {
	return nil
}

func (m *MemoryBackend) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, modified: m.now().UTC()}
	return nil
}

func (m *MemoryBackend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *MemoryBackend) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ObjectInfo{Key: key, Size: int64(len(obj.data)), LastModified: obj.modified})
		}
	}
	return out, nil
}

func (m *MemoryBackend) Bucket() string {
	return m.bucket
}
