package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/storage"
	"github.com/lostfound/moderation/types"
)

const (
	exportPrefix     = "exports/"
	exportTimeLayout = "20060102T150405Z"
)

// ErrInvalidExportName is returned for names that do not point at a
// snapshot written by Export.
var ErrInvalidExportName = errors.New("invalid export name")

// Snapshot is the document written by an export.
type Snapshot struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Stats       moderation.Stats `json:"stats"`
	Items       []types.Item     `json:"items"`
	Users       []types.User     `json:"users"`
}

// ExportResult locates a written snapshot.
type ExportResult struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	Items  int    `json:"items"`
	Users  int    `json:"users"`
}

// ExportService writes moderation snapshots to object storage.
type ExportService struct {
	items   ItemLister
	users   UserLister
	storage *storage.Storage
	now     func() time.Time
}

func NewExportService(items ItemLister, users UserLister, objects *storage.Storage) *ExportService {
	return &ExportService{
		items:   items,
		users:   users,
		storage: objects,
		now:     time.Now,
	}
}

// Export writes a snapshot of both collections and their summary.
func (s *ExportService) Export(ctx context.Context) (ExportResult, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list items: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list users: %w", err)
	}

	generatedAt := s.now().UTC()
	name := fmt.Sprintf("moderation-%s-%s.json", generatedAt.Format(exportTimeLayout), uuid.NewString())
	key := exportPrefix + name

	size, err := s.storage.PutJSON(ctx, key, Snapshot{
		GeneratedAt: generatedAt,
		Stats:       moderation.ComputeStats(items, users),
		Items:       items,
		Users:       users,
	})
	if err != nil {
		return ExportResult{}, err
	}

	return ExportResult{
		Bucket: s.storage.Bucket(),
		Key:    key,
		Name:   name,
		Size:   size,
		Items:  len(items),
		Users:  len(users),
	}, nil
}

// List returns the stored snapshots, newest first.
func (s *ExportService) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.storage.List(ctx, exportPrefix)
}

// Open returns the snapshot stored under name, as reported in
// ExportResult.Name.
func (s *ExportService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == "" || path.Base(name) != name || !strings.HasSuffix(name, ".json") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExportName, name)
	}
	return s.storage.Open(ctx, exportPrefix+name)
}
