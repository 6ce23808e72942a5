package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

// ItemRepository defines persistence operations for listings.
type ItemRepository interface {
	List(ctx context.Context) ([]types.Item, error)
	Get(ctx context.Context, id string) (types.Item, error)
	UpdateStatus(ctx context.Context, id string, from, to types.ItemStatus) (types.Item, error)
	Upsert(ctx context.Context, item types.Item) error
}

// ItemService encapsulates listing moderation use-cases.
type ItemService struct {
	repo      ItemRepository
	observers []ChangeObserver
}

func NewItemService(repo ItemRepository, observers ...ChangeObserver) *ItemService {
	return &ItemService{repo: repo, observers: observers}
}

// List returns the listings matching filter and query in stored order.
func (s *ItemService) List(ctx context.Context, filter moderation.Filter, query string) ([]types.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return moderation.FilterItems(items, filter, query), nil
}

func (s *ItemService) Get(ctx context.Context, id string) (types.Item, error) {
	return s.repo.Get(ctx, id)
}

// SetStatus moves a pending listing to approved or rejected.
func (s *ItemService) SetStatus(ctx context.Context, id string, to types.ItemStatus) (types.Item, error) {
	action, err := moderation.ItemActionFor(to)
	if err != nil {
		return types.Item{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Item{}, err
	}
	if err := moderation.CheckItemTransition(current.Status, to); err != nil {
		return types.Item{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		if errors.Is(err, store.ErrStaleStatus) {
			return types.Item{}, fmt.Errorf("%w: item %s changed while updating", moderation.ErrInvalidTransition, id)
		}
		return types.Item{}, err
	}

	notifyObservers(ctx, s.observers, StatusChange{
		Kind:     KindItem,
		RecordID: updated.ID,
		Action:   string(action),
		Status:   string(updated.Status),
		Subject:  updated.SubmittedBy,
	})
	return updated, nil
}

// Apply performs an approve or reject action.
func (s *ItemService) Apply(ctx context.Context, id string, action moderation.ItemAction) (types.Item, error) {
	return s.SetStatus(ctx, id, action.TargetStatus())
}

// Import stores listings as given, replacing existing copies.
func (s *ItemService) Import(ctx context.Context, items []types.Item) error {
	for _, item := range items {
		if err := s.repo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("import item %s: %w", item.ID, err)
		}
	}
	return nil
}
