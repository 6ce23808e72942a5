package store

import (
	"context"
	"sync"

	"github.com/lostfound/moderation/types"
)

// MemoryItemRepository keeps listings in process memory. It is safe for
// concurrent use and preserves insertion order.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items []types.Item
}

func NewMemoryItemRepository(items []types.Item) *MemoryItemRepository {
	return &MemoryItemRepository{items: append([]types.Item(nil), items...)}
}

func (r *MemoryItemRepository) List(ctx context.Context) ([]types.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]types.Item, 0, len(r.items)), r.items...), nil
}

func (r *MemoryItemRepository) Get(ctx context.Context, id string) (types.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return types.Item{}, ErrNotFound
}

func (r *MemoryItemRepository) UpdateStatus(ctx context.Context, id string, from, to types.ItemStatus) (types.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		if r.items[i].Status != from {
			return types.Item{}, ErrStaleStatus
		}
		r.items[i].Status = to
		return r.items[i], nil
	}
	return types.Item{}, ErrNotFound
}

func (r *MemoryItemRepository) Upsert(ctx context.Context, item types.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

// MemoryUserRepository keeps accounts in process memory.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []types.User
}

func NewMemoryUserRepository(users []types.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: append([]types.User(nil), users...)}
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]types.User, 0, len(r.users)), r.users...), nil
}

func (r *MemoryUserRepository) Get(ctx context.Context, id string) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (r *MemoryUserRepository) UpdateStatus(ctx context.Context, id string, from, to types.UserStatus) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		if r.users[i].Status != from {
			return types.User{}, ErrStaleStatus
		}
		r.users[i].Status = to
		return r.users[i], nil
	}
	return types.User{}, ErrNotFound
}

func (r *MemoryUserRepository) Upsert(ctx context.Context, user types.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	r.users = append(r.users, user)
	return nil
}
