// Package dashboard is the operator-side read model of the moderation
// queue. A View holds snapshots of listings and accounts fetched from the
// moderation API, filters them locally and applies moderation actions in
// two phases: the remote change is requested first and the local copy is
// only updated once it succeeded.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/types"
)

const (
	kindItem = "item"
	kindUser = "user"
)

// API is the moderation backend used by a View.
type API interface {
	ListItems(ctx context.Context) ([]types.Item, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	SetItemStatus(ctx context.Context, id string, status types.ItemStatus) (types.Item, error)
	SetUserStatus(ctx context.Context, id string, status types.UserStatus) (types.User, error)
}

// Outcome is the result of a moderation action.
type Outcome struct {
	Notification moderation.Notification
	// Err is nil on success and an *ActionError otherwise.
	Err error
}

// OK reports whether the action succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// View holds the listings and accounts shown to an operator.
type View struct {
	api    API
	logger *slog.Logger

	mu     sync.RWMutex
	items  []types.Item
	users  []types.User
	loaded bool
}

func NewView(api API, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{api: api, logger: logger}
}

// Load replaces both collections with fresh snapshots. On failure the view
// is left empty and a *FetchError is returned.
func (v *View) Load(ctx context.Context) error {
	var (
		items []types.Item
		users []types.User
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = v.api.ListItems(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = v.api.ListUsers(ctx)
		return err
	})
	err := g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loaded = true
	if err != nil {
		v.items, v.users = nil, nil
		v.logger.Error("failed to fetch moderation data", slog.Any("error", err))
		return &FetchError{Err: err}
	}
	v.items, v.users = items, users
	return nil
}

// Loaded reports whether Load has completed at least once.
func (v *View) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

// Items returns the listings matching filter and query in source order.
func (v *View) Items(filter moderation.Filter, query string) []types.Item {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return moderation.FilterItems(v.items, filter, query)
}

// Users returns the accounts matching filter and query in source order.
func (v *View) Users(filter moderation.Filter, query string) []types.User {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return moderation.FilterUsers(v.users, filter, query)
}

func (v *View) Stats() moderation.Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return moderation.ComputeStats(v.items, v.users)
}

// ItemAction approves or rejects a pending listing.
func (v *View) ItemAction(ctx context.Context, id string, action moderation.ItemAction) Outcome {
	fail := func(err error) Outcome {
		return Outcome{
			Notification: moderation.ItemFailed(action),
			Err:          &ActionError{Kind: kindItem, RecordID: id, Action: string(action), Err: err},
		}
	}

	v.mu.RLock()
	current, ok := v.findItem(id)
	v.mu.RUnlock()
	if !ok {
		return fail(ErrRecordNotFound)
	}
	if current.Status != types.ItemStatusPending {
		return fail(ErrNotPending)
	}

	target := action.TargetStatus()
	if _, err := v.api.SetItemStatus(ctx, id, target); err != nil {
		v.logger.Warn("item action failed", slog.String("item_id", id), slog.String("action", string(action)), slog.Any("error", err))
		return fail(err)
	}

	v.mu.Lock()
	for i := range v.items {
		if v.items[i].ID == id {
			v.items[i].Status = target
			break
		}
	}
	v.mu.Unlock()

	return Outcome{Notification: moderation.ItemSucceeded(action)}
}

// UserAction suspends or activates an account.
func (v *View) UserAction(ctx context.Context, id string, action moderation.UserAction) Outcome {
	fail := func(err error) Outcome {
		return Outcome{
			Notification: moderation.UserFailed(action),
			Err:          &ActionError{Kind: kindUser, RecordID: id, Action: string(action), Err: err},
		}
	}

	v.mu.RLock()
	_, ok := v.findUser(id)
	v.mu.RUnlock()
	if !ok {
		return fail(ErrRecordNotFound)
	}

	target := action.TargetStatus()
	if _, err := v.api.SetUserStatus(ctx, id, target); err != nil {
		v.logger.Warn("user action failed", slog.String("user_id", id), slog.String("action", string(action)), slog.Any("error", err))
		return fail(err)
	}

	v.mu.Lock()
	for i := range v.users {
		if v.users[i].ID == id {
			v.users[i].Status = target
			break
		}
	}
	v.mu.Unlock()

	return Outcome{Notification: moderation.UserSucceeded(action)}
}

func (v *View) findItem(id string) (types.Item, bool) {
	for _, item := range v.items {
		if item.ID == id {
			return item, true
		}
	}
	return types.Item{}, false
}

func (v *View) findUser(id string) (types.User, bool) {
	for _, user := range v.users {
		if user.ID == id {
			return user, true
		}
	}
	return types.User{}, false
}
