package dashboard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound/moderation/internal/dashboard"
	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

type fakeAPI struct {
	mu        sync.Mutex
	items     []types.Item
	users     []types.User
	listErr   error
	actionErr error
	calls     int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: store.DemoItems(), users: store.DemoUsers()}
}

func (f *fakeAPI) ListItems(ctx context.Context) ([]types.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Item(nil), f.items...), nil
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.User(nil), f.users...), nil
}

func (f *fakeAPI) SetItemStatus(ctx context.Context, id string, status types.ItemStatus) (types.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.actionErr != nil {
		return types.Item{}, f.actionErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return f.items[i], nil
		}
	}
	return types.Item{}, errors.New("missing")
}

func (f *fakeAPI) SetUserStatus(ctx context.Context, id string, status types.UserStatus) (types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.actionErr != nil {
		return types.User{}, f.actionErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Status = status
			return f.users[i], nil
		}
	}
	return types.User{}, errors.New("missing")
}

func loadedView(t *testing.T, api *fakeAPI) *dashboard.View {
	t.Helper()
	view := dashboard.NewView(api, nil)
	require.NoError(t, view.Load(context.Background()))
	return view
}

func ids[T any](records []T, id func(T) string) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, id(r))
	}
	return out
}

func itemID(i types.Item) string { return i.ID }
func userID(u types.User) string { return u.ID }

func TestLoadAndStats(t *testing.T) {
	view := loadedView(t, newFakeAPI())

	assert.True(t, view.Loaded())
	assert.Equal(t, moderation.Stats{PendingItems: 2, ReportedItems: 1, ActiveUsers: 2, TotalItems: 3}, view.Stats())
	assert.Equal(t, []string{"1", "2", "3"}, ids(view.Items(moderation.FilterAll, ""), itemID))
}

func TestLoadFailureLeavesViewEmpty(t *testing.T) {
	api := newFakeAPI()
	view := loadedView(t, api)

	api.listErr = errors.New("connection refused")
	err := view.Load(context.Background())

	var fetchErr *dashboard.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, view.Loaded())
	assert.Empty(t, view.Items(moderation.FilterAll, ""))
	assert.Empty(t, view.Users(moderation.FilterAll, ""))
	assert.Equal(t, moderation.Stats{}, view.Stats())
}

func TestItemsFiltering(t *testing.T) {
	view := loadedView(t, newFakeAPI())

	assert.Equal(t, []string{"2", "3"}, ids(view.Items(moderation.Filter("pending"), ""), itemID))
	assert.Equal(t, []string{"3"}, ids(view.Items(moderation.FilterReported, ""), itemID))
	assert.Equal(t, []string{"2"}, ids(view.Items(moderation.FilterAll, "WATER"), itemID))
	assert.Equal(t, []string{"3"}, ids(view.Items(moderation.FilterAll, "suspicious@"), itemID))
	assert.Empty(t, view.Items(moderation.Filter("approved"), "bottle"))
}

func TestUsersFiltering(t *testing.T) {
	view := loadedView(t, newFakeAPI())

	assert.Equal(t, []string{"u3"}, ids(view.Users(moderation.Filter("suspended"), ""), userID))
	assert.Equal(t, []string{"u1", "u2"}, ids(view.Users(moderation.Filter("active"), ""), userID))
	assert.Equal(t, []string{"u2"}, ids(view.Users(moderation.FilterAll, "jane"), userID))
}

func TestApprovePendingItem(t *testing.T) {
	api := newFakeAPI()
	view := loadedView(t, api)

	outcome := view.ItemAction(context.Background(), "2", moderation.ActionApprove)

	require.True(t, outcome.OK())
	assert.Equal(t, "Item approved successfully", outcome.Notification.Title)
	assert.Equal(t, "The item has been approved and the user has been notified.", outcome.Notification.Description)
	assert.Equal(t, moderation.VariantDefault, outcome.Notification.Variant)

	assert.Equal(t, []string{"3"}, ids(view.Items(moderation.Filter("pending"), ""), itemID))
	assert.Equal(t, 1, view.Stats().PendingItems)
	assert.Equal(t, []string{"1", "2"}, ids(view.Items(moderation.Filter("approved"), ""), itemID))
}

func TestRejectReportedItem(t *testing.T) {
	view := loadedView(t, newFakeAPI())

	outcome := view.ItemAction(context.Background(), "3", moderation.ActionReject)

	require.True(t, outcome.OK())
	assert.Equal(t, "Item rejected successfully", outcome.Notification.Title)
	rejected := view.Items(moderation.Filter("rejected"), "")
	require.Len(t, rejected, 1)
	assert.Equal(t, 3, rejected[0].ReportCount)
	assert.Equal(t, []string{"3"}, ids(view.Items(moderation.FilterReported, ""), itemID))
}

func TestItemActionPreconditions(t *testing.T) {
	api := newFakeAPI()
	view := loadedView(t, api)

	outcome := view.ItemAction(context.Background(), "1", moderation.ActionReject)
	require.False(t, outcome.OK())
	assert.ErrorIs(t, outcome.Err, dashboard.ErrNotPending)
	assert.Equal(t, "Failed to reject item", outcome.Notification.Title)

	outcome = view.ItemAction(context.Background(), "99", moderation.ActionApprove)
	require.False(t, outcome.OK())
	assert.ErrorIs(t, outcome.Err, dashboard.ErrRecordNotFound)

	assert.Zero(t, api.calls)
}

func TestFailedItemActionKeepsState(t *testing.T) {
	api := newFakeAPI()
	view := loadedView(t, api)
	before := view.Items(moderation.FilterAll, "")

	api.actionErr = errors.New("boom")
	outcome := view.ItemAction(context.Background(), "2", moderation.ActionApprove)

	require.False(t, outcome.OK())
	var actionErr *dashboard.ActionError
	require.ErrorAs(t, outcome.Err, &actionErr)
	assert.Equal(t, "2", actionErr.RecordID)
	assert.Equal(t, moderation.Notification{
		Title:       "Failed to approve item",
		Description: "Please try again later.",
		Variant:     moderation.VariantDestructive,
	}, outcome.Notification)
	assert.Equal(t, before, view.Items(moderation.FilterAll, ""))
}

func TestUserActions(t *testing.T) {
	view := loadedView(t, newFakeAPI())

	outcome := view.UserAction(context.Background(), "u1", moderation.ActionSuspend)
	require.True(t, outcome.OK())
	assert.Equal(t, "User suspended successfully", outcome.Notification.Title)
	assert.Equal(t, "The user has been suspended.", outcome.Notification.Description)
	assert.Equal(t, []string{"u1", "u3"}, ids(view.Users(moderation.Filter("suspended"), ""), userID))
	assert.Equal(t, 1, view.Stats().ActiveUsers)

	outcome = view.UserAction(context.Background(), "u3", moderation.ActionActivate)
	require.True(t, outcome.OK())
	assert.Equal(t, "User activated successfully", outcome.Notification.Title)

	outcome = view.UserAction(context.Background(), "nobody", moderation.ActionActivate)
	assert.ErrorIs(t, outcome.Err, dashboard.ErrRecordNotFound)
	assert.Equal(t, "Failed to activate user", outcome.Notification.Title)
}

func TestFailedUserActionKeepsState(t *testing.T) {
	api := newFakeAPI()
	view := loadedView(t, api)

	api.actionErr = errors.New("boom")
	outcome := view.UserAction(context.Background(), "u2", moderation.ActionSuspend)

	require.False(t, outcome.OK())
	assert.Equal(t, moderation.VariantDestructive, outcome.Notification.Variant)
	assert.Equal(t, 2, view.Stats().ActiveUsers)
}
