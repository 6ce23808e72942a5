package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound/moderation/internal/dashboard"
	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/observability"
	"github.com/lostfound/moderation/internal/server"
	"github.com/lostfound/moderation/internal/services"
	"github.com/lostfound/moderation/internal/store"
	"github.com/lostfound/moderation/types"
)

func newTestClient(t *testing.T) *dashboard.Client {
	t.Helper()

	items := store.NewMemoryItemRepository(store.DemoItems())
	users := store.NewMemoryUserRepository(store.DemoUsers())
	stats := services.NewStatsService(items, users, nil, time.Minute, nil)
	router := server.NewRouter(server.Dependencies{
		Items:   services.NewItemService(items, stats),
		Users:   services.NewUserService(users, stats),
		Stats:   stats,
		Metrics: observability.NewMetrics(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := dashboard.NewClient(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return client
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := dashboard.NewClient("ftp://example.com", nil)
	assert.Error(t, err)

	_, err = dashboard.NewClient("localhost:8080", nil)
	assert.Error(t, err)
}

func TestClientLists(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	items, err := client.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DemoItems(), items)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DemoUsers(), users)
}

func TestClientSetStatus(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	item, err := client.SetItemStatus(ctx, "2", types.ItemStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, types.ItemStatusApproved, item.Status)

	_, err = client.SetItemStatus(ctx, "2", types.ItemStatusRejected)
	var apiErr *dashboard.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)

	_, err = client.SetItemStatus(ctx, "404", types.ItemStatusApproved)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	user, err := client.SetUserStatus(ctx, "u3", types.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, types.UserStatusActive, user.Status)
}

func TestViewOverHTTP(t *testing.T) {
	view := dashboard.NewView(newTestClient(t), nil)
	ctx := context.Background()

	require.NoError(t, view.Load(ctx))
	assert.Equal(t, 2, view.Stats().PendingItems)

	outcome := view.ItemAction(ctx, "2", moderation.ActionApprove)
	require.True(t, outcome.OK())
	assert.Equal(t, 1, view.Stats().PendingItems)

	require.NoError(t, view.Load(ctx))
	pending := view.Items(moderation.Filter("pending"), "")
	require.Len(t, pending, 1)
	assert.Equal(t, "3", pending[0].ID)
}
