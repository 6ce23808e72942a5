// Package moderation holds the moderation rules shared by the API server
// and the operator dashboard: status filters, text search, badges,
// actions and their notifications.
package moderation

import (
	"fmt"
	"strings"

	"github.com/lostfound/moderation/types"
)

// Filter selects records by status. Besides concrete statuses it accepts
// FilterAll and, for items, FilterReported.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterReported Filter = "reported"
)

// ParseItemFilter validates a raw item filter. An empty value means FilterAll.
func ParseItemFilter(raw string) (Filter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return FilterAll, nil
	}
	f := Filter(raw)
	if f == FilterAll || f == FilterReported || types.ItemStatus(raw).Valid() {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
}

// ParseUserFilter validates a raw user filter. An empty value means FilterAll.
func ParseUserFilter(raw string) (Filter, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return FilterAll, nil
	}
	f := Filter(raw)
	if f == FilterAll || types.UserStatus(raw).Valid() {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
}

// MatchItem reports whether item passes filter and contains query in its
// title or submitter, ignoring case.
func MatchItem(item types.Item, filter Filter, query string) bool {
	matchesFilter := filter == FilterAll ||
		Filter(item.Status) == filter ||
		(filter == FilterReported && item.Reported())
	if !matchesFilter {
		return false
	}
	return containsFold(item.Title, query) || containsFold(item.SubmittedBy, query)
}

// MatchUser reports whether user passes filter and contains query in its
// name or email, ignoring case.
func MatchUser(user types.User, filter Filter, query string) bool {
	if filter != FilterAll && Filter(user.Status) != filter {
		return false
	}
	return containsFold(user.Name, query) || containsFold(user.Email, query)
}

// FilterItems returns the items matching filter and query, in source order.
func FilterItems(items []types.Item, filter Filter, query string) []types.Item {
	out := make([]types.Item, 0, len(items))
	for _, item := range items {
		if MatchItem(item, filter, query) {
			out = append(out, item)
		}
	}
	return out
}

// FilterUsers returns the users matching filter and query, in source order.
func FilterUsers(users []types.User, filter Filter, query string) []types.User {
	out := make([]types.User, 0, len(users))
	for _, user := range users {
		if MatchUser(user, filter, query) {
			out = append(out, user)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
