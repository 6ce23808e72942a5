package moderation

import "github.com/lostfound/moderation/types"

// Stats summarises the moderation queue.
type Stats struct {
	PendingItems  int `json:"pending_items"`
	ReportedItems int `json:"reported_items"`
	ActiveUsers   int `json:"active_users"`
	TotalItems    int `json:"total_items"`
}

// ComputeStats counts pending and reported items, active users and the
// total number of items.
func ComputeStats(items []types.Item, users []types.User) Stats {
	stats := Stats{TotalItems: len(items)}
	for _, item := range items {
		if item.Status == types.ItemStatusPending {
			stats.PendingItems++
		}
		if item.Reported() {
			stats.ReportedItems++
		}
	}
	for _, user := range users {
		if user.Status == types.UserStatusActive {
			stats.ActiveUsers++
		}
	}
	return stats
}
