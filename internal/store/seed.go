package store

import (
	"time"

	"github.com/lostfound/moderation/types"
)

// DemoItems returns the sample listings used for local development.
func DemoItems() []types.Item {
	return []types.Item{
		{
			ID:          "1",
			Title:       "Black iPhone 13",
			Type:        types.ItemTypeLost,
			Status:      types.ItemStatusApproved,
			Category:    "Electronics",
			SubmittedBy: "john.doe@university.edu",
			SubmittedAt: mustTime("2024-01-10T10:30:00Z"),
		},
		{
			ID:          "2",
			Title:       "Red Water Bottle",
			Type:        types.ItemTypeFound,
			Status:      types.ItemStatusPending,
			Category:    "Other",
			SubmittedBy: "jane.smith@university.edu",
			SubmittedAt: mustTime("2024-01-11T14:15:00Z"),
		},
		{
			ID:          "3",
			Title:       "Suspicious Item Listing",
			Type:        types.ItemTypeLost,
			Status:      types.ItemStatusPending,
			Category:    "Electronics",
			SubmittedBy: "suspicious@email.com",
			SubmittedAt: mustTime("2024-01-11T16:20:00Z"),
			ReportCount: 3,
		},
	}
}

// DemoUsers returns the sample accounts used for local development.
func DemoUsers() []types.User {
	return []types.User{
		{
			ID:          "u1",
			Email:       "john.doe@university.edu",
			Name:        "John Doe",
			ItemsPosted: 5,
			LastActive:  mustTime("2024-01-11T16:30:00Z"),
			Status:      types.UserStatusActive,
		},
		{
			ID:          "u2",
			Email:       "jane.smith@university.edu",
			Name:        "Jane Smith",
			ItemsPosted: 2,
			LastActive:  mustTime("2024-01-11T14:15:00Z"),
			Status:      types.UserStatusActive,
		},
		{
			ID:          "u3",
			Email:       "suspicious@email.com",
			Name:        "Suspicious User",
			ItemsPosted: 10,
			LastActive:  mustTime("2024-01-11T16:20:00Z"),
			Status:      types.UserStatusSuspended,
		},
	}
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
