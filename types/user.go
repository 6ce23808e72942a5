package types

import "time"

// UserStatus is the account status of a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// Valid reports whether s is a known account status.
func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusSuspended
}

// User represents an account of the lost-and-found application
// as seen by moderators.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id" db:"id"`

	// Email is the user's email address.
	Email string `json:"email" db:"email"`

	// Name is the user's display name.
	Name string `json:"name" db:"name"`

	// ItemsPosted is the number of listings the user has submitted.
	ItemsPosted int `json:"items_posted" db:"items_posted"`

	// LastActive is the timestamp of the user's most recent activity.
	LastActive time.Time `json:"last_active" db:"last_active"`

	// Status is either "active" or "suspended".
	Status UserStatus `json:"status" db:"status"`
}
