package types

import "time"

// ItemType distinguishes lost listings from found listings.
type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// ItemStatus is the moderation status of a listing.
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
)

// Valid reports whether s is a known item status.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusRejected:
		return true
	}
	return false
}

// Item represents a lost or found listing subject to moderation.
// Items are created by the public application; the moderation
// surface only reads them and changes their status.
type Item struct {
	// ID is the unique identifier of the listing.
	ID string `json:"id" db:"id"`

	// Title is the short human-readable headline of the listing.
	Title string `json:"title" db:"title"`

	// Type is either "lost" or "found".
	Type ItemType `json:"type" db:"type"`

	// Status is the moderation status of the listing.
	Status ItemStatus `json:"status" db:"status"`

	// Category is a free-form category label (e.g., "Electronics").
	Category string `json:"category" db:"category"`

	// SubmittedBy is the email address of the submitter.
	SubmittedBy string `json:"submitted_by" db:"submitted_by"`

	// SubmittedAt is the timestamp when the listing was submitted.
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"`

	// ReportCount is the number of user flags raised against the listing.
	// A non-zero value takes precedence over Status when displayed.
	ReportCount int `json:"report_count" db:"report_count"`
}

// Reported reports whether at least one user flagged the listing.
func (i Item) Reported() bool {
	return i.ReportCount > 0
}
