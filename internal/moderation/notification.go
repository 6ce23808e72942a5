package moderation

import "fmt"

// Variant selects how a notification is presented to the operator.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is the transient confirmation or error shown after an action.
type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

const retryLater = "Please try again later."

// ItemSucceeded builds the confirmation for a completed item action.
func ItemSucceeded(a ItemAction) Notification {
	return Notification{
		Title:       fmt.Sprintf("Item %s successfully", a.PastTense()),
		Description: fmt.Sprintf("The item has been %s and the user has been notified.", a.PastTense()),
		Variant:     VariantDefault,
	}
}

// ItemFailed builds the error shown when an item action fails.
func ItemFailed(a ItemAction) Notification {
	return Notification{
		Title:       fmt.Sprintf("Failed to %s item", a),
		Description: retryLater,
		Variant:     VariantDestructive,
	}
}

// UserSucceeded builds the confirmation for a completed user action.
func UserSucceeded(a UserAction) Notification {
	return Notification{
		Title:       fmt.Sprintf("User %s successfully", a.PastTense()),
		Description: fmt.Sprintf("The user has been %s.", a.PastTense()),
		Variant:     VariantDefault,
	}
}

// UserFailed builds the error shown when a user action fails.
func UserFailed(a UserAction) Notification {
	return Notification{
		Title:       fmt.Sprintf("Failed to %s user", a),
		Description: retryLater,
		Variant:     VariantDestructive,
	}
}
