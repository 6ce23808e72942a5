package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when an action targets a record the
	// view does not hold.
	ErrRecordNotFound = errors.New("record not found")

	// ErrNotPending is returned when an item action targets a listing that
	// was already decided.
	ErrNotPending = errors.New("item is not pending")
)

// FetchError reports a failed initial load.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load moderation data: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ActionError reports a failed moderation action. The view is left as it
// was before the action.
type ActionError struct {
	Kind     string
	RecordID string
	Action   string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Action, e.Kind, e.RecordID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
