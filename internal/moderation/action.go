package moderation

import (
	"fmt"
	"strings"

	"github.com/lostfound/moderation/types"
)

// ItemAction is a moderation decision on a pending listing.
type ItemAction string

const (
	ActionApprove ItemAction = "approve"
	ActionReject  ItemAction = "reject"
)

// ParseItemAction validates a raw item action.
func ParseItemAction(raw string) (ItemAction, error) {
	a := ItemAction(strings.ToLower(strings.TrimSpace(raw)))
	switch a {
	case ActionApprove, ActionReject:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// TargetStatus returns the status an item reaches after the action.
func (a ItemAction) TargetStatus() types.ItemStatus {
	if a == ActionApprove {
		return types.ItemStatusApproved
	}
	return types.ItemStatusRejected
}

// PastTense returns the verb used in operator notifications.
func (a ItemAction) PastTense() string {
	if a == ActionApprove {
		return "approved"
	}
	return "rejected"
}

// ItemActionFor maps a requested terminal status back to the action
// producing it.
func ItemActionFor(status types.ItemStatus) (ItemAction, error) {
	switch status {
	case types.ItemStatusApproved:
		return ActionApprove, nil
	case types.ItemStatusRejected:
		return ActionReject, nil
	case types.ItemStatusPending:
		return "", fmt.Errorf("%w: cannot move an item back to pending", ErrInvalidTransition)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// CheckItemTransition enforces pending -> approved and pending -> rejected
// as the only item transitions.
func CheckItemTransition(from, to types.ItemStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from != types.ItemStatusPending || to == types.ItemStatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// UserAction is a moderation decision on an account.
type UserAction string

const (
	ActionSuspend  UserAction = "suspend"
	ActionActivate UserAction = "activate"
)

// ParseUserAction validates a raw user action.
func ParseUserAction(raw string) (UserAction, error) {
	a := UserAction(strings.ToLower(strings.TrimSpace(raw)))
	switch a {
	case ActionSuspend, ActionActivate:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

// TargetStatus returns the status an account reaches after the action.
func (a UserAction) TargetStatus() types.UserStatus {
	if a == ActionSuspend {
		return types.UserStatusSuspended
	}
	return types.UserStatusActive
}

// PastTense returns the verb used in operator notifications.
func (a UserAction) PastTense() string {
	if a == ActionSuspend {
		return "suspended"
	}
	return "activated"
}

// UserActionFor maps a requested account status back to the action
// producing it.
func UserActionFor(status types.UserStatus) (UserAction, error) {
	switch status {
	case types.UserStatusSuspended:
		return ActionSuspend, nil
	case types.UserStatusActive:
		return ActionActivate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// CheckUserTransition enforces the active <-> suspended toggle.
func CheckUserTransition(from, to types.UserStatus) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if from == to {
		return fmt.Errorf("%w: user is already %s", ErrInvalidTransition, to)
	}
	return nil
}
