package moderation

import "errors"

var (
	// ErrUnknownFilter is returned when a status filter is not recognised.
	ErrUnknownFilter = errors.New("unknown status filter")

	// ErrUnknownAction is returned when a moderation action is not recognised.
	ErrUnknownAction = errors.New("unknown moderation action")

	// ErrUnknownStatus is returned when a requested status is not recognised.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrInvalidTransition is returned when a record cannot move from its
	// current status to the requested one.
	ErrInvalidTransition = errors.New("invalid status transition")
)
