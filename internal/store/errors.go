package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrStaleStatus is returned when a conditional status update finds the
// record in a different status than expected.
var ErrStaleStatus = errors.New("status changed concurrently")
