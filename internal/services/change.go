package services

import (
	"context"
	"time"
)

const (
	KindItem = "item"
	KindUser = "user"
)

// StatusChange describes a committed moderation decision.
type StatusChange struct {
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	RecordID   string    `json:"record_id"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ChangeObserver is told about every committed status change. Observers
// run after the change is stored and cannot undo it.
type ChangeObserver interface {
	StatusChanged(ctx context.Context, change StatusChange)
}

func notifyObservers(ctx context.Context, observers []ChangeObserver, change StatusChange) {
	if change.OccurredAt.IsZero() {
		change.OccurredAt = time.Now().UTC()
	}
	for _, observer := range observers {
		observer.StatusChanged(ctx, change)
	}
}
