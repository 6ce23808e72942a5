package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Publisher sends JSON payloads to a named channel. *mq.MQ satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, channel string, v any, attrs map[string]string) (string, error)
}

// EventPublisher forwards status changes to the message broker so that the
// notifier can tell submitters about the decision.
type EventPublisher struct {
	queue   Publisher
	channel string
	logger  *slog.Logger
}

func NewEventPublisher(queue Publisher, channel string, logger *slog.Logger) *EventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventPublisher{queue: queue, channel: channel, logger: logger}
}

// StatusChanged publishes the change. Failures are logged only.
func (p *EventPublisher) StatusChanged(ctx context.Context, change StatusChange) {
	if change.EventID == "" {
		change.EventID = uuid.NewString()
	}

	attrs := map[string]string{
		"kind":   change.Kind,
		"action": change.Action,
	}
	if _, err := p.queue.PublishJSON(ctx, p.channel, change, attrs); err != nil {
		p.logger.Error("publish moderation event",
			slog.String("event_id", change.EventID),
			slog.String("kind", change.Kind),
			slog.String("record_id", change.RecordID),
			slog.Any("error", err),
		)
	}
}
