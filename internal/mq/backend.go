package mq

import (
	"context"
	"fmt"

	"github.com/lostfound/moderation/config"
)

// NewBackend builds the backend selected by cfg.Backend. It returns a nil
// backend for "none".
func NewBackend(ctx context.Context, cfg config.MQConfig) (Backend, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryBackend(), nil
	case "rabbitmq":
		backend, err := NewRabbitMQBackend(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case "pubsub":
		backend, err := NewPubSubBackend(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.Backend)
	}
}
