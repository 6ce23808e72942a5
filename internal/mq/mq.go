// Package mq delivers moderation events to downstream consumers such as the
// submitter notifier. RabbitMQ and Google Cloud Pub/Sub are supported, plus
// an in-process backend for local runs and tests.
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// AttrContentType carries the payload encoding on every message.
	AttrContentType = "content_type"

	contentTypeJSON = "application/json"
)

var (
	ErrChannelRequired = errors.New("mq: channel is required")
	ErrClosed          = errors.New("mq: backend closed")
)

// Message is a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// DecodeJSON unmarshals the payload of a message published with PublishJSON.
func (m Message) DecodeJSON(v any) error {
	if ct := m.Attributes[AttrContentType]; ct != "" && ct != contentTypeJSON {
		return fmt.Errorf("mq: unexpected content type %q", ct)
	}
	return json.Unmarshal(m.Data, v)
}

// Handler processes a message. Returning an error asks the backend to
// redeliver it where the broker supports that.
type Handler func(ctx context.Context, msg Message) error

// Backend is implemented by each broker.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// MQ wraps a backend with JSON helpers.
type MQ struct {
	backend Backend
}

func New(backend Backend) *MQ {
	return &MQ{backend: backend}
}

// Publish sends raw bytes to channel and returns the broker message ID.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, channel, data, attrs)
}

// PublishJSON encodes v and publishes it with a JSON content type.
func (m *MQ) PublishJSON(ctx context.Context, channel string, v any, attrs map[string]string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("mq: encode payload: %w", err)
	}
	withType := make(map[string]string, len(attrs)+1)
	for k, val := range attrs {
		withType[k] = val
	}
	withType[AttrContentType] = contentTypeJSON
	return m.backend.Publish(ctx, channel, data, withType)
}

// Subscribe blocks consuming channel until ctx is done or the backend fails.
func (m *MQ) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return m.backend.Subscribe(ctx, channel, handler)
}

func (m *MQ) Close() error {
	return m.backend.Close()
}

func checkChannel(channel string) error {
	if strings.TrimSpace(channel) == "" {
		return ErrChannelRequired
	}
	return nil
}
