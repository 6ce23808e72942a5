package mq

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

const memorySubscriberBuffer = 64

// MemoryBackend delivers messages between publishers and subscribers of
// the same process. Messages no subscriber is listening for are dropped
// unless retention is enabled with WithRetention.
type MemoryBackend struct {
	mu          sync.Mutex
	subscribers map[string]map[string]chan Message
	published   map[string][]Message
	retain      int
	closed      bool
}

// MemoryOption configures a MemoryBackend.
type MemoryOption func(*MemoryBackend)

// WithRetention keeps the last limit messages of each channel for
// Published.
func WithRetention(limit int) MemoryOption {
	return func(b *MemoryBackend) {
		if limit > 0 {
			b.retain = limit
		}
	}
}

// NewMemoryBackend constructs an in-process backend.
func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	b := &MemoryBackend{
		subscribers: make(map[string]map[string]chan Message),
		published:   make(map[string][]Message),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish hands the message to current subscribers and, with retention
// enabled, records it.
func (b *MemoryBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := checkChannel(channel); err != nil {
		return "", err
	}

	msg := Message{
		ID:         uuid.NewString(),
		Data:       append([]byte(nil), data...),
		Attributes: copyAttributes(attrs),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return "", ErrClosed
	}
	if b.retain > 0 {
		kept := append(b.published[channel], msg)
		if len(kept) > b.retain {
			kept = append([]Message(nil), kept[len(kept)-b.retain:]...)
		}
		b.published[channel] = kept
	}
	targets := make([]chan Message, 0, len(b.subscribers[channel]))
	for _, ch := range b.subscribers[channel] {
		targets = append(targets, ch)
	}
	b.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- msg:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return msg.ID, nil
}

// Subscribe blocks, passing messages published after the call to handler
// until ctx is done. Handler errors are dropped; there is no redelivery.
func (b *MemoryBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if err := checkChannel(channel); err != nil {
		return err
	}

	id := uuid.NewString()
	ch := make(chan Message, memorySubscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[string]chan Message)
	}
	b.subscribers[channel][id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subscribers[channel], id)
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-ch:
			_ = handler(ctx, msg)
		}
	}
}

// Published returns the retained messages of channel, oldest first.
func (b *MemoryBackend) Published(channel string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.published[channel]...)
}

// Close rejects further publishes and subscriptions.
func (b *MemoryBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func copyAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
