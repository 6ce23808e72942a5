package mq_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lostfound/moderation/config"
	"github.com/lostfound/moderation/internal/mq"
)

func TestMemoryBackendDeliversToSubscribers(t *testing.T) {
	backend := mq.NewMemoryBackend()
	queue := mq.New(backend)
	t.Cleanup(func() { _ = queue.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan mq.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- queue.Subscribe(ctx, "moderation.events", func(ctx context.Context, msg mq.Message) error {
			received <- msg
			return nil
		})
	}()

	// Wait until the subscriber is registered before publishing.
	require.Eventually(t, func() bool {
		id, err := queue.Publish(ctx, "moderation.events", []byte(`{"kind":"item"}`), map[string]string{"kind": "item"})
		if err != nil || id == "" {
			return false
		}
		select {
		case msg := <-received:
			assert.Equal(t, `{"kind":"item"}`, string(msg.Data))
			assert.Equal(t, "item", msg.Attributes["kind"])
			return true
		case <-time.After(10 * time.Millisecond):
			return false
		}
	}, time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestMemoryBackendRetainsPublished(t *testing.T) {
	backend := mq.NewMemoryBackend(mq.WithRetention(10))
	ctx := context.Background()

	_, err := backend.Publish(ctx, "a", []byte("one"), nil)
	require.NoError(t, err)
	_, err = backend.Publish(ctx, "a", []byte("two"), nil)
	require.NoError(t, err)
	_, err = backend.Publish(ctx, "b", []byte("three"), nil)
	require.NoError(t, err)

	msgs := backend.Published("a")
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", string(msgs[0].Data))
	assert.Equal(t, "two", string(msgs[1].Data))

	_, err = backend.Publish(ctx, " ", nil, nil)
	assert.ErrorIs(t, err, mq.ErrChannelRequired)

	require.NoError(t, backend.Close())
	_, err = backend.Publish(ctx, "a", nil, nil)
	assert.ErrorIs(t, err, mq.ErrClosed)
}

func TestMemoryBackendRetentionIsBounded(t *testing.T) {
	ctx := context.Background()

	backend, err := mq.NewBackend(ctx, config.MQConfig{Backend: "memory"})
	require.NoError(t, err)
	memory := backend.(*mq.MemoryBackend)
	for i := 0; i < 1000; i++ {
		_, err := memory.Publish(ctx, "moderation.events", []byte("event"), nil)
		require.NoError(t, err)
	}
	assert.Empty(t, memory.Published("moderation.events"))

	capped := mq.NewMemoryBackend(mq.WithRetention(3))
	for i := 0; i < 1000; i++ {
		_, err := capped.Publish(ctx, "moderation.events", []byte(fmt.Sprint(i)), nil)
		require.NoError(t, err)
	}
	msgs := capped.Published("moderation.events")
	require.Len(t, msgs, 3)
	assert.Equal(t, "997", string(msgs[0].Data))
	assert.Equal(t, "999", string(msgs[2].Data))
}

func TestNewBackend(t *testing.T) {
	backend, err := mq.NewBackend(context.Background(), config.MQConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &mq.MemoryBackend{}, backend)

	backend, err = mq.NewBackend(context.Background(), config.MQConfig{Backend: "none"})
	require.NoError(t, err)
	assert.Nil(t, backend)

	_, err = mq.NewBackend(context.Background(), config.MQConfig{Backend: "kafka"})
	assert.Error(t, err)

	_, err = mq.NewBackend(context.Background(), config.MQConfig{Backend: "rabbitmq"})
	assert.EqualError(t, err, "rabbitmq url is required")

	_, err = mq.NewBackend(context.Background(), config.MQConfig{Backend: "pubsub"})
	assert.EqualError(t, err, "pubsub project id is required")
}

func TestPublishJSON(t *testing.T) {
	backend := mq.NewMemoryBackend(mq.WithRetention(1))
	queue := mq.New(backend)

	attrs := map[string]string{"kind": "user"}
	id, err := queue.PublishJSON(context.Background(), "moderation.events", map[string]string{"record_id": "u3"}, attrs)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, attrs, 1)

	msgs := backend.Published("moderation.events")
	require.Len(t, msgs, 1)
	assert.Equal(t, "application/json", msgs[0].Attributes[mq.AttrContentType])
	assert.Equal(t, "user", msgs[0].Attributes["kind"])

	var payload map[string]string
	require.NoError(t, msgs[0].DecodeJSON(&payload))
	assert.Equal(t, "u3", payload["record_id"])

	raw := mq.Message{Data: []byte("x"), Attributes: map[string]string{mq.AttrContentType: "text/plain"}}
	assert.Error(t, raw.DecodeJSON(&payload))
}
