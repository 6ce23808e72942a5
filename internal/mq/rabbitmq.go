package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lostfound/moderation/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQBackend publishes to and consumes from queues named after the
// channel, using the default exchange.
type RabbitMQBackend struct {
	conn            *amqp.Connection
	queueDurable    bool
	queueAutoDelete bool
	prefetchCount   int

	// mu serializes use of the publishing channel, which amqp091 does not
	// allow concurrently.
	mu          sync.Mutex
	channel     publishChannel
	openChannel func() (publishChannel, error)
	declared    map[string]bool
}

// publishChannel is the subset of *amqp.Channel used for publishing.
type publishChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

func NewRabbitMQBackend(cfg config.RabbitMQConfig) (*RabbitMQBackend, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	r := &RabbitMQBackend{
		conn:            conn,
		queueDurable:    cfg.QueueDurable,
		queueAutoDelete: cfg.QueueAutoDelete,
		prefetchCount:   cfg.PrefetchCount,
		declared:        make(map[string]bool),
		openChannel: func() (publishChannel, error) {
			return conn.Channel()
		},
	}
	if _, err := r.publishChannelLocked(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return r, nil
}

// publishChannelLocked returns the publishing channel, opening a new one if
// the broker closed the previous one. Queue declarations are per channel
// cache only, so they are redone after a reopen.
func (r *RabbitMQBackend) publishChannelLocked() (publishChannel, error) {
	if r.channel != nil && !r.channel.IsClosed() {
		return r.channel, nil
	}
	ch, err := r.openChannel()
	if err != nil {
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}
	r.channel = ch
	r.declared = make(map[string]bool)
	return ch, nil
}

func (r *RabbitMQBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := checkChannel(channel); err != nil {
		return "", err
	}

	headers := amqp.Table{}
	for key, value := range attrs {
		headers[key] = value
	}
	contentType := attrs[AttrContentType]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	deliveryMode := amqp.Transient
	if r.queueDurable {
		deliveryMode = amqp.Persistent
	}

	msg := amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: deliveryMode,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Headers:      headers,
		Body:         data,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ch, err := r.publishChannelLocked()
	if err != nil {
		return "", err
	}
	if err := r.declareLocked(ch, channel); err != nil {
		return "", err
	}
	if err := ch.PublishWithContext(ctx, "", channel, false, false, msg); err != nil {
		return "", err
	}
	return msg.MessageId, nil
}

// Subscribe consumes on a dedicated channel. A failed message is requeued
// once and dropped when it fails again.
func (r *RabbitMQBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if err := checkChannel(channel); err != nil {
		return err
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if r.prefetchCount > 0 {
		if err := ch.Qos(r.prefetchCount, 0, false); err != nil {
			return err
		}
	}
	if _, err := ch.QueueDeclare(channel, r.queueDurable, r.queueAutoDelete, false, false, nil); err != nil {
		return err
	}

	consumerTag := "moderation-" + uuid.NewString()
	deliveries, err := ch.Consume(channel, consumerTag, false, false, false, false, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = ch.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			attrs := headersToAttributes(delivery.Headers)
			if attrs == nil {
				attrs = map[string]string{}
			}
			if _, ok := attrs[AttrContentType]; !ok && delivery.ContentType != "" {
				attrs[AttrContentType] = delivery.ContentType
			}
			err := handler(ctx, Message{ID: delivery.MessageId, Data: delivery.Body, Attributes: attrs})
			if err != nil {
				_ = delivery.Nack(false, !delivery.Redelivered)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (r *RabbitMQBackend) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *RabbitMQBackend) declareLocked(ch publishChannel, name string) error {
	if r.declared[name] {
		return nil
	}
	if _, err := ch.QueueDeclare(name, r.queueDurable, r.queueAutoDelete, false, false, nil); err != nil {
		return err
	}
	r.declared[name] = true
	return nil
}

func headersToAttributes(headers amqp.Table) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(headers))
	for key, value := range headers {
		switch typed := value.(type) {
		case string:
			attrs[key] = typed
		case []byte:
			attrs[key] = string(typed)
		default:
			attrs[key] = fmt.Sprint(value)
		}
	}
	return attrs
}
