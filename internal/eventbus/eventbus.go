// Package eventbus publishes domain events as JSON watermill messages.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

// CorrelationIDKey is the message metadata key carrying the request
// correlation ID.
const CorrelationIDKey = "correlation_id"

// Publisher is what services depend on.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// EventBus wraps a watermill publisher and subscriber pair.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

var _ Publisher = (*EventBus)(nil)

// New connects to NATS when natsURL is set. Otherwise events stay
// in-process on a go channel.
func New(natsURL string, logger *slog.Logger) (*EventBus, error) {
	if natsURL == "" {
		return NewInMemory(logger), nil
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		wmLogger,
	)
	if err != nil {
		publisher.Close()
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	logger.Info("Event bus connected to NATS", attr.String("url", natsURL))

	return &EventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// NewInMemory returns a bus backed by watermill's gochannel pub/sub.
func NewInMemory(logger *slog.Logger) *EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &EventBus{publisher: ch, subscriber: ch, logger: logger}
}

// Publish encodes payload as JSON and publishes it on topic.
func (b *EventBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if id := attr.CorrelationIDFrom(ctx); id != "" {
		msg.Metadata.Set(CorrelationIDKey, id)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	b.logger.DebugContext(ctx, "Event published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

// Subscribe returns the message stream for topic.
func (b *EventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts down both sides of the bus.
func (b *EventBus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close subscriber: %w", err))
	}
	if any(b.subscriber) != any(b.publisher) {
		if err := b.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
