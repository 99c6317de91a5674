package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Audit logs every event published on topics until ctx is done. It returns
// once all subscriptions are open; consumption happens in the background
// and wg is released when it stops.
func (b *EventBus) Audit(ctx context.Context, wg *sync.WaitGroup, topics ...string) error {
	for _, topic := range topics {
		messages, err := b.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}

		wg.Add(1)
		go func(topic string, messages <-chan *message.Message) {
			defer wg.Done()
			for msg := range messages {
				b.logger.Info("Event",
					attr.String("topic", topic),
					attr.String("message_id", msg.UUID),
					slog.String(CorrelationIDKey, msg.Metadata.Get(CorrelationIDKey)),
					slog.String("payload", string(msg.Payload)),
				)
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
