// Package eventbus provides the in-process event bus used to decouple the
// setup flow from the components that react to it (status refresh, panel
// bookkeeping). It wraps watermill's GoChannel pub/sub.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// EventBus is the publish/subscribe surface the rest of the bot depends on.
type EventBus interface {
	Publish(topic string, messages ...*message.Message) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

type goChannelBus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewEventBus creates an in-process event bus backed by watermill's GoChannel.
func NewEventBus(logger *slog.Logger) EventBus {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return &goChannelBus{pubsub: pubsub, logger: logger}
}

func (b *goChannelBus) Publish(topic string, messages ...*message.Message) error {
	return b.pubsub.Publish(topic, messages...)
}

func (b *goChannelBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

func (b *goChannelBus) Close() error {
	b.logger.Info("Closing event bus")
	return b.pubsub.Close()
}

// NewMessage marshals a payload into a watermill message with a fresh UUID.
func NewMessage(payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return message.NewMessage(uuid.NewString(), data), nil
}
