package sink

import (
	"context"
	"fmt"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/domain/event"

	"github.com/bytedance/sonic"
	"github.com/nats-io/nats.go/jetstream"
)

// Feed follows the live MessageSent notifications of one conversation.
type Feed struct {
	js     jetstream.JetStream
	stream string
	prefix string
	log    *slog.Logger
}

func NewFeed(log *slog.Logger, js jetstream.JetStream, stream, prefix string) *Feed {
	return &Feed{js: js, stream: stream, prefix: prefix, log: log}
}

// Follow calls onEvent for every new message of the conversation until the
// returned stop function is called. Past messages are not replayed.
func (f *Feed) Follow(ctx context.Context, conversationID chat.ConversationID, onEvent func(event.MessageSent)) (func(), error) {
	consumer, err := f.js.OrderedConsumer(ctx, f.stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{Subject(f.prefix, conversationID)},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("follow %s: %w", conversationID, err)
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		evt, err := DecodeMessageSent(msg.Data())
		if err != nil {
			f.log.Warn("Dropping undecodable feed message", "subject", msg.Subject(), "error", err)
			return
		}
		onEvent(evt)
	})
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", conversationID, err)
	}
	return consumeCtx.Stop, nil
}

func DecodeMessageSent(data []byte) (event.MessageSent, error) {
	var evt event.MessageSent
	if err := sonic.Unmarshal(data, &evt); err != nil {
		return event.MessageSent{}, err
	}
	return evt, nil
}
