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

// Publisher is the part of jetstream.JetStream the sink needs.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// JetStreamSink publishes MessageSent notifications on
// {prefix}.{conversationId}, so that a consumer can follow one conversation.
type JetStreamSink struct {
	publisher Publisher
	prefix    string
	log       *slog.Logger
}

func NewJetStreamSink(log *slog.Logger, publisher Publisher, prefix string) JetStreamSink {
	return JetStreamSink{publisher: publisher, prefix: prefix, log: log}
}

func (s JetStreamSink) Consume(ctx context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageSent)
	if !ok {
		return nil
	}
	payload, err := sonic.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	subject := Subject(s.prefix, evt.Conversation)
	// The message id doubles as the deduplication id of the stream
	if _, err := s.publisher.Publish(ctx, subject, payload, jetstream.WithMsgID(evt.ID.String())); err != nil {
		return fmt.Errorf("publish on %s: %w", subject, err)
	}
	return nil
}

func Subject(prefix string, conversationID chat.ConversationID) string {
	return prefix + "." + string(conversationID)
}

// EnsureStream creates the stream holding every conversation subject of the
// prefix, or updates it when it already exists.
func EnsureStream(ctx context.Context, js jetstream.JetStream, name, prefix string) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: []string{prefix + ".>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("ensure stream %s: %w", name, err)
	}
	return nil
}
