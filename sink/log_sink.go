package sink

import (
	"context"
	"fmt"
	"log/slog"
	"social-lab/domain/event"
)

// LogSink traces every notification. The content itself is never logged.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) LogSink {
	return LogSink{log: log}
}

func (l LogSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageSent:
		l.log.Debug("Message sent",
			"message_id", evt.ID,
			"conversation_id", evt.Conversation,
			"sender_id", evt.SenderID,
			"recipient_id", evt.RecipientID,
			"size", len(evt.Content))
	default:
		l.log.Debug(fmt.Sprintf("Not implemented event : %T", evt))
	}
	return nil
}
