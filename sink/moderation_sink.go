package sink

import (
	"context"
	"log/slog"
	"social-lab/domain/event"
	"social-lab/moderation"
)

// ModerationSink reports messages containing a listed term. It only
// observes: the stored message is left as it was sent.
type ModerationSink struct {
	log      *slog.Logger
	detector *moderation.Detector
}

func NewModerationSink(log *slog.Logger, detector *moderation.Detector) ModerationSink {
	return ModerationSink{log: log, detector: detector}
}

func (s ModerationSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageSent)
	if !ok {
		return nil
	}
	finding := s.detector.Scan(evt.Content)
	if !finding.Flagged() {
		return nil
	}
	s.log.Warn("Message flagged by moderation",
		"message_id", evt.ID,
		"conversation_id", evt.Conversation,
		"sender_id", evt.SenderID,
		"terms", finding.Terms,
		"masked", finding.Masked)
	return nil
}
