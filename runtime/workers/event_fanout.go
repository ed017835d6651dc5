package workers

import (
	"context"
	"fmt"
	"log/slog"
	"social-lab/contract"
	"social-lab/domain/event"
	"sync"
	"time"
)

// EventFanout delivers MessageSent notifications to every registered sink.
//
// Delivery is best effort: a slow sink is cut off after sinkTimeout and a
// failing sink is logged, never retried. Storing a message never depends
// on a sink.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, events <-chan event.DomainEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout, sinks: sinks}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout hands the event to all sinks in parallel and waits for each of them
// to finish or time out.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event",
					"sink", fmt.Sprintf("%T", sink),
					"conversation_id", evt.ConversationID(),
					"error", err)
			}
		}(sink)
	}
	wg.Wait()
}
