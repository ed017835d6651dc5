package workers

import (
	"context"
	goerrors "errors"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/domain/event"
	"social-lab/mocks"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sentEvent() event.MessageSent {
	return event.NewMessageSent(chat.Message{ConversationID: "c-1", SenderID: "u1", RecipientID: "u2", Content: "hi"})
}

func TestEventFanout_Fanout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)
	evt := sentEvent()

	// Given two sinks, each of them receives the event once
	first.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	second.EXPECT().Consume(gomock.Any(), evt).Return(goerrors.New("nats down")).Times(1)

	fanout := NewEventFanout(log, nil, time.Second, first, second)

	// When an event is handled, a failing sink doesn't stop the others
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slow := mocks.NewMockEventSink(ctrl)
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	fanout := NewEventFanout(log, nil, 20*time.Millisecond, slow)

	start := time.Now()
	fanout.Fanout(context.Background(), sentEvent())
	req.Less(time.Since(start), 500*time.Millisecond)
}

func TestEventFanout_Run(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	events := make(chan event.DomainEvent, 2)
	sink := mocks.NewMockEventSink(ctrl)
	received := make(chan chat.ConversationID, 2)
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, evt event.DomainEvent) error {
			received <- evt.ConversationID()
			return nil
		}).
		Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- NewEventFanout(log, events, time.Second, sink).Run(ctx) }()

	events <- sentEvent()
	events <- sentEvent()
	for i := 0; i < 2; i++ {
		select {
		case id := <-received:
			req.Equal(chat.ConversationID("c-1"), id)
		case <-time.After(time.Second):
			req.Fail("event not delivered")
		}
	}

	cancel()
	req.NoError(<-done)
}
