package services_test

import (
	"context"
	goerrors "errors"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/domain/event"
	"social-lab/errors"
	"social-lab/mocks"
	"social-lab/repositories"
	"social-lab/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newChatService(t *testing.T, events chan<- event.DomainEvent) *services.ChatService {
	t.Helper()
	db := openDB(t)
	log := slog.New(slog.DiscardHandler)
	messages, err := repositories.NewMessageRepository(db, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = messages.Close() })
	store := services.NewConversationStore(repositories.NewConversationRepository(db, log), log)
	return services.NewChatService(log, store, messages, events)
}

func TestChatService_TwoUsersExchange(t *testing.T) {
	req := require.New(t)
	svc := newChatService(t, nil)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2", Content: "hi"})
	req.NoError(err)
	reply, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u2", RecipientID: "u1", Content: "hello"})
	req.NoError(err)
	req.Equal(first.ConversationID, reply.ConversationID)

	messages, err := svc.ListMessages(ctx, chat.ListMessagesCommand{ConversationID: first.ConversationID})
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("hi", messages[0].Content)
	req.Equal(chat.UserID("u1"), messages[0].SenderID)
	req.Equal("hello", messages[1].Content)
	req.Equal(chat.UserID("u2"), messages[1].SenderID)

	for _, user := range []chat.UserID{"u1", "u2"} {
		conversations, err := svc.ListConversations(ctx, chat.ListConversationsCommand{UserID: user})
		req.NoError(err)
		req.Len(conversations, 1)
		req.Equal(first.ConversationID, conversations[0].ID)
	}

	conversations, err := svc.ListConversations(ctx, chat.ListConversationsCommand{UserID: "u3"})
	req.NoError(err)
	req.Empty(conversations)
}

func TestChatService_SendMessage_ToSelfCreatesNothing(t *testing.T) {
	req := require.New(t)
	svc := newChatService(t, nil)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u1", RecipientID: "u1", Content: "me"})
	req.ErrorIs(err, errors.ErrSelfConversation)
	req.ErrorIs(err, errors.ErrInvalidArgument)

	conversations, err := svc.ListConversations(ctx, chat.ListConversationsCommand{UserID: "u1"})
	req.NoError(err)
	req.Empty(conversations)
}

func TestChatService_Validation(t *testing.T) {
	svc := newChatService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"missing sender", func() error {
			_, err := svc.SendMessage(ctx, chat.SendMessageCommand{RecipientID: "u2", Content: "x"})
			return err
		}},
		{"missing recipient", func() error {
			_, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u1", Content: "x"})
			return err
		}},
		{"missing conversation id", func() error {
			_, err := svc.ListMessages(ctx, chat.ListMessagesCommand{})
			return err
		}},
		{"missing user id", func() error {
			_, err := svc.ListConversations(ctx, chat.ListConversationsCommand{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), errors.ErrInvalidArgument)
		})
	}
}

func TestChatService_SendMessage_EmptyContentIsStored(t *testing.T) {
	req := require.New(t)
	svc := newChatService(t, nil)
	ctx := context.Background()

	sent, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2"})
	req.NoError(err)
	req.Empty(sent.Content)

	messages, err := svc.ListMessages(ctx, chat.ListMessagesCommand{ConversationID: sent.ConversationID})
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal(sent.ID, messages[0].ID)
	req.Empty(messages[0].Content)
}

func TestChatService_ListMessages_UnknownConversation(t *testing.T) {
	req := require.New(t)
	svc := newChatService(t, nil)

	_, err := svc.ListMessages(context.Background(), chat.ListMessagesCommand{ConversationID: "nope"})
	req.ErrorIs(err, errors.ErrConversationNotFound)
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestChatService_CreateConversation_Explicit(t *testing.T) {
	req := require.New(t)
	svc := newChatService(t, nil)
	ctx := context.Background()

	created, err := svc.CreateConversation(ctx, chat.CreateConversationCommand{UserA: "u1", UserB: "u2"})
	req.NoError(err)

	_, err = svc.CreateConversation(ctx, chat.CreateConversationCommand{UserA: "u2", UserB: "u1"})
	req.ErrorIs(err, errors.ErrConversationAlreadyExists)

	fetched, err := svc.GetConversation(ctx, chat.GetConversationCommand{ConversationID: created.ID})
	req.NoError(err)
	req.True(fetched.Has("u1"))
	req.True(fetched.Has("u2"))
	_, err = svc.GetConversation(ctx, chat.GetConversationCommand{ConversationID: "nope"})
	req.ErrorIs(err, errors.ErrConversationNotFound)
	_, err = svc.GetConversation(ctx, chat.GetConversationCommand{})
	req.ErrorIs(err, errors.ErrInvalidArgument)

	message, err := svc.SendMessage(ctx, chat.SendMessageCommand{SenderID: "u2", RecipientID: "u1", Content: "reuse"})
	req.NoError(err)
	req.Equal(created.ID, message.ConversationID)

	messages, err := svc.ListMessages(ctx, chat.ListMessagesCommand{ConversationID: created.ID})
	req.NoError(err)
	req.Len(messages, 1)
}

func TestChatService_SendMessage_PublishesEvent(t *testing.T) {
	req := require.New(t)
	events := make(chan event.DomainEvent, 1)
	svc := newChatService(t, events)

	message, err := svc.SendMessage(context.Background(), chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2", Content: "ping"})
	req.NoError(err)

	select {
	case evt := <-events:
		sent, ok := evt.(event.MessageSent)
		req.True(ok)
		req.Equal(message.ID, sent.ID)
		req.Equal(message.ConversationID, sent.ConversationID())
		req.Equal("ping", sent.Content)
	case <-time.After(time.Second):
		req.Fail("no MessageSent published")
	}

	// A saturated channel never blocks a send
	_, err = svc.SendMessage(context.Background(), chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2", Content: "one"})
	req.NoError(err)
	_, err = svc.SendMessage(context.Background(), chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2", Content: "two"})
	req.NoError(err)
}

func TestChatService_SendMessage_AppendFailureKeepsConversation(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockIConversationStore(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	svc := services.NewChatService(slog.New(slog.DiscardHandler), store, messages, nil)

	conversation := chat.Conversation{ID: "c-1", ParticipantA: "u1", ParticipantB: "u2"}
	boom := goerrors.New("disk full")

	store.EXPECT().ResolveOrCreate(gomock.Any(), chat.UserID("u1"), chat.UserID("u2")).Return(conversation, nil).Times(2)
	gomock.InOrder(
		messages.EXPECT().AppendMessage(chat.ConversationID("c-1"), chat.UserID("u1"), chat.UserID("u2"), "hi").
			Return(chat.Message{}, boom),
		messages.EXPECT().AppendMessage(chat.ConversationID("c-1"), chat.UserID("u1"), chat.UserID("u2"), "hi").
			Return(chat.Message{ConversationID: "c-1", Content: "hi"}, nil),
	)
	store.EXPECT().CreateConversation(gomock.Any(), gomock.Any()).Times(0)

	cmd := chat.SendMessageCommand{SenderID: "u1", RecipientID: "u2", Content: "hi"}
	_, err := svc.SendMessage(context.Background(), cmd)
	req.ErrorIs(err, boom)

	message, err := svc.SendMessage(context.Background(), cmd)
	req.NoError(err)
	req.Equal(chat.ConversationID("c-1"), message.ConversationID)
}
