//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/domain/event"
	"social-lab/errors"
	"social-lab/repositories"

	"github.com/go-playground/validator/v10"
)

type IChatService interface {
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	CreateConversation(ctx context.Context, cmd chat.CreateConversationCommand) (chat.Conversation, error)
	GetConversation(ctx context.Context, cmd chat.GetConversationCommand) (chat.Conversation, error)
	ListMessages(ctx context.Context, cmd chat.ListMessagesCommand) ([]chat.Message, error)
	ListConversations(ctx context.Context, cmd chat.ListConversationsCommand) ([]chat.Conversation, error)
}

// ChatService is the entry point of remote callers. It hides that sending a
// message is a two step operation on two stores.
type ChatService struct {
	conversations IConversationStore
	messages      repositories.IMessageRepository
	events        chan<- event.DomainEvent
	validate      *validator.Validate
	log           *slog.Logger
}

// NewChatService wires the façade. events may be nil when nobody listens
// to MessageSent notifications.
func NewChatService(log *slog.Logger, conversations IConversationStore,
	messages repositories.IMessageRepository, events chan<- event.DomainEvent) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		events:        events,
		validate:      validator.New(),
		log:           log,
	}
}

// SendMessage resolves (or creates) the conversation of the pair and appends
// the message to it. If the append fails the conversation stays: retrying the
// whole call reuses it instead of creating a second one.
func (s *ChatService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := s.check(cmd); err != nil {
		return chat.Message{}, err
	}
	if cmd.SenderID == cmd.RecipientID {
		return chat.Message{}, errors.ErrSelfConversation
	}

	conversation, err := s.conversations.ResolveOrCreate(ctx, cmd.SenderID, cmd.RecipientID)
	if err != nil {
		return chat.Message{}, err
	}

	message, err := s.messages.AppendMessage(conversation.ID, cmd.SenderID, cmd.RecipientID, cmd.Content)
	if err != nil {
		return chat.Message{}, fmt.Errorf("append message to %s: %w", conversation.ID, err)
	}

	s.publish(event.NewMessageSent(message))
	return message, nil
}

func (s *ChatService) CreateConversation(_ context.Context, cmd chat.CreateConversationCommand) (chat.Conversation, error) {
	if err := s.check(cmd); err != nil {
		return chat.Conversation{}, err
	}
	return s.conversations.CreateConversation(cmd.UserA, cmd.UserB)
}

func (s *ChatService) GetConversation(_ context.Context, cmd chat.GetConversationCommand) (chat.Conversation, error) {
	if err := s.check(cmd); err != nil {
		return chat.Conversation{}, err
	}
	return s.conversations.GetConversation(cmd.ConversationID)
}

// ListMessages fails with ErrConversationNotFound for an unknown id.
func (s *ChatService) ListMessages(_ context.Context, cmd chat.ListMessagesCommand) ([]chat.Message, error) {
	if err := s.check(cmd); err != nil {
		return nil, err
	}
	if _, err := s.conversations.GetConversation(cmd.ConversationID); err != nil {
		return nil, err
	}
	return s.messages.GetMessages(cmd.ConversationID)
}

func (s *ChatService) ListConversations(_ context.Context, cmd chat.ListConversationsCommand) ([]chat.Conversation, error) {
	if err := s.check(cmd); err != nil {
		return nil, err
	}
	return s.conversations.ListConversationsForUser(cmd.UserID)
}

func (s *ChatService) check(cmd any) error {
	if err := s.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return nil
}

// publish never blocks a send: when the fanout is saturated the
// notification is dropped, the message itself is already stored.
func (s *ChatService) publish(evt event.DomainEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- evt:
	default:
		s.log.Debug("Event channel full, notification dropped", "conversation_id", evt.ConversationID())
	}
}
