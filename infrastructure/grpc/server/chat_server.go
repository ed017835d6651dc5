package server

import (
	"context"
	"log/slog"
	"social-lab/auth"
	"social-lab/domain/chat"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/services"

	"github.com/samber/lo"
)

type ChatServer struct {
	chatService services.IChatService
	log         *slog.Logger
}

func NewChatServer(log *slog.Logger, chatService services.IChatService) *ChatServer {
	return &ChatServer{chatService: chatService, log: log}
}

// SendMessage stores a message for the (sender, recipient) pair. When the
// call carries an identity, it must be the sender's.
func (s *ChatServer) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	if err := requireCaller(ctx, req.SenderID); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	message, err := s.chatService.SendMessage(ctx, chat.SendMessageCommand{
		SenderID:    chat.UserID(req.SenderID),
		RecipientID: chat.UserID(req.RecipientID),
		Content:     req.Content,
	})
	if err != nil {
		s.log.Debug("Send message rejected", "sender_id", req.SenderID, "error", err)
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.SendMessageResponse{Message: toMessage(message)}, nil
}

func (s *ChatServer) CreateConversation(ctx context.Context, req *pb.CreateConversationRequest) (*pb.CreateConversationResponse, error) {
	if err := requireCaller(ctx, req.UserA, req.UserB); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	conversation, err := s.chatService.CreateConversation(ctx, chat.CreateConversationCommand{
		UserA: chat.UserID(req.UserA),
		UserB: chat.UserID(req.UserB),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.CreateConversationResponse{Conversation: toConversation(conversation)}, nil
}

// GetConversation returns a conversation to one of its participants.
func (s *ChatServer) GetConversation(ctx context.Context, req *pb.GetConversationRequest) (*pb.GetConversationResponse, error) {
	conversation, err := s.participantOf(ctx, req.ConversationID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetConversationResponse{Conversation: toConversation(conversation)}, nil
}

// ListMessages returns the log of a conversation. An authenticated caller
// only reads conversations it takes part in, even empty ones.
func (s *ChatServer) ListMessages(ctx context.Context, req *pb.ListMessagesRequest) (*pb.ListMessagesResponse, error) {
	if _, err := s.participantOf(ctx, req.ConversationID); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	messages, err := s.chatService.ListMessages(ctx, chat.ListMessagesCommand{
		ConversationID: chat.ConversationID(req.ConversationID),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ListMessagesResponse{Messages: lo.Map(messages, func(m chat.Message, _ int) pb.Message {
		return toMessage(m)
	})}, nil
}

func (s *ChatServer) ListConversations(ctx context.Context, req *pb.ListConversationsRequest) (*pb.ListConversationsResponse, error) {
	if err := requireCaller(ctx, req.UserID); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	conversations, err := s.chatService.ListConversations(ctx, chat.ListConversationsCommand{
		UserID: chat.UserID(req.UserID),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ListConversationsResponse{Conversations: lo.Map(conversations, func(c chat.Conversation, _ int) pb.Conversation {
		return toConversation(c)
	})}, nil
}

func (s *ChatServer) participantOf(ctx context.Context, conversationID string) (chat.Conversation, error) {
	conversation, err := s.chatService.GetConversation(ctx, chat.GetConversationCommand{
		ConversationID: chat.ConversationID(conversationID),
	})
	if err != nil {
		return chat.Conversation{}, err
	}
	if err := requireCaller(ctx, string(conversation.ParticipantA), string(conversation.ParticipantB)); err != nil {
		return chat.Conversation{}, err
	}
	return conversation, nil
}

// requireCaller passes when no identity was injected (authentication
// disabled) or when the identity is one of the allowed users.
func requireCaller(ctx context.Context, allowed ...string) error {
	caller, ok := auth.UserIDFromContext(ctx)
	if !ok || lo.Contains(allowed, caller) {
		return nil
	}
	return errors.ErrNotParticipant
}

func toMessage(m chat.Message) pb.Message {
	return pb.Message{
		MessageID:      m.ID.String(),
		ConversationID: string(m.ConversationID),
		SenderID:       string(m.SenderID),
		RecipientID:    string(m.RecipientID),
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func toConversation(c chat.Conversation) pb.Conversation {
	return pb.Conversation{
		ConversationID: string(c.ID),
		ParticipantA:   string(c.ParticipantA),
		ParticipantB:   string(c.ParticipantB),
		CreatedAt:      c.CreatedAt,
	}
}
