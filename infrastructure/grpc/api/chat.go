package api

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	ChatService_SendMessage_FullMethodName        = "/social.chat.v1.ChatService/SendMessage"
	ChatService_CreateConversation_FullMethodName = "/social.chat.v1.ChatService/CreateConversation"
	ChatService_GetConversation_FullMethodName    = "/social.chat.v1.ChatService/GetConversation"
	ChatService_ListMessages_FullMethodName       = "/social.chat.v1.ChatService/ListMessages"
	ChatService_ListConversations_FullMethodName  = "/social.chat.v1.ChatService/ListConversations"
)

type Message struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	ParticipantA   string    `json:"participant_a"`
	ParticipantB   string    `json:"participant_b"`
	CreatedAt      time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

type SendMessageResponse struct {
	Message Message `json:"message"`
}

type CreateConversationRequest struct {
	UserA string `json:"user_a"`
	UserB string `json:"user_b"`
}

type CreateConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type GetConversationRequest struct {
	ConversationID string `json:"conversation_id"`
}

type GetConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

type ListMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
}

type ListMessagesResponse struct {
	Messages []Message `json:"messages"`
}

type ListConversationsRequest struct {
	UserID string `json:"user_id"`
}

type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type ChatServiceClient interface {
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	CreateConversation(ctx context.Context, in *CreateConversationRequest, opts ...grpc.CallOption) (*CreateConversationResponse, error)
	GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*GetConversationResponse, error)
	ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error)
	ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error)
}

type chatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) ChatServiceClient {
	return &chatServiceClient{cc}
}

func (c *chatServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	return invoke[SendMessageResponse](ctx, c.cc, ChatService_SendMessage_FullMethodName, in, opts...)
}

func (c *chatServiceClient) CreateConversation(ctx context.Context, in *CreateConversationRequest, opts ...grpc.CallOption) (*CreateConversationResponse, error) {
	return invoke[CreateConversationResponse](ctx, c.cc, ChatService_CreateConversation_FullMethodName, in, opts...)
}

func (c *chatServiceClient) GetConversation(ctx context.Context, in *GetConversationRequest, opts ...grpc.CallOption) (*GetConversationResponse, error) {
	return invoke[GetConversationResponse](ctx, c.cc, ChatService_GetConversation_FullMethodName, in, opts...)
}

func (c *chatServiceClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return invoke[ListMessagesResponse](ctx, c.cc, ChatService_ListMessages_FullMethodName, in, opts...)
}

func (c *chatServiceClient) ListConversations(ctx context.Context, in *ListConversationsRequest, opts ...grpc.CallOption) (*ListConversationsResponse, error) {
	return invoke[ListConversationsResponse](ctx, c.cc, ChatService_ListConversations_FullMethodName, in, opts...)
}

type ChatServiceServer interface {
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	CreateConversation(context.Context, *CreateConversationRequest) (*CreateConversationResponse, error)
	GetConversation(context.Context, *GetConversationRequest) (*GetConversationResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
	ListConversations(context.Context, *ListConversationsRequest) (*ListConversationsResponse, error)
}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "social.chat.v1.ChatService",
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendMessage",
			Handler:    unary(ChatService_SendMessage_FullMethodName, ChatServiceServer.SendMessage),
		},
		{
			MethodName: "CreateConversation",
			Handler:    unary(ChatService_CreateConversation_FullMethodName, ChatServiceServer.CreateConversation),
		},
		{
			MethodName: "GetConversation",
			Handler:    unary(ChatService_GetConversation_FullMethodName, ChatServiceServer.GetConversation),
		},
		{
			MethodName: "ListMessages",
			Handler:    unary(ChatService_ListMessages_FullMethodName, ChatServiceServer.ListMessages),
		},
		{
			MethodName: "ListConversations",
			Handler:    unary(ChatService_ListConversations_FullMethodName, ChatServiceServer.ListConversations),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/chat.go",
}
