package gateway

import (
	"social-lab/domain/registry"
	pb "social-lab/infrastructure/grpc/api"

	"github.com/gofiber/fiber/v2"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sendMessageBody struct {
	UserID        string `json:"user_id"`
	ParticipantID string `json:"participant_id"`
	Content       string `json:"content"`
}

type createConversationBody struct {
	UserID        string `json:"user_id"`
	ParticipantID string `json:"participant_id"`
}

type registerServiceBody struct {
	ServiceName string `json:"service_name"`
	Address     string `json:"address"`
}

type sessionResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

type sendMessageResponse struct {
	Message        string `json:"message"`
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
}

type messagesResponse struct {
	ConversationID string       `json:"conversation_id"`
	Messages       []pb.Message `json:"messages"`
}

type conversationsResponse struct {
	UserID        string            `json:"user_id"`
	Conversations []pb.Conversation `json:"conversations"`
}

func (g *Gateway) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (g *Gateway) registerService(c *fiber.Ctx) error {
	var body registerServiceBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := g.callContext(c)
	defer cancel()

	if _, err := g.registry.Register(ctx, &pb.RegisterServiceRequest{Name: body.ServiceName, Address: body.Address}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Service registered successfully"})
}

func (g *Gateway) registerUser(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.AuthService)
	if err != nil {
		return err
	}
	session, err := pb.NewAuthServiceClient(conn).Register(ctx, &pb.CredentialsRequest{Username: body.Username, Password: body.Password})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse{
		Message: "User registered successfully",
		UserID:  session.UserID,
		Token:   session.Token,
	})
}

func (g *Gateway) login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.AuthService)
	if err != nil {
		return err
	}
	session, err := pb.NewAuthServiceClient(conn).Login(ctx, &pb.CredentialsRequest{Username: body.Username, Password: body.Password})
	if err != nil {
		return err
	}
	return c.JSON(sessionResponse{Message: "Login successful", UserID: session.UserID, Token: session.Token})
}

func (g *Gateway) getUser(c *fiber.Ctx) error {
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.AuthService)
	if err != nil {
		return err
	}
	user, err := pb.NewAuthServiceClient(conn).GetUser(ctx, &pb.GetUserRequest{UserID: c.Params("user_id")})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (g *Gateway) sendMessage(c *fiber.Ctx) error {
	var body sendMessageBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.MessageService)
	if err != nil {
		return err
	}
	sent, err := pb.NewChatServiceClient(conn).SendMessage(ctx, &pb.SendMessageRequest{
		SenderID:    body.UserID,
		RecipientID: body.ParticipantID,
		Content:     body.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(sendMessageResponse{
		Message:        "Message sent successfully",
		MessageID:      sent.Message.MessageID,
		ConversationID: sent.Message.ConversationID,
	})
}

func (g *Gateway) createConversation(c *fiber.Ctx) error {
	var body createConversationBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.MessageService)
	if err != nil {
		return err
	}
	created, err := pb.NewChatServiceClient(conn).CreateConversation(ctx, &pb.CreateConversationRequest{
		UserA: body.UserID,
		UserB: body.ParticipantID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created.Conversation)
}

func (g *Gateway) getMessages(c *fiber.Ctx) error {
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.MessageService)
	if err != nil {
		return err
	}
	conversationID := c.Params("conversation_id")
	listed, err := pb.NewChatServiceClient(conn).ListMessages(ctx, &pb.ListMessagesRequest{ConversationID: conversationID})
	if err != nil {
		return err
	}
	return c.JSON(messagesResponse{ConversationID: conversationID, Messages: nonNil(listed.Messages)})
}

func (g *Gateway) listConversations(c *fiber.Ctx) error {
	ctx, cancel := g.callContext(c)
	defer cancel()

	conn, err := g.backend(ctx, registry.MessageService)
	if err != nil {
		return err
	}
	userID := c.Params("user_id")
	listed, err := pb.NewChatServiceClient(conn).ListConversations(ctx, &pb.ListConversationsRequest{UserID: userID})
	if err != nil {
		return err
	}
	return c.JSON(conversationsResponse{UserID: userID, Conversations: nonNil(listed.Conversations)})
}

// nonNil keeps empty lists as [] rather than null in responses.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
