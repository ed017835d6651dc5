package main

import (
	goerrors "errors"
	"fmt"
	pb "social-lab/infrastructure/grpc/api"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

var errNotLoggedIn = goerrors.New("please login first")

// apiError is a non 2xx answer of the gateway.
type apiError struct {
	Status int
	Detail string
}

func (e apiError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gateway answered %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Detail, e.Status)
}

type session struct {
	Username string
	UserID   string
	Token    string
}

type sessionResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

type sendMessageResponse struct {
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
}

type messagesResponse struct {
	Messages []pb.Message `json:"messages"`
}

type conversationsResponse struct {
	Conversations []pb.Conversation `json:"conversations"`
}

// gatewayClient talks to the HTTP gateway on behalf of one user.
type gatewayClient struct {
	baseURL string
	timeout time.Duration
	session *session
}

func newGatewayClient(baseURL string, timeout time.Duration) *gatewayClient {
	return &gatewayClient{baseURL: baseURL, timeout: timeout}
}

func (g *gatewayClient) Register(username, password string) error {
	var resp sessionResponse
	if err := g.do(g.post("/register-user/", fiber.Map{"username": username, "password": password}), &resp); err != nil {
		return err
	}
	g.session = &session{Username: username, UserID: resp.UserID, Token: resp.Token}
	return nil
}

func (g *gatewayClient) Login(username, password string) error {
	var resp sessionResponse
	if err := g.do(g.post("/login/", fiber.Map{"username": username, "password": password}), &resp); err != nil {
		return err
	}
	g.session = &session{Username: username, UserID: resp.UserID, Token: resp.Token}
	return nil
}

func (g *gatewayClient) Conversations() ([]pb.Conversation, error) {
	if g.session == nil {
		return nil, errNotLoggedIn
	}
	var resp conversationsResponse
	err := g.do(fiber.Get(g.baseURL+"/conversations/"+g.session.UserID), &resp)
	return resp.Conversations, err
}

func (g *gatewayClient) Messages(conversationID string) ([]pb.Message, error) {
	if g.session == nil {
		return nil, errNotLoggedIn
	}
	var resp messagesResponse
	err := g.do(fiber.Get(g.baseURL+"/get-messages/"+conversationID), &resp)
	return resp.Messages, err
}

// Send returns the conversation the message landed in.
func (g *gatewayClient) Send(participantID, content string) (string, error) {
	if g.session == nil {
		return "", errNotLoggedIn
	}
	var resp sendMessageResponse
	err := g.do(g.post("/send-message/", fiber.Map{
		"user_id":        g.session.UserID,
		"participant_id": participantID,
		"content":        content,
	}), &resp)
	return resp.ConversationID, err
}

func (g *gatewayClient) post(path string, body any) *fiber.Agent {
	return fiber.Post(g.baseURL + path).JSONEncoder(sonic.Marshal).JSON(body)
}

// do sends the request and decodes a 2xx body into out.
func (g *gatewayClient) do(a *fiber.Agent, out any) error {
	a.Timeout(g.timeout)
	if g.session != nil {
		a.Set(fiber.HeaderAuthorization, "Bearer "+g.session.Token)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("gateway unreachable: %w", goerrors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		var e struct {
			Detail string `json:"detail"`
		}
		_ = sonic.Unmarshal(body, &e)
		return apiError{Status: code, Detail: e.Detail}
	}
	return sonic.Unmarshal(body, out)
}
