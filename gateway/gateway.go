// Package gateway exposes the platform over HTTP. Every route looks up its
// backend in the registry and forwards the call over gRPC.
package gateway

import (
	"context"
	"log/slog"
	"social-lab/contract"
	"social-lab/domain/chat"
	"social-lab/domain/event"
	"social-lab/errors"
	pb "social-lab/infrastructure/grpc/api"
	"social-lab/infrastructure/grpc/client"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Follower streams the live notifications of a conversation.
type Follower interface {
	Follow(ctx context.Context, conversationID chat.ConversationID, onEvent func(event.MessageSent)) (func(), error)
}

type Gateway struct {
	log         *slog.Logger
	locator     contract.Locator
	pool        *client.ConnPool
	registry    pb.RegistryServiceClient
	follower    Follower
	callTimeout time.Duration
}

// NewGateway wires the routes. follower may be nil, the live feed then
// answers 503.
func NewGateway(log *slog.Logger, locator contract.Locator, pool *client.ConnPool,
	registry pb.RegistryServiceClient, follower Follower, callTimeout time.Duration) *Gateway {
	return &Gateway{
		log:         log,
		locator:     locator,
		pool:        pool,
		registry:    registry,
		follower:    follower,
		callTimeout: callTimeout,
	}
}

func (g *Gateway) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "social-lab gateway",
		DisableStartupMessage: true,
		// Header and param values end up in gRPC metadata, which the
		// transport keeps after the handler returns
		Immutable:    true,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: g.handleError,
	})

	app.Get("/health", g.health)
	app.Post("/health", g.health)
	app.Post("/register", g.registerService)

	app.Post("/register-user/", g.registerUser)
	app.Post("/login/", g.login)
	app.Get("/user/:user_id", g.getUser)

	app.Post("/send-message/", g.sendMessage)
	app.Post("/conversations/", g.createConversation)
	app.Get("/get-messages/:conversation_id", g.getMessages)
	app.Get("/conversations/:user_id", g.listConversations)

	app.Use("/ws", g.upgradeOnly)
	app.Get("/ws/conversations/:conversation_id", g.authorizeFeed, g.liveFeed())
	return app
}

// backend resolves a service to a ready connection. A known but silent
// service is refused with ErrServiceInactive.
func (g *Gateway) backend(ctx context.Context, service string) (*grpc.ClientConn, error) {
	endpoint, err := g.locator.Locate(ctx, service)
	if err != nil {
		return nil, err
	}
	if !endpoint.IsActive {
		return nil, errors.ErrServiceInactive
	}
	return g.pool.Get(endpoint.Address)
}

// callContext bounds the backend call and forwards the caller's credentials.
func (g *Gateway) callContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.UserContext(), g.callTimeout)
	if authorization := c.Get(fiber.HeaderAuthorization); authorization != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", authorization)
	}
	return ctx, cancel
}
