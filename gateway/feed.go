package gateway

import (
	"context"
	"social-lab/domain/chat"
	"social-lab/domain/event"
	"social-lab/domain/registry"
	pb "social-lab/infrastructure/grpc/api"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc/metadata"
)

const (
	writeWait    = 10 * time.Second
	pingPeriod   = 30 * time.Second
	feedCapacity = 64
)

// upgradeOnly lets only websocket upgrades reach /ws routes.
func (g *Gateway) upgradeOnly(c *fiber.Ctx) error {
	if g.follower == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "live feed disabled")
	}
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// authorizeFeed admits a client only when its token resolves to one of the
// two participants of the conversation. The token comes from the
// Authorization header or from the token query parameter.
func (g *Gateway) authorizeFeed(c *fiber.Ctx) error {
	token := feedToken(c)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), g.callTimeout)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	authConn, err := g.backend(ctx, registry.AuthService)
	if err != nil {
		return err
	}
	identity, err := pb.NewAuthServiceClient(authConn).ResolveIdentity(ctx, &pb.ResolveIdentityRequest{Token: token})
	if err != nil {
		return err
	}

	chatConn, err := g.backend(ctx, registry.MessageService)
	if err != nil {
		return err
	}
	fetched, err := pb.NewChatServiceClient(chatConn).GetConversation(ctx, &pb.GetConversationRequest{
		ConversationID: c.Params("conversation_id"),
	})
	if err != nil {
		return err
	}
	if identity.UserID != fetched.Conversation.ParticipantA && identity.UserID != fetched.Conversation.ParticipantB {
		g.log.Debug("Live feed refused", "conversation_id", fetched.Conversation.ConversationID, "user_id", identity.UserID)
		return fiber.NewError(fiber.StatusForbidden, "caller is not a participant")
	}
	return c.Next()
}

func feedToken(c *fiber.Ctx) string {
	if authorization := c.Get(fiber.HeaderAuthorization); authorization != "" {
		return strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	}
	return c.Query("token")
}

// liveFeed pushes every new message of a conversation to the websocket as
// JSON. The feed is read only, messages are sent through /send-message/.
func (g *Gateway) liveFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		conversationID := chat.ConversationID(conn.Params("conversation_id"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events := make(chan event.MessageSent, feedCapacity)
		stop, err := g.follower.Follow(ctx, conversationID, func(evt event.MessageSent) {
			select {
			case events <- evt:
			case <-ctx.Done():
			default:
				g.log.Debug("Live feed client too slow, event dropped", "conversation_id", conversationID)
			}
		})
		if err != nil {
			g.log.Warn("Cannot follow conversation", "conversation_id", conversationID, "error", err)
			_ = conn.WriteJSON(errorResponse{Detail: "live feed unavailable"})
			_ = conn.Close()
			return
		}
		defer stop()

		// The reader only detects the client going away
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				_ = conn.Close()
				return
			case evt := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(evt); err != nil {
					g.log.Debug("Live feed write failed", "conversation_id", conversationID, "error", err)
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	})
}
