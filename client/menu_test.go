package main

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// stubGateway answers like the real gateway for a single user.
func stubGateway(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/register-user/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully", "user_id": "u-alice", "token": "tok"})
	})
	app.Post("/login/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
	})
	app.Post("/send-message/", func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) != "Bearer tok" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "missing token"})
		}
		var body map[string]string
		if err := c.BodyParser(&body); err != nil || body["user_id"] != "u-alice" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "bad body"})
		}
		return c.JSON(fiber.Map{"message": "Message sent successfully", "conversation_id": "c-1", "message_id": "m-1"})
	})
	app.Get("/get-messages/:conversation_id", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"conversation_id": c.Params("conversation_id"),
			"messages": []fiber.Map{
				{"message_id": "m-1", "conversation_id": "c-1", "sender_id": "u-alice", "recipient_id": "u-bob", "content": "hello bob", "created_at": time.Now()},
				{"message_id": "m-2", "conversation_id": "c-1", "sender_id": "u-bob", "recipient_id": "u-alice", "content": "hi alice", "created_at": time.Now()},
			},
		})
	})
	app.Get("/conversations/:user_id", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Params("user_id"), "conversations": []fiber.Map{
			{"conversation_id": "c-1", "participant_a": "u-alice", "participant_b": "u-bob", "created_at": time.Now()},
		}})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func TestMenu_Session(t *testing.T) {
	req := require.New(t)
	baseURL := stubGateway(t)

	steps := []string{
		"5\nu-bob\nhi\n",         // send before login
		"2\nalice\nwrong\n",      // failed login
		"1\nalice\nPass\nPass\n", // register
		"3\n",                    // conversations
		"5\nu-bob\nhello bob\n",  // send
		"9\nx\n",                 // invalid choices
		"6\n",
	}
	input := strings.Join(steps, "")
	var out bytes.Buffer
	m := newMenu(newGatewayClient(baseURL, 5*time.Second), strings.NewReader(input), &out, false)

	req.NoError(m.Run())

	output := out.String()
	req.Contains(output, "please login first")
	req.Contains(output, "login failed: Invalid credentials (401)")
	req.Contains(output, "Registration successful, your user id is u-alice")
	req.Contains(output, "u-bob")
	req.Contains(output, "Message sent successfully")
	req.Contains(output, "hello bob")
	req.Contains(output, "hi alice")
	req.Contains(output, "Invalid choice")
	req.Contains(output, "Exiting...")
}

func TestMenu_ConfirmationMismatch(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	m := newMenu(newGatewayClient("http://127.0.0.1:1", time.Second), strings.NewReader("1\nalice\none\ntwo\n6\n"), &out, false)

	req.NoError(m.Run())
	req.Contains(out.String(), "the two entered values do not match")
	req.Nil(m.gateway.session)
}

func TestMenu_StopsOnClosedInput(t *testing.T) {
	var out bytes.Buffer
	m := newMenu(newGatewayClient("http://127.0.0.1:1", time.Second), strings.NewReader(""), &out, false)
	require.NoError(t, m.Run())
}

func TestGatewayClient_Unreachable(t *testing.T) {
	req := require.New(t)
	g := newGatewayClient("http://127.0.0.1:1", time.Second)

	err := g.Login("alice", "secret")
	req.Error(err)
	req.Contains(err.Error(), "gateway unreachable")
	req.Nil(g.session)
}

func TestAPIError(t *testing.T) {
	req := require.New(t)
	req.Equal("gateway answered 502", apiError{Status: 502}.Error())
	req.Equal("Service not found (404)", apiError{Status: 404, Detail: "Service not found"}.Error())
}
