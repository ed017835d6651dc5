package main

import (
	"bufio"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

type menu struct {
	gateway *gatewayClient
	in      *bufio.Reader
	out     io.Writer
	colours bool
	// hidden reads passwords from the terminal without echo
	hidden bool
}

func newMenu(gateway *gatewayClient, in io.Reader, out io.Writer, colours bool) *menu {
	return &menu{gateway: gateway, in: bufio.NewReader(in), out: out, colours: colours}
}

// Run loops over the menu until the user exits or the input is closed.
func (m *menu) Run() error {
	for {
		m.display()
		raw, err := m.prompt("Enter your choice")
		if goerrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(raw)
		if err != nil {
			m.fail("Invalid choice. Please enter a valid option.")
			continue
		}
		if done := m.dispatch(choice); done {
			return nil
		}
	}
}

func (m *menu) display() {
	user := "not logged in"
	if m.gateway.session != nil {
		user = m.gateway.session.Username
	}
	fmt.Fprintf(m.out, "\nSelect an option (%s):\n", user)
	fmt.Fprintln(m.out, "1. Register")
	fmt.Fprintln(m.out, "2. Login")
	fmt.Fprintln(m.out, "3. List Conversations")
	fmt.Fprintln(m.out, "4. List Messages")
	fmt.Fprintln(m.out, "5. Send Message")
	fmt.Fprintln(m.out, "6. Exit")
}

func (m *menu) dispatch(choice int) bool {
	var err error
	switch choice {
	case 1:
		err = m.register()
	case 2:
		err = m.login()
	case 3:
		err = m.listConversations()
	case 4:
		var conversationID string
		if conversationID, err = m.prompt("Enter Conversation ID"); err == nil {
			err = m.listMessages(conversationID)
		}
	case 5:
		err = m.sendMessage()
	case 6:
		fmt.Fprintln(m.out, "Exiting...")
		return true
	default:
		m.fail("Invalid choice. Please enter a valid option.")
	}
	if err != nil {
		m.fail(err.Error())
	}
	return false
}

func (m *menu) register() error {
	username, err := m.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := m.secret("Enter password")
	if err != nil {
		return err
	}
	confirmation, err := m.secret("Repeat for confirmation")
	if err != nil {
		return err
	}
	if password != confirmation {
		return goerrors.New("the two entered values do not match")
	}
	if err := m.gateway.Register(username, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	m.success(fmt.Sprintf("Registration successful, your user id is %s", m.gateway.session.UserID))
	return nil
}

func (m *menu) login() error {
	username, err := m.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := m.secret("Enter password")
	if err != nil {
		return err
	}
	if err := m.gateway.Login(username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	m.success("Login successful")
	return nil
}

func (m *menu) listConversations() error {
	conversations, err := m.gateway.Conversations()
	if err != nil {
		return fmt.Errorf("failed to retrieve conversations: %w", err)
	}
	me := m.gateway.session.UserID
	table := m.table("Conversation", "Participant", "Since")
	for _, c := range conversations {
		participant := c.ParticipantA
		if participant == me {
			participant = c.ParticipantB
		}
		table.Append([]string{c.ConversationID, participant, c.CreatedAt.Local().Format(time.DateTime)})
	}
	table.Render()
	return nil
}

func (m *menu) listMessages(conversationID string) error {
	messages, err := m.gateway.Messages(conversationID)
	if err != nil {
		return fmt.Errorf("failed to retrieve messages: %w", err)
	}
	me := m.gateway.session.UserID
	table := m.table("Time", "From", "Content")
	for _, message := range messages {
		from := message.SenderID
		if from == me {
			from = "me"
		}
		table.Append([]string{message.CreatedAt.Local().Format(time.DateTime), from, message.Content})
	}
	table.Render()
	return nil
}

func (m *menu) sendMessage() error {
	participantID, err := m.prompt("Enter Participant ID")
	if err != nil {
		return err
	}
	content, err := m.prompt("Enter Message Content")
	if err != nil {
		return err
	}
	conversationID, err := m.gateway.Send(participantID, content)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	m.success("Message sent successfully")
	return m.listMessages(conversationID)
}

func (m *menu) table(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(m.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func (m *menu) prompt(label string) (string, error) {
	fmt.Fprintf(m.out, "%s: ", label)
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !goerrors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *menu) secret(label string) (string, error) {
	if !m.hidden || m.in.Buffered() > 0 {
		return m.prompt(label)
	}
	fmt.Fprintf(m.out, "%s: ", label)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(m.out)
	return string(password), err
}

func (m *menu) success(text string) {
	if m.colours {
		text = color.FgGreen.Render(text)
	}
	fmt.Fprintln(m.out, text)
}

func (m *menu) fail(text string) {
	if m.colours {
		text = color.FgRed.Render(text)
	}
	fmt.Fprintln(m.out, text)
}
