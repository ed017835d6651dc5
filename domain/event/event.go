package event

import (
	"social-lab/domain/chat"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is anything observable that happened inside a conversation.
type DomainEvent interface {
	ConversationID() chat.ConversationID
}

// MessageSent is emitted once a message has been durably appended.
type MessageSent struct {
	ID           uuid.UUID           `json:"id"`
	Conversation chat.ConversationID `json:"conversation_id"`
	SenderID     chat.UserID         `json:"sender_id"`
	RecipientID  chat.UserID         `json:"recipient_id"`
	Content      string              `json:"content"`
	At           time.Time           `json:"at"`
}

func (m MessageSent) ConversationID() chat.ConversationID {
	return m.Conversation
}

func NewMessageSent(message chat.Message) MessageSent {
	return MessageSent{
		ID:           message.ID,
		Conversation: message.ConversationID,
		SenderID:     message.SenderID,
		RecipientID:  message.RecipientID,
		Content:      message.Content,
		At:           message.CreatedAt,
	}
}
