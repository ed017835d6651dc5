package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable record appended to a conversation log.
// CreatedAt is assigned by the store and never supplied by callers.
type Message struct {
	ID             uuid.UUID
	ConversationID ConversationID
	SenderID       UserID
	RecipientID    UserID
	Content        string
	CreatedAt      time.Time
}
