package chat

type SendMessageCommand struct {
	SenderID    UserID `validate:"required"`
	RecipientID UserID `validate:"required"`
	Content     string
}

type CreateConversationCommand struct {
	UserA UserID `validate:"required"`
	UserB UserID `validate:"required"`
}

type GetConversationCommand struct {
	ConversationID ConversationID `validate:"required"`
}

type ListMessagesCommand struct {
	ConversationID ConversationID `validate:"required"`
}

type ListConversationsCommand struct {
	UserID UserID `validate:"required"`
}
