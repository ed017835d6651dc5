//go:generate go run go.uber.org/mock/mockgen -source=conversation_store.go -destination=../mocks/mock_conversation_store.go -package=mocks
package services

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/errors"
	"social-lab/repositories"

	"golang.org/x/sync/singleflight"
)

type IConversationStore interface {
	FindConversation(userA, userB chat.UserID) (chat.Conversation, error)
	CreateConversation(userA, userB chat.UserID) (chat.Conversation, error)
	ResolveOrCreate(ctx context.Context, userA, userB chat.UserID) (chat.Conversation, error)
	GetConversation(id chat.ConversationID) (chat.Conversation, error)
	ListConversationsForUser(userID chat.UserID) ([]chat.Conversation, error)
}

// ConversationStore owns the pair -> conversation mapping.
// Two guards protect the "one conversation per pair" invariant:
//   - in-process, concurrent ResolveOrCreate calls for the same canonical
//     pair are collapsed into a single lookup-or-create execution;
//   - in storage, the pair index is written transactionally and a losing
//     writer gets ErrConversationAlreadyExists, answered by a re-fetch.
type ConversationStore struct {
	repository repositories.IConversationRepository
	log        *slog.Logger
	inflight   singleflight.Group
}

func NewConversationStore(repository repositories.IConversationRepository, log *slog.Logger) *ConversationStore {
	return &ConversationStore{repository: repository, log: log}
}

func (s *ConversationStore) FindConversation(userA, userB chat.UserID) (chat.Conversation, error) {
	return s.repository.FindConversation(userA, userB)
}

// CreateConversation fails with ErrConversationAlreadyExists when the pair
// already has a conversation: callers should use ResolveOrCreate instead.
func (s *ConversationStore) CreateConversation(userA, userB chat.UserID) (chat.Conversation, error) {
	if err := checkPair(userA, userB); err != nil {
		return chat.Conversation{}, err
	}
	return s.repository.CreateConversation(userA, userB)
}

// ResolveOrCreate returns the conversation of the pair, creating it on first
// contact. Of N concurrent callers for the same pair, all get the same id.
func (s *ConversationStore) ResolveOrCreate(ctx context.Context, userA, userB chat.UserID) (chat.Conversation, error) {
	if err := checkPair(userA, userB); err != nil {
		return chat.Conversation{}, err
	}
	if err := ctx.Err(); err != nil {
		return chat.Conversation{}, err
	}
	pair := chat.NewPairKey(userA, userB)

	result, err, shared := s.inflight.Do(pair.String(), func() (any, error) {
		return s.resolveOrCreate(userA, userB)
	})
	if err != nil {
		return chat.Conversation{}, err
	}
	if shared {
		s.log.Debug("Conversation resolution shared between callers", "pair", pair.String())
	}
	return result.(chat.Conversation), nil
}

func (s *ConversationStore) resolveOrCreate(userA, userB chat.UserID) (chat.Conversation, error) {
	conversation, err := s.repository.FindConversation(userA, userB)
	if err == nil {
		return conversation, nil
	}
	if !goerrors.Is(err, errors.ErrConversationNotFound) {
		return chat.Conversation{}, fmt.Errorf("find conversation: %w", err)
	}

	conversation, err = s.repository.CreateConversation(userA, userB)
	switch {
	case err == nil:
		s.log.Info("Conversation created",
			"conversation_id", conversation.ID,
			"participant_a", userA,
			"participant_b", userB)
		return conversation, nil
	case goerrors.Is(err, errors.ErrConversationAlreadyExists):
		// Another writer won the race, its conversation is the one to use.
		return s.repository.FindConversation(userA, userB)
	default:
		return chat.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
}

func (s *ConversationStore) GetConversation(id chat.ConversationID) (chat.Conversation, error) {
	return s.repository.GetConversation(id)
}

func (s *ConversationStore) ListConversationsForUser(userID chat.UserID) ([]chat.Conversation, error) {
	return s.repository.ListConversationsForUser(userID)
}

func checkPair(userA, userB chat.UserID) error {
	if userA == "" || userB == "" {
		return errors.ErrEmptyParticipant
	}
	if userA == userB {
		return errors.ErrSelfConversation
	}
	return nil
}
