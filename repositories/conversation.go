//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	conversationPrefix     = "conv:"
	pairPrefix             = "pair:"
	userConversationPrefix = "uconv:"
)

// Field numbers of a stored conversation.
const (
	conversationFieldID = iota + 1
	conversationFieldParticipantA
	conversationFieldParticipantB
	conversationFieldCreatedAt
)

type IConversationRepository interface {
	FindConversation(userA, userB chat.UserID) (chat.Conversation, error)
	CreateConversation(userA, userB chat.UserID) (chat.Conversation, error)
	GetConversation(id chat.ConversationID) (chat.Conversation, error)
	ListConversationsForUser(userID chat.UserID) ([]chat.Conversation, error)
}

type ConversationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConversationRepository(db *badger.DB, log *slog.Logger) ConversationRepository {
	return ConversationRepository{db: db, log: log}
}

// FindConversation resolves the conversation of an unordered pair.
// The pair index "pair:{canonical pair}" points to the conversation id.
func (r ConversationRepository) FindConversation(userA, userB chat.UserID) (chat.Conversation, error) {
	var conversation chat.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pairKey(chat.NewPairKey(userA, userB)))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrConversationNotFound
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		conversation, err = getConversation(txn, chat.ConversationID(id))
		return err
	})
	return conversation, err
}

// CreateConversation stores a new conversation with its pair index and the
// per-user listing entries, all in one transaction.
// The pair index is read inside the same transaction: if another writer
// commits the same pair first, Badger aborts this one with ErrConflict,
// which is reported as ErrConversationAlreadyExists.
func (r ConversationRepository) CreateConversation(userA, userB chat.UserID) (chat.Conversation, error) {
	if userA == "" || userB == "" {
		return chat.Conversation{}, errors.ErrEmptyParticipant
	}
	pair := chat.NewPairKey(userA, userB)
	if pair.IsSelf() {
		return chat.Conversation{}, errors.ErrSelfConversation
	}
	conversation := chat.Conversation{
		ID:           chat.ConversationID(uuid.NewString()),
		ParticipantA: userA,
		ParticipantB: userB,
		CreatedAt:    time.Now().UTC(),
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(pairKey(pair))
		if err == nil {
			return errors.ErrConversationAlreadyExists
		}
		if !goerrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err = txn.Set(conversationKey(conversation.ID), encodeConversation(conversation)); err != nil {
			return err
		}
		if err = txn.Set(pairKey(pair), []byte(conversation.ID)); err != nil {
			return err
		}
		if err = txn.Set(userConversationKey(userA, conversation.ID), nil); err != nil {
			return err
		}
		return txn.Set(userConversationKey(userB, conversation.ID), nil)
	})
	if goerrors.Is(err, badger.ErrConflict) {
		r.log.Debug("Lost conversation creation race", "pair", pair.String())
		return chat.Conversation{}, errors.ErrConversationAlreadyExists
	}
	if err != nil {
		return chat.Conversation{}, err
	}
	return conversation, nil
}

func (r ConversationRepository) GetConversation(id chat.ConversationID) (chat.Conversation, error) {
	var conversation chat.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		conversation, err = getConversation(txn, id)
		return err
	})
	return conversation, err
}

// ListConversationsForUser scans "uconv:{user}:" within a single read
// transaction, so the result is a snapshot as of the call.
func (r ConversationRepository) ListConversationsForUser(userID chat.UserID) ([]chat.Conversation, error) {
	var conversations []chat.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(userConversationPrefix + chat.KeySegment(string(userID)))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := chat.ConversationID(it.Item().Key()[len(prefix):])
			conversation, err := getConversation(txn, id)
			if err != nil {
				return fmt.Errorf("conversation %s listed for %s: %w", id, userID, err)
			}
			conversations = append(conversations, conversation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func getConversation(txn *badger.Txn, id chat.ConversationID) (chat.Conversation, error) {
	item, err := txn.Get(conversationKey(id))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return chat.Conversation{}, errors.ErrConversationNotFound
	}
	if err != nil {
		return chat.Conversation{}, err
	}
	var conversation chat.Conversation
	err = item.Value(func(value []byte) error {
		conversation, err = decodeConversation(value)
		return err
	})
	return conversation, err
}

func conversationKey(id chat.ConversationID) []byte {
	return []byte(conversationPrefix + string(id))
}

func pairKey(pair chat.PairKey) []byte {
	return []byte(pairPrefix + pair.String())
}

func userConversationKey(userID chat.UserID, id chat.ConversationID) []byte {
	return []byte(userConversationPrefix + chat.KeySegment(string(userID)) + string(id))
}

func encodeConversation(c chat.Conversation) []byte {
	r := &record{}
	return r.string(conversationFieldID, string(c.ID)).
		string(conversationFieldParticipantA, string(c.ParticipantA)).
		string(conversationFieldParticipantB, string(c.ParticipantB)).
		varint(conversationFieldCreatedAt, uint64(c.CreatedAt.UnixNano())).
		bytes()
}

func decodeConversation(b []byte) (chat.Conversation, error) {
	f, err := decodeRecord(b)
	if err != nil {
		return chat.Conversation{}, err
	}
	return chat.Conversation{
		ID:           chat.ConversationID(f.strings[conversationFieldID]),
		ParticipantA: chat.UserID(f.strings[conversationFieldParticipantA]),
		ParticipantB: chat.UserID(f.strings[conversationFieldParticipantB]),
		CreatedAt:    time.Unix(0, int64(f.varints[conversationFieldCreatedAt])).UTC(),
	}, nil
}
