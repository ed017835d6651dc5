//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"social-lab/domain/chat"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	messagePrefix      = "msg:"
	messageSequenceKey = "seq:msg"
	sequenceBandwidth  = 1000
	// ":" + 19 digit timestamp + ":" + 20 digit sequence
	messageStampSuffix = 41
)

const (
	messageFieldID = iota + 1
	messageFieldConversationID
	messageFieldSenderID
	messageFieldRecipientID
	messageFieldContent
	messageFieldAt
)

// IMessageRepository is append-only: there is no way to
// update or delete a stored message.
type IMessageRepository interface {
	AppendMessage(conversationID chat.ConversationID, senderID, recipientID chat.UserID, content string) (chat.Message, error)
	GetMessages(conversationID chat.ConversationID) ([]chat.Message, error)
}

type MessageRepository struct {
	db       *badger.DB
	log      *slog.Logger
	mu       sync.Mutex
	sequence *badger.Sequence
	last     time.Time
	now      func() time.Time
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) (*MessageRepository, error) {
	sequence, err := db.GetSequence([]byte(messageSequenceKey), sequenceBandwidth)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	last, err := latestStamp(db)
	if err != nil {
		_ = sequence.Release()
		return nil, err
	}
	return &MessageRepository{
		db:       db,
		log:      log,
		sequence: sequence,
		last:     last,
		now:      time.Now,
	}, nil
}

// AppendMessage persists a message in BadgerDB.
// The key is formatted as "msg:{conversation}:{timestamp_padded}:{sequence_padded}":
//  1. the 19-digit zero padded timestamp keeps chronological order under
//     lexicographical iteration;
//  2. the sequence breaks ties between messages stamped in the same nanosecond,
//     in insertion order.
func (m *MessageRepository) AppendMessage(conversationID chat.ConversationID,
	senderID, recipientID chat.UserID, content string) (chat.Message, error) {
	at, seq, err := m.stamp()
	if err != nil {
		return chat.Message{}, err
	}
	message := chat.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        content,
		CreatedAt:      at,
	}
	key := fmt.Sprintf("%s%019d:%020d", messageConversationPrefix(conversationID), at.UnixNano(), seq)
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encodeMessage(message))
	})
	if err != nil {
		return chat.Message{}, err
	}
	return message, nil
}

// GetMessages retrieves the whole log of a conversation with a prefix scan,
// oldest first. The read transaction gives a consistent snapshot: a message
// being appended concurrently is either fully visible or not at all.
func (m *MessageRepository) GetMessages(conversationID chat.ConversationID) ([]chat.Message, error) {
	var messages []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messageConversationPrefix(conversationID))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				message, err := decodeMessage(value)
				if err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.log.Debug("Messages loaded", "conversation_id", conversationID, "count", len(messages))
	return messages, nil
}

// Close returns the unused sequence lease to Badger.
func (m *MessageRepository) Close() error {
	return m.sequence.Release()
}

// stamp hands out a timestamp that never goes backwards together with the
// next sequence number. Both are taken under the same lock so that the
// sequence order and the timestamp order agree.
func (m *MessageRepository) stamp() (time.Time, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seq, err := m.sequence.Next()
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("next message sequence: %w", err)
	}
	at := m.now().UTC()
	if at.Before(m.last) {
		at = m.last
	}
	m.last = at
	return at, seq, nil
}

// latestStamp returns the newest timestamp among stored messages, it is
// the floor of every timestamp handed out after a restart.
func latestStamp(db *badger.DB) (time.Time, error) {
	var latest int64
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(messagePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			if len(key) < len(messagePrefix)+messageStampSuffix {
				continue
			}
			stamp := key[len(key)-messageStampSuffix+1 : len(key)-messageStampSuffix+20]
			nanos, err := strconv.ParseInt(string(stamp), 10, 64)
			if err != nil {
				return fmt.Errorf("malformed message key %q: %w", key, err)
			}
			latest = max(latest, nanos)
		}
		return nil
	})
	if err != nil || latest == 0 {
		return time.Time{}, err
	}
	return time.Unix(0, latest).UTC(), nil
}

func messageConversationPrefix(conversationID chat.ConversationID) string {
	return messagePrefix + chat.KeySegment(string(conversationID))
}

func encodeMessage(message chat.Message) []byte {
	r := &record{}
	return r.string(messageFieldID, message.ID.String()).
		string(messageFieldConversationID, string(message.ConversationID)).
		string(messageFieldSenderID, string(message.SenderID)).
		string(messageFieldRecipientID, string(message.RecipientID)).
		string(messageFieldContent, message.Content).
		varint(messageFieldAt, uint64(message.CreatedAt.UnixNano())).
		bytes()
}

func decodeMessage(b []byte) (chat.Message, error) {
	f, err := decodeRecord(b)
	if err != nil {
		return chat.Message{}, err
	}
	parsedID, err := uuid.Parse(f.strings[messageFieldID])
	if err != nil {
		return chat.Message{}, err
	}
	return chat.Message{
		ID:             parsedID,
		ConversationID: chat.ConversationID(f.strings[messageFieldConversationID]),
		SenderID:       chat.UserID(f.strings[messageFieldSenderID]),
		RecipientID:    chat.UserID(f.strings[messageFieldRecipientID]),
		Content:        f.strings[messageFieldContent],
		CreatedAt:      time.Unix(0, int64(f.varints[messageFieldAt])).UTC(),
	}, nil
}
