package repositories

import (
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/errors"
	"strings"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func Test_Create_Then_Find_Both_Orders(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(openDB(t), slog.Default())

	// Given no conversation exists between Alice and Bob
	_, err := repository.FindConversation("alice", "bob")
	req.ErrorIs(err, errors.ErrConversationNotFound)
	_, err = repository.FindConversation("bob", "alice")
	req.ErrorIs(err, errors.ErrConversationNotFound)

	// When Alice creates it
	created, err := repository.CreateConversation("alice", "bob")
	req.NoError(err)
	req.NotEmpty(created.ID)

	// Then both orders resolve to the same conversation
	ab, err := repository.FindConversation("alice", "bob")
	req.NoError(err)
	ba, err := repository.FindConversation("bob", "alice")
	req.NoError(err)
	req.Equal(created.ID, ab.ID)
	req.Equal(created.ID, ba.ID)
	req.Equal(chat.UserID("alice"), ab.ParticipantA)
	req.Equal(chat.UserID("bob"), ab.ParticipantB)
	req.Equal(created.CreatedAt.UnixNano(), ab.CreatedAt.UnixNano())
}

func Test_Create_Twice_Is_A_Conflict(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(openDB(t), slog.Default())

	_, err := repository.CreateConversation("alice", "bob")
	req.NoError(err)

	// The reversed pair is the same conversation
	_, err = repository.CreateConversation("bob", "alice")
	req.ErrorIs(err, errors.ErrConversationAlreadyExists)
	req.ErrorIs(err, errors.ErrConflict)
}

func Test_Create_Rejects_Degenerate_Pairs(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(openDB(t), slog.Default())

	_, err := repository.CreateConversation("alice", "alice")
	req.ErrorIs(err, errors.ErrSelfConversation)
	req.ErrorIs(err, errors.ErrInvalidArgument)

	_, err = repository.CreateConversation("", "bob")
	req.ErrorIs(err, errors.ErrEmptyParticipant)

	conversations, err := repository.ListConversationsForUser("alice")
	req.NoError(err)
	req.Empty(conversations)
}

func Test_Concurrent_Create_Only_One_Wins(t *testing.T) {
	req := require.New(t)
	db := openDB(t)
	repository := NewConversationRepository(db, slog.Default())

	const writers = 32
	var wg sync.WaitGroup
	results := make([]error, writers)
	ids := make([]chat.ConversationID, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := chat.UserID("u1"), chat.UserID("u2")
			if i%2 == 0 {
				a, b = b, a
			}
			c, err := repository.CreateConversation(a, b)
			results[i] = err
			ids[i] = c.ID
		}(i)
	}
	wg.Wait()

	// Exactly one writer succeeded, every other one got a conflict
	winners := lo.Filter(results, func(err error, _ int) bool { return err == nil })
	req.Len(winners, 1)
	for _, err := range results {
		if err != nil {
			req.ErrorIs(err, errors.ErrConversationAlreadyExists)
		}
	}

	// And a single conversation row is persisted
	req.Equal(1, countKeys(t, db, conversationPrefix))
	req.Equal(1, countKeys(t, db, pairPrefix))
}

func Test_List_Conversations_For_User(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(openDB(t), slog.Default())

	withBob, err := repository.CreateConversation("alice", "bob")
	req.NoError(err)
	withClara, err := repository.CreateConversation("clara", "alice")
	req.NoError(err)
	_, err = repository.CreateConversation("bob", "clara")
	req.NoError(err)

	conversations, err := repository.ListConversationsForUser("alice")
	req.NoError(err)
	req.ElementsMatch(
		[]chat.ConversationID{withBob.ID, withClara.ID},
		lo.Map(conversations, func(c chat.Conversation, _ int) chat.ConversationID { return c.ID }),
	)

	// A user id that is a prefix of another one does not leak its listing
	_, err = repository.CreateConversation("ali", "zoe")
	req.NoError(err)
	conversations, err = repository.ListConversationsForUser("ali")
	req.NoError(err)
	req.Len(conversations, 1)

	conversations, err = repository.ListConversationsForUser("nobody")
	req.NoError(err)
	req.Empty(conversations)
}

func Test_Get_Conversation(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(openDB(t), slog.Default())

	created, err := repository.CreateConversation("alice", "bob")
	req.NoError(err)

	fetched, err := repository.GetConversation(created.ID)
	req.NoError(err)
	req.Equal(created.ID, fetched.ID)

	_, err = repository.GetConversation("unknown")
	req.ErrorIs(err, errors.ErrConversationNotFound)
}

func countKeys(t *testing.T, db *badger.DB, prefix string) int {
	t.Helper()
	count := 0
	err := db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if strings.HasPrefix(string(it.Item().Key()), prefix) {
				count++
			}
		}
		return nil
	})
	require.NoError(t, err)
	return count
}
