package services_test

import (
	"context"
	"log/slog"
	"social-lab/domain/chat"
	"social-lab/errors"
	"social-lab/mocks"
	"social-lab/repositories"
	"social-lab/services"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newStore(t *testing.T) (*services.ConversationStore, *badger.DB) {
	db := openDB(t)
	log := slog.New(slog.DiscardHandler)
	return services.NewConversationStore(repositories.NewConversationRepository(db, log), log), db
}

func TestConversationStore_ResolveOrCreate_FirstContactThenReuse(t *testing.T) {
	req := require.New(t)
	store, _ := newStore(t)
	ctx := context.Background()

	first, err := store.ResolveOrCreate(ctx, "u1", "u2")
	req.NoError(err)
	req.NotEmpty(first.ID)

	again, err := store.ResolveOrCreate(ctx, "u2", "u1")
	req.NoError(err)
	req.Equal(first.ID, again.ID)

	found, err := store.FindConversation("u1", "u2")
	req.NoError(err)
	req.Equal(first.ID, found.ID)
}

func TestConversationStore_ResolveOrCreate_Concurrent(t *testing.T) {
	req := require.New(t)
	store, db := newStore(t)
	ctx := context.Background()

	const callers = 32
	ids := make(chan chat.ConversationID, callers)
	errs := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := chat.UserID("alice"), chat.UserID("bob")
			if i%2 == 1 {
				a, b = b, a
			}
			conversation, err := store.ResolveOrCreate(ctx, a, b)
			if err != nil {
				errs <- err
				return
			}
			ids <- conversation.ID
		}(i)
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		req.NoError(err)
	}
	distinct := map[chat.ConversationID]struct{}{}
	for id := range ids {
		distinct[id] = struct{}{}
	}
	req.Len(distinct, 1)

	rows := 0
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte("conv:")})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			rows++
		}
		return nil
	})
	req.NoError(err)
	req.Equal(1, rows)
}

func TestConversationStore_RejectsDegeneratePairs(t *testing.T) {
	req := require.New(t)
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.ResolveOrCreate(ctx, "u1", "u1")
	req.ErrorIs(err, errors.ErrSelfConversation)

	_, err = store.ResolveOrCreate(ctx, "", "u1")
	req.ErrorIs(err, errors.ErrEmptyParticipant)

	_, err = store.CreateConversation("u1", "u1")
	req.ErrorIs(err, errors.ErrInvalidArgument)

	conversations, err := store.ListConversationsForUser("u1")
	req.NoError(err)
	req.Empty(conversations)
}

func TestConversationStore_CreateConversation_Conflict(t *testing.T) {
	req := require.New(t)
	store, _ := newStore(t)

	created, err := store.CreateConversation("u1", "u2")
	req.NoError(err)

	_, err = store.CreateConversation("u2", "u1")
	req.ErrorIs(err, errors.ErrConversationAlreadyExists)

	resolved, err := store.ResolveOrCreate(context.Background(), "u1", "u2")
	req.NoError(err)
	req.Equal(created.ID, resolved.ID)
}

func TestConversationStore_ResolveOrCreate_LostRaceRefetches(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockIConversationRepository(ctrl)
	store := services.NewConversationStore(repo, slog.New(slog.DiscardHandler))

	winner := chat.Conversation{ID: "winner", ParticipantA: "u1", ParticipantB: "u2"}
	gomock.InOrder(
		repo.EXPECT().FindConversation(chat.UserID("u1"), chat.UserID("u2")).
			Return(chat.Conversation{}, errors.ErrConversationNotFound),
		repo.EXPECT().CreateConversation(chat.UserID("u1"), chat.UserID("u2")).
			Return(chat.Conversation{}, errors.ErrConversationAlreadyExists),
		repo.EXPECT().FindConversation(chat.UserID("u1"), chat.UserID("u2")).
			Return(winner, nil),
	)

	conversation, err := store.ResolveOrCreate(context.Background(), "u1", "u2")
	req.NoError(err)
	req.Equal(winner, conversation)
}

func TestConversationStore_ResolveOrCreate_CancelledContext(t *testing.T) {
	req := require.New(t)
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ResolveOrCreate(ctx, "u1", "u2")
	req.ErrorIs(err, context.Canceled)

	_, err = store.FindConversation("u1", "u2")
	req.ErrorIs(err, errors.ErrConversationNotFound)
}
