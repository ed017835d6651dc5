//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"social-lab/errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	userPrefix   = "user:"
	userIDPrefix = "userid:"
)

const (
	userFieldID = iota + 1
	userFieldUsername
	userFieldPasswordHash
	userFieldRoles
	userFieldCreatedAt
)

type IUserRepository interface {
	CreateUser(username, hashedPassword string) (string, error)
	GetUserByUsername(username string) (User, error)
	GetUserByID(id string) (User, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

// User is the repository representation of an account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// CreateUser persists an already hashed password under "user:{username}"
// plus an id index "userid:{id}". It returns the newly generated user id.
func (u UserRepository) CreateUser(username, hashedPassword string) (string, error) {
	user := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hashedPassword,
		Roles:        []string{"user"},
		CreatedAt:    time.Now().UTC(),
	}

	err := u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userPrefix + username)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if err := txn.Set(key, encodeUser(user)); err != nil {
			return err
		}
		return txn.Set([]byte(userIDPrefix+user.ID), []byte(username))
	})
	if goerrors.Is(err, badger.ErrConflict) {
		return "", errors.ErrUserAlreadyExists
	}
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (u UserRepository) GetUserByUsername(username string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, username)
		return err
	})
	return user, err
}

func (u UserRepository) GetUserByID(id string) (User, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userIDPrefix + id))
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrUserNotFound
		}
		if err != nil {
			return err
		}
		username, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		user, err = getUser(txn, string(username))
		return err
	})
	return user, err
}

func getUser(txn *badger.Txn, username string) (User, error) {
	item, err := txn.Get([]byte(userPrefix + username))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	var user User
	err = item.Value(func(value []byte) error {
		user, err = decodeUser(value)
		return err
	})
	return user, err
}

func encodeUser(user User) []byte {
	r := &record{}
	return r.string(userFieldID, user.ID).
		string(userFieldUsername, user.Username).
		string(userFieldPasswordHash, user.PasswordHash).
		string(userFieldRoles, strings.Join(user.Roles, ",")).
		varint(userFieldCreatedAt, uint64(user.CreatedAt.Unix())).
		bytes()
}

func decodeUser(b []byte) (User, error) {
	f, err := decodeRecord(b)
	if err != nil {
		return User{}, err
	}
	var roles []string
	if raw := f.strings[userFieldRoles]; raw != "" {
		roles = strings.Split(raw, ",")
	}
	return User{
		ID:           f.strings[userFieldID],
		Username:     f.strings[userFieldUsername],
		PasswordHash: f.strings[userFieldPasswordHash],
		Roles:        roles,
		CreatedAt:    time.Unix(int64(f.varints[userFieldCreatedAt]), 0).UTC(),
	}, nil
}
