package repositories

import (
	"social-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Create_And_Fetch_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openDB(t))

	id, err := repository.CreateUser("testuser7", "$argon2id$hash")
	req.NoError(err)
	req.NotEmpty(id)

	byName, err := repository.GetUserByUsername("testuser7")
	req.NoError(err)
	req.Equal(id, byName.ID)
	req.Equal("$argon2id$hash", byName.PasswordHash)
	req.Equal([]string{"user"}, byName.Roles)

	byID, err := repository.GetUserByID(id)
	req.NoError(err)
	req.Equal("testuser7", byID.Username)
}

func Test_Duplicate_Username(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openDB(t))

	_, err := repository.CreateUser("testuser7", "hash")
	req.NoError(err)
	_, err = repository.CreateUser("testuser7", "other")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func Test_Unknown_User(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(openDB(t))

	_, err := repository.GetUserByUsername("ghost")
	req.ErrorIs(err, errors.ErrUserNotFound)
	_, err = repository.GetUserByID("ghost-id")
	req.ErrorIs(err, errors.ErrUserNotFound)
}
