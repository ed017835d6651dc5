//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"
	"social-lab/auth"
	"social-lab/errors"
	"social-lab/repositories"
)

type IAuthService interface {
	Login(username, password string) (Session, error)
	Register(username, password string) (Session, error)
	GetUser(userID string) (repositories.User, error)
	ResolveIdentity(token string) (string, error)
}

type Token string

func (t Token) String() string {
	return string(t)
}

// Session is what a caller keeps after register or login and presents on
// every following request.
type Session struct {
	UserID string
	Token  Token
}

type AuthService struct {
	userRepository repositories.IUserRepository
	tokenizer      auth.Tokenizer
}

func NewAuthService(repo repositories.IUserRepository, tokenizer auth.Tokenizer) IAuthService {
	return &AuthService{userRepository: repo, tokenizer: tokenizer}
}

func (s *AuthService) Register(username, password string) (Session, error) {
	// 1. Business rules first, before any expensive cryptographic operation
	if err := auth.ValidateCredentials(auth.Credentials{Username: username, Password: password}); err != nil {
		return Session{}, err
	}

	// 2. The repository never sees a plain password
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Propagates ErrUserAlreadyExists if the username is taken
	userID, err := s.userRepository.CreateUser(username, hashedPassword)
	if err != nil {
		return Session{}, err
	}

	return s.issue(userID, []string{"user"})
}

func (s *AuthService) Login(username, password string) (Session, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		// Same error for unknown users and bad passwords, no enumeration
		return Session{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return Session{}, errors.ErrInvalidCredentials
	}

	return s.issue(user.ID, user.Roles)
}

func (s *AuthService) GetUser(userID string) (repositories.User, error) {
	return s.userRepository.GetUserByID(userID)
}

// ResolveIdentity maps a session token back to the stable user id.
func (s *AuthService) ResolveIdentity(token string) (string, error) {
	userID, err := s.tokenizer.ResolveIdentity(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUnauthenticated, err)
	}
	return userID, nil
}

func (s *AuthService) issue(userID string, roles []string) (Session, error) {
	token, err := s.tokenizer.GenerateToken(userID, roles)
	if err != nil {
		return Session{}, errors.ErrTokenGeneration
	}
	return Session{UserID: userID, Token: Token(token)}, nil
}
