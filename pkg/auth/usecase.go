package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, name string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
}

// AuthResult pairs the created/authenticated account with its session token.
type AuthResult struct {
	User  PublicUser
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *slog.Logger
}

// NewAuthService returns the default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, log *slog.Logger) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates an account and signs the new user in.
//
// The existence check up front is a fast path only: two concurrent
// registrations for the same email race past it, and the repository's
// unique constraint decides the winner by returning ErrEmailTaken for
// the loser.
func (s *authService) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	// Issue before Create: a signing failure must not leave a user row
	// behind. The discarded token on the Create failure path names an id
	// that never comes to exist.
	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	s.log.Info("user registered", "userId", user.ID.String(), "role", string(user.Role))
	return AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same ErrInvalidCredentials so callers
// cannot probe which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info("user logged in", "userId", user.ID.String())
	return AuthResult{User: user.Public(), Token: token}, nil
}
