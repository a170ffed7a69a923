package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repositories and use cases.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
//
// Create must reject a duplicate email with ErrEmailTaken even when callers
// raced past the service-level existence check: the store's uniqueness
// constraint is the authoritative backstop.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}
