package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshop/shop/pkg/auth"
)

// UseCase exposes identity lookups for authenticated requests. Results
// are always the public projection; the stored hash stays behind the
// repository boundary.
type UseCase interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.PublicUser, error)
}

type service struct {
	repo auth.UserRepository
}

func NewService(repo auth.UserRepository) UseCase {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (auth.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return auth.PublicUser{}, err
	}
	return user.Public(), nil
}
