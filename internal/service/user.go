package service

import (
	"context"

	"github.com/okarpov/wishlink/internal/models"
)

// UserRepository defines the persistence operations needed by the
// UserService.
type UserRepository interface {
	// Upsert inserts or refreshes the user record keyed by id.
	Upsert(ctx context.Context, user models.User) (*models.User, error)
	// GetByID fetches a user by id.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserService records the identities handed to us by the external
// authentication provider. Users are only ever upserted, never deleted.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService with the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// RecordSignIn upserts the user's profile as presented by the auth provider
// and returns the stored record.
func (s *UserService) RecordSignIn(ctx context.Context, user models.User) (*models.User, error) {
	return s.repo.Upsert(ctx, user)
}
