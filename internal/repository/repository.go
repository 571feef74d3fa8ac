package repository

import (
	"context"

	"fridgechef/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository is the persistence boundary for local user records.
type UserRepository interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByProviderID(ctx context.Context, provider user.Provider, providerUserID string) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input user.UpdateProfileInput) error
}
