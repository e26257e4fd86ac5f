package ports

import (
	"context"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"
)

// UserRepository defines the persistence contract for user identities.
type UserRepository interface {
	// Add persists a new user. Inserting a duplicate email returns
	// account.ErrEmailAlreadyRegistered.
	Add(ctx context.Context, user *account.User) error

	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.User, error)

	// GetByEmail retrieves a user by its normalized login email.
	GetByEmail(ctx context.Context, email string) (*account.User, error)
}
