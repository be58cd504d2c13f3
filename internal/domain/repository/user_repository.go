package repository

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create persists a new user together with any attached profiles.
	Create(ctx context.Context, user *entity.User) error

	// Update persists changes to a user and its profiles.
	Update(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID, preloading profiles.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by email, preloading profiles.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
