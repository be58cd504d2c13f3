package repository

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAuthNotFound is returned when no credential matches the lookup.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines the interface for credential storage.
type AuthRepository interface {
	// CreateAuthentication persists a new credential for a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthentication looks up a credential by provider and provider
	// user ID (the email address for the email provider).
	FindAuthentication(ctx context.Context, provider, providerUserID string) (*entity.Authentication, error)
}
