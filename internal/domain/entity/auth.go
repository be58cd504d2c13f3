// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the only credential provider this service supports.
const ProviderTypeEmail = "email"

// Authentication represents a single method of logging in (a credential).
type Authentication struct {
	ID             uuid.UUID // The unique ID for this specific authentication record.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider; currently always "email".
	ProviderUserID string    // The identifier within the provider, i.e. the email address.
	PasswordHash   string    // The bcrypt-hashed password.
	CreatedAt      time.Time // Timestamp of when this credential was created.
}
