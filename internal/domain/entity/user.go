// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. It carries only identity information;
// role-specific data lives in the attached profiles.
type User struct {
	ID              uuid.UUID        // The Global Unique Identifier (GUID) for the user.
	Email           string           // The user's primary contact email, used as the login identifier.
	Name            string           // The user's display name.
	CustomerProfile *CustomerProfile // Non-nil when this account has the customer role.
	StoreProfile    *StoreProfile    // Non-nil when this account administers a store.
	CreatedAt       time.Time        // Timestamp of when this account was created.
	UpdatedAt       time.Time        // Timestamp of the last modification to this account.
}

// Roles derives the set of roles from the attached profiles.
func (u *User) Roles() Roles {
	roles := make(Roles, 0, 2)
	if u.CustomerProfile != nil {
		roles = append(roles, RoleCustomer)
	}
	if u.StoreProfile != nil {
		roles = append(roles, RoleAdmin)
	}

	return roles
}

// CustomerProfile holds data specific to the shopper role.
type CustomerProfile struct {
	UserID    uuid.UUID // Foreign key linking this profile to its User.
	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}

// StoreProfile holds data specific to the store-administrator role. A store
// owns zero or more products; every product is owned by exactly one store.
type StoreProfile struct {
	UserID       uuid.UUID // Foreign key linking this profile to its User.
	StoreName    string    // The store's official display name.
	StoreAddress string    // The physical address of the store.
	UpdatedAt    time.Time // Timestamp of the last modification to this profile.
}
