// Package usecase defines the application's use case interfaces and their
// input/output types. Implementations live in the impl subpackage.
package usecase

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterCustomerInput carries the data needed to register a shopper account.
type RegisterCustomerInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterStoreInput carries the data needed to register a store administrator.
type RegisterStoreInput struct {
	Name         string
	Email        string
	Password     string
	StoreName    string
	StoreAddress string
}

// RegisterOutput is the result of a successful registration.
type RegisterOutput struct {
	User *entity.User
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput carries the issued token pair and the authenticated user.
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account management use cases.
type UserUsecase interface {
	// RegisterCustomer creates a customer account, or attaches a customer
	// profile to an existing account with matching credentials.
	RegisterCustomer(ctx context.Context, input *RegisterCustomerInput) (*RegisterOutput, error)

	// RegisterStore creates a store administrator account, or attaches a
	// store profile to an existing account with matching credentials.
	RegisterStore(ctx context.Context, input *RegisterStoreInput) (*RegisterOutput, error)

	// Login verifies credentials and issues a JWT access/refresh pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetProfile retrieves a user with profiles by ID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
