package repository

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for purchase persistence.
var (
	// ErrPurchaseNotFound is returned when a purchase record is not found.
	ErrPurchaseNotFound = errors.New("purchase record not found")
	// ErrDuplicateReceipt is returned when a receipt number collides.
	ErrDuplicateReceipt = errors.New("receipt number already exists")
)

// PurchaseRepository defines the interface for purchase-related database
// operations. Purchase records are append-only: there is no update or
// delete.
type PurchaseRepository interface {
	// Create persists a new purchase record together with its line items.
	Create(ctx context.Context, record *entity.PurchaseRecord) error

	// FindByID retrieves a purchase record with its line items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error)

	// FindByCustomer retrieves a customer's purchase history, newest first.
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error)

	// FindByStore retrieves all purchases recorded at a store, newest first.
	FindByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error)
}
