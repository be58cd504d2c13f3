// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateBarcode is returned when creating a product whose barcode is taken.
	ErrDuplicateBarcode = errors.New("barcode already exists")
	// ErrInsufficientStock is returned when a guarded stock decrement finds
	// less stock than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update persists changes to an existing product. The barcode is
	// immutable and never written by this method.
	Update(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its unique ID, regardless of active state.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByBarcode retrieves a product by its unique barcode.
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	// FindByStore retrieves all products owned by a store. When activeOnly
	// is true, soft-deleted products are excluded.
	FindByStore(ctx context.Context, storeID uuid.UUID, activeOnly bool) ([]*entity.Product, error)

	// DecrementStock atomically subtracts quantity from a product's stock,
	// failing with ErrInsufficientStock if the remaining stock is too low.
	// The guard lives in the UPDATE statement itself so concurrent
	// purchases can never drive stock negative.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// Deactivate flips the product's active flag to false (soft delete).
	// Products are never physically removed.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
