package usecase

import (
	"context"
	"time"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput carries the data needed to create a product.
type CreateProductInput struct {
	Barcode     string
	Name        string
	Description string
	Category    entity.Category
	Price       float64
	Stock       int
	ExpiryDate  time.Time
}

// UpdateProductInput carries the mutable fields of a product. Nil fields are
// left unchanged; the barcode is immutable and absent by design.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *entity.Category
	Price       *float64
	Stock       *int
	ExpiryDate  *time.Time
}

// ProductUsecase defines the interface for product management use cases.
// All mutating operations are restricted to the owning store through the
// access policy.
type ProductUsecase interface {
	// CreateProduct creates a product owned by the acting store.
	CreateProduct(ctx context.Context, storeID uuid.UUID, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct applies partial edits to a product the actor owns.
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)

	// GetProductByBarcode retrieves a product by its barcode.
	GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	// ListStoreProducts lists a store's products, optionally including
	// deactivated ones.
	ListStoreProducts(ctx context.Context, storeID uuid.UUID, includeInactive bool) ([]*entity.Product, error)

	// AdjustStock sets a product's stock to a new non-negative quantity.
	AdjustStock(ctx context.Context, storeID, productID uuid.UUID, stock int) (*entity.Product, error)

	// DeactivateProduct soft-deletes a product the actor owns.
	DeactivateProduct(ctx context.Context, storeID, productID uuid.UUID) error
}
