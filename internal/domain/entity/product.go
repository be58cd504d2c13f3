// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is the closed set of product categories carried by a store.
type Category string

const (
	CategoryProduce   Category = "produce"
	CategoryDairy     Category = "dairy"
	CategoryBakery    Category = "bakery"
	CategoryMeat      Category = "meat"
	CategoryFrozen    Category = "frozen"
	CategoryBeverages Category = "beverages"
	CategorySnacks    Category = "snacks"
	CategoryHousehold Category = "household"
)

// Categories lists every valid product category.
func Categories() []Category {
	return []Category{
		CategoryProduce,
		CategoryDairy,
		CategoryBakery,
		CategoryMeat,
		CategoryFrozen,
		CategoryBeverages,
		CategorySnacks,
		CategoryHousehold,
	}
}

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryProduce, CategoryDairy, CategoryBakery, CategoryMeat,
		CategoryFrozen, CategoryBeverages, CategorySnacks, CategoryHousehold:
		return true
	default:
		return false
	}
}

// Product represents one stock-keeping unit owned by exactly one store.
// Stock and Price never go negative, the barcode is unique across all
// products and immutable after creation, and deletion is a soft state:
// IsActive flips to false, the row is never physically removed.
type Product struct {
	ID          uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the product.
	Barcode     string    `json:"barcode"`     // Unique business key, immutable after creation.
	StoreID     uuid.UUID `json:"store_id"`    // The administrator account that owns this product.
	Name        string    `json:"name"`        // The product's display name.
	Description string    `json:"description"` // Free-form description shown to customers.
	Category    Category  `json:"category"`    // One of the closed category enumeration.
	Price       float64   `json:"price"`       // Unit price, >= 0.
	Stock       int       `json:"stock"`       // Current stock quantity, >= 0.
	ExpiryDate  time.Time `json:"expiry_date"` // Concrete calendar date, not derived.
	IsActive    bool      `json:"is_active"`   // Soft-delete flag.
	CreatedAt   time.Time `json:"created_at"`  // Timestamp of when this product was created.
	UpdatedAt   time.Time `json:"updated_at"`  // Timestamp of the last modification.
}
