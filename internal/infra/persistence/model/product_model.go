package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. The barcode is immutable after
// creation; stock and price are guarded by CHECK constraints so they can
// never go negative even under concurrent writes.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Barcode     string    `gorm:"type:varchar(64);unique;not null"`
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Price       float64   `gorm:"not null;check:price >= 0"`
	Stock       int       `gorm:"not null;check:stock >= 0"`
	ExpiryDate  time.Time `gorm:"not null;index"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
