package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRecordModel mirrors the 'purchase_records' table. Records are
// append-only; there are no update or delete paths.
type PurchaseRecordModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ReceiptNumber string    `gorm:"type:varchar(32);unique;not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalAmount   float64   `gorm:"not null;check:total_amount >= 0"`
	PaymentMethod string    `gorm:"type:varchar(20);not null"`
	PurchasedAt   time.Time `gorm:"not null;index"`

	Items []PurchaseItemModel `gorm:"foreignKey:PurchaseID"`
}

// TableName explicitly sets the table name for GORM.
func (PurchaseRecordModel) TableName() string {
	return "purchase_records"
}

// PurchaseItemModel mirrors the 'purchase_items' table. Product name, unit
// price and expiry date are snapshots frozen at purchase time.
type PurchaseItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PurchaseID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null"`
	ProductName string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null;check:quantity >= 1"`
	UnitPrice   float64   `gorm:"not null;check:unit_price >= 0"`
	ExpiryDate  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}
