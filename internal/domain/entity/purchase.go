package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is the closed set of ways a purchase can be paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// String returns the string representation of the PaymentMethod.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the PaymentMethod is a valid value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	default:
		return false
	}
}

// PurchaseRecord represents one completed transaction. Records are created
// atomically together with the stock decrement of every line item and are
// never mutated or deleted afterwards.
type PurchaseRecord struct {
	ID            uuid.UUID      `json:"id"`             // The Global Unique Identifier (GUID) for the purchase.
	ReceiptNumber string         `json:"receipt_number"` // Unique human-readable receipt reference.
	CustomerID    uuid.UUID      `json:"customer_id"`    // The purchasing customer.
	StoreID       uuid.UUID      `json:"store_id"`       // The store the purchase was made at.
	Items         []PurchaseItem `json:"items"`          // Ordered line items, at least one.
	TotalAmount   float64        `json:"total_amount"`   // Sum over items of quantity * unit price, >= 0.
	PaymentMethod PaymentMethod  `json:"payment_method"` // One of the closed payment enumeration.
	PurchasedAt   time.Time      `json:"purchased_at"`   // Timestamp of when the purchase was recorded.
}

// PurchaseItem is one line of a purchase. Name, unit price and expiry date
// are snapshots frozen at purchase time so historical analytics stay stable
// even if the product is later edited or deactivated.
type PurchaseItem struct {
	ProductID   uuid.UUID `json:"product_id"`   // Reference to the purchased product.
	ProductName string    `json:"product_name"` // Name snapshot at purchase time.
	Quantity    int       `json:"quantity"`     // Units purchased, >= 1.
	UnitPrice   float64   `json:"unit_price"`   // Price snapshot at purchase time.
	ExpiryDate  time.Time `json:"expiry_date"`  // Expiry snapshot at purchase time.
}

// ItemCount returns the total number of units across all line items.
func (r *PurchaseRecord) ItemCount() int {
	count := 0
	for _, item := range r.Items {
		count += item.Quantity
	}

	return count
}
