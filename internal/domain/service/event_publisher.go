package service

import (
	"context"
	"time"
)

// PurchaseEvent is published after a purchase transaction commits. The
// alerts worker consumes it to re-check the store's stock levels.
type PurchaseEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	PurchaseID    string    `json:"purchase_id"`
	ReceiptNumber string    `json:"receipt_number"`
	StoreID       string    `json:"store_id"`
	CustomerID    string    `json:"customer_id"`
	TotalAmount   float64   `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishPurchaseEvent publishes a purchase event for async processing
	PublishPurchaseEvent(ctx context.Context, event *PurchaseEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
