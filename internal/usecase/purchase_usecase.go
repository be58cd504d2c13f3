package usecase

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
)

// PurchaseLine is one requested line of a purchase.
type PurchaseLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// RecordPurchaseInput carries the data needed to record a purchase.
type RecordPurchaseInput struct {
	StoreID       uuid.UUID
	Lines         []PurchaseLine
	PaymentMethod entity.PaymentMethod
}

// PurchaseUsecase defines the interface for purchase use cases.
type PurchaseUsecase interface {
	// RecordPurchase atomically validates stock for every line, decrements
	// it, freezes line-item snapshots and persists the record. Any
	// insufficient line rejects the whole purchase. A purchase event is
	// published after the transaction commits.
	RecordPurchase(ctx context.Context, customerID uuid.UUID, input *RecordPurchaseInput) (*entity.PurchaseRecord, error)

	// GetPurchase retrieves one purchase visible to the given actor (the
	// purchasing customer or the recording store).
	GetPurchase(ctx context.Context, actorID uuid.UUID, purchaseID uuid.UUID) (*entity.PurchaseRecord, error)

	// CustomerHistory lists a customer's purchases, newest first.
	CustomerHistory(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error)

	// StoreSales lists purchases recorded at a store, newest first.
	StoreSales(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error)

	// ReceiptQR renders the QR code PNG for a purchase receipt.
	ReceiptQR(ctx context.Context, actorID uuid.UUID, purchaseID uuid.UUID) ([]byte, error)
}
