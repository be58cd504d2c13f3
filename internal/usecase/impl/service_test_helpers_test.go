package impl

import (
	"io"
	"log/slog"
	"time"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAdmin(id uuid.UUID) *entity.User {
	return &entity.User{
		ID:    id,
		Email: "store@example.com",
		Name:  "Test Store",
		StoreProfile: &entity.StoreProfile{
			UserID:    id,
			StoreName: "Corner Market",
		},
	}
}

func newTestCustomer(id uuid.UUID) *entity.User {
	return &entity.User{
		ID:              id,
		Email:           "customer@example.com",
		Name:            "Test Customer",
		CustomerProfile: &entity.CustomerProfile{UserID: id},
	}
}

func newTestProduct(storeID uuid.UUID, name string, stock int, expiry time.Time) *entity.Product {
	return &entity.Product{
		ID:         uuid.New(),
		Barcode:    uuid.NewString(),
		StoreID:    storeID,
		Name:       name,
		Category:   entity.CategoryDairy,
		Price:      2.5,
		Stock:      stock,
		ExpiryDate: expiry,
		IsActive:   true,
	}
}
