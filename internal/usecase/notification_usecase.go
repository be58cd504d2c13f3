package usecase

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateSettingsInput carries the editable notification preferences. Nil
// fields are left unchanged.
type UpdateSettingsInput struct {
	ExpiryThreshold *int
	EmailEnabled    *bool
	PushEnabled     *bool
	DailyDigest     *bool
	PushToken       *string
}

// ExpiryAlertReport summarizes one alert sweep over a store's inventory.
type ExpiryAlertReport struct {
	StoreID       uuid.UUID `json:"store_id"`
	ExpiredCount  int       `json:"expired_count"`
	ExpiringCount int       `json:"expiring_count"`
	LowStockCount int       `json:"low_stock_count"`
	PushSent      bool      `json:"push_sent"`
}

// NotificationUsecase defines the interface for notification preference and
// alert delivery use cases.
type NotificationUsecase interface {
	// GetSettings returns the user's notification settings, falling back to
	// defaults when none have been saved yet.
	GetSettings(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)

	// UpdateSettings applies partial edits after validating the expiry
	// threshold range.
	UpdateSettings(ctx context.Context, userID uuid.UUID, input *UpdateSettingsInput) (*entity.NotificationSettings, error)

	// SendExpiryAlerts sweeps a store's active products, classifies them and
	// pushes an alert when anything is expired, expiring or low on stock and
	// the store has push notifications enabled.
	SendExpiryAlerts(ctx context.Context, storeID uuid.UUID) (*ExpiryAlertReport, error)
}
