package repository

import (
	"context"

	"shelflife/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSettingsNotFound is returned when an administrator has never saved
// notification settings.
var ErrSettingsNotFound = errors.New("notification settings not found")

// NotificationRepository defines the interface for per-administrator
// notification settings storage.
type NotificationRepository interface {
	// FindByUser retrieves the settings for an administrator.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error)

	// Upsert creates or replaces the settings for an administrator.
	Upsert(ctx context.Context, settings *entity.NotificationSettings) error
}
