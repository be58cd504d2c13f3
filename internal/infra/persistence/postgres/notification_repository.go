// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	"shelflife/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// FindByUser retrieves the notification settings for an administrator.
func (repo *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	var settingsM model.NotificationSettingsModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settingsM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettingsNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification settings")
	}

	return toNotificationSettingsDomain(&settingsM), nil
}

// Upsert creates or replaces the settings row for an administrator in a
// single statement.
func (repo *notificationRepository) Upsert(ctx context.Context, settings *entity.NotificationSettings) error {
	settingsM := fromNotificationSettingsDomain(settings)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(settingsM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidThreshold.WrapMessage("expiry threshold out of range")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save notification settings")
	}

	settings.UpdatedAt = settingsM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toNotificationSettingsDomain converts a GORM NotificationSettingsModel to a domain entity.
func toNotificationSettingsDomain(data *model.NotificationSettingsModel) *entity.NotificationSettings {
	if data == nil {
		return nil
	}

	return &entity.NotificationSettings{
		UserID:          data.UserID,
		ExpiryThreshold: data.ExpiryThreshold,
		EmailEnabled:    data.EmailEnabled,
		PushEnabled:     data.PushEnabled,
		DailyDigest:     data.DailyDigest,
		PushToken:       data.PushToken,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromNotificationSettingsDomain converts a domain entity to a GORM NotificationSettingsModel.
func fromNotificationSettingsDomain(data *entity.NotificationSettings) *model.NotificationSettingsModel {
	if data == nil {
		return nil
	}

	return &model.NotificationSettingsModel{
		UserID:          data.UserID,
		ExpiryThreshold: data.ExpiryThreshold,
		EmailEnabled:    data.EmailEnabled,
		PushEnabled:     data.PushEnabled,
		DailyDigest:     data.DailyDigest,
		PushToken:       data.PushToken,
	}
}
