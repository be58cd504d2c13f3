package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSettingsModel mirrors the 'notification_settings' table. One
// row per administrator, keyed by the user ID.
type NotificationSettingsModel struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExpiryThreshold int       `gorm:"not null;default:7;check:expiry_threshold >= 1 AND expiry_threshold <= 90"`
	EmailEnabled    bool      `gorm:"not null;default:true"`
	PushEnabled     bool      `gorm:"not null;default:false"`
	DailyDigest     bool      `gorm:"not null;default:false"`
	PushToken       string    `gorm:"type:varchar(512)"`
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationSettingsModel) TableName() string {
	return "notification_settings"
}
