// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Expiry threshold bounds in days. The default applies when an administrator
// has never saved settings.
const (
	MinExpiryThreshold     = 1
	MaxExpiryThreshold     = 90
	DefaultExpiryThreshold = 7
)

// NotificationSettings is the per-administrator alerting configuration. It
// is advisory display configuration, not authoritative state: the dashboard
// and alert views read the threshold from here, but the classifier itself
// always receives it explicitly.
type NotificationSettings struct {
	UserID          uuid.UUID `json:"user_id"`          // The administrator these settings belong to.
	ExpiryThreshold int       `json:"expiry_threshold"` // Days before expiry at which products flag as expiring, 1-90.
	EmailEnabled    bool      `json:"email_enabled"`    // Deliver alerts by email.
	PushEnabled     bool      `json:"push_enabled"`     // Deliver alerts by push notification.
	DailyDigest     bool      `json:"daily_digest"`     // Send a daily summary instead of individual alerts.
	PushToken       string    `json:"-"`                // FCM registration token for push delivery, if any.
	UpdatedAt       time.Time `json:"updated_at"`       // Timestamp of the last modification.
}

// DefaultNotificationSettings returns the settings used for an administrator
// who has never saved any.
func DefaultNotificationSettings(userID uuid.UUID) *NotificationSettings {
	return &NotificationSettings{
		UserID:          userID,
		ExpiryThreshold: DefaultExpiryThreshold,
		EmailEnabled:    true,
		PushEnabled:     false,
		DailyDigest:     false,
	}
}
