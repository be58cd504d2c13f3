package service

import "context"

// NotificationService defines the interface for delivering push
// notifications to devices. Implementations may be absent (nil) when push
// delivery is not configured.
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token.
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error

	// SendBatchNotification sends push notifications to multiple device
	// tokens (max 500 per call), returning per-call counters and the
	// tokens rejected as invalid.
	SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
