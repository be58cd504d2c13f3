package handler

import (
	"log/slog"
	"net/http"

	"shelflife/internal/delivery/http/response"
	"shelflife/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for notification preference handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// updateSettingsRequest uses pointers so absent fields are left unchanged.
type updateSettingsRequest struct {
	ExpiryThreshold *int    `json:"expiry_threshold"`
	EmailEnabled    *bool   `json:"email_enabled"`
	PushEnabled     *bool   `json:"push_enabled"`
	DailyDigest     *bool   `json:"daily_digest"`
	PushToken       *string `json:"push_token"`
}

// GetSettings handles retrieving the actor's notification settings.
func (h *NotificationHandler) GetSettings(c echo.Context) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	settings, err := h.uc.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Notification settings retrieved successfully")
}

// UpdateSettings handles partial edits to the actor's notification settings.
func (h *NotificationHandler) UpdateSettings(c echo.Context) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	settings, err := h.uc.UpdateSettings(c.Request().Context(), userID, &usecase.UpdateSettingsInput{
		ExpiryThreshold: req.ExpiryThreshold,
		EmailEnabled:    req.EmailEnabled,
		PushEnabled:     req.PushEnabled,
		DailyDigest:     req.DailyDigest,
		PushToken:       req.PushToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Notification settings updated successfully")
}

// TriggerAlerts handles a manual expiry alert sweep for the acting store.
// The same sweep normally runs from the alerts worker after each purchase.
func (h *NotificationHandler) TriggerAlerts(c echo.Context) error {
	storeID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	report, err := h.uc.SendExpiryAlerts(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, report, "Expiry alert sweep completed")
}
