package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"shelflife/config"
	deliverycontext "shelflife/internal/delivery/context"
	"shelflife/internal/domain/constants"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/service"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// StockAlertHandler handles Pub/Sub push messages carrying purchase events.
// Each event triggers an expiry alert sweep over the purchased-from store.
type StockAlertHandler struct {
	verifyPushAuth bool
	cfg            *config.Config
	logger         *slog.Logger
	notificationUc usecase.NotificationUsecase
}

// StockAlertHandlerParams holds dependencies for the StockAlertHandler
type StockAlertHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	NotificationUc usecase.NotificationUsecase
}

// NewStockAlertHandler creates a new Pub/Sub push handler
func NewStockAlertHandler(params StockAlertHandlerParams) *StockAlertHandler {
	// Determine if we need to verify push auth based on config
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &StockAlertHandler{
		verifyPushAuth: verifyPushAuth,
		cfg:            params.Config,
		logger:         params.Logger,
		notificationUc: params.NotificationUc,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *StockAlertHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	// Parse Pub/Sub message
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Decode base64 message data
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Parse purchase event
	var event service.PurchaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse purchase event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)

	// Create request-scoped logger with request_id
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	// Update context with request_id and logger
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing purchase event",
		slog.String("purchase_id", event.PurchaseID),
		slog.String("store_id", event.StoreID),
		slog.Int("item_count", event.ItemCount),
	)

	if err := h.processPurchaseEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process purchase event",
			slog.String("purchase_id", event.PurchaseID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Purchase event processed successfully",
		slog.String("purchase_id", event.PurchaseID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *StockAlertHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.PurchaseEvent) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try event field (from JSON payload)
	if event.RequestID != "" {
		return event.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	// 4. Generate new UUID as fallback
	return uuid.New().String()
}

// processPurchaseEvent runs the alert sweep for the store named in the event.
func (h *StockAlertHandler) processPurchaseEvent(ctx context.Context, event *service.PurchaseEvent) error {
	storeID, err := uuid.Parse(event.StoreID)
	if err != nil {
		// A malformed event will never parse on retry.
		return errors.Wrap(err, "invalid store id in purchase event")
	}

	report, err := h.notificationUc.SendExpiryAlerts(ctx, storeID)
	if err != nil {
		// Business rejections (unknown store, disabled push) are final;
		// everything else is assumed transient and worth a redelivery.
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
			return err
		}

		return newRetryableError(err)
	}

	h.logger.Info("[Worker] Expiry alert sweep completed",
		slog.String("store_id", report.StoreID.String()),
		slog.Int("expired_count", report.ExpiredCount),
		slog.Int("expiring_count", report.ExpiringCount),
		slog.Int("low_stock_count", report.LowStockCount),
		slog.Bool("push_sent", report.PushSent),
	)

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func (h *StockAlertHandler) verifyPubSubToken(req *http.Request) error {
	// Get the Authorization header
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	// Extract Bearer token
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience must match the configured push endpoint URL; fall back
	// to reconstructing it from the request for unconfigured deployments.
	var audience string
	if h.cfg.Alerts != nil && h.cfg.Alerts.Audience != "" {
		audience = h.cfg.Alerts.Audience
	} else {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http" // For local development
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	// Validate the token using Google's ID token validator
	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// Verify the token is from Google Pub/Sub
	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	// Verify email is verified (if email claim exists)
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	// Pin the caller to the configured push service account when one is set
	if h.cfg.Alerts != nil && h.cfg.Alerts.ServiceAccountEmail != "" {
		if email, ok := payload.Claims["email"].(string); !ok || email != h.cfg.Alerts.ServiceAccountEmail {
			return errors.New("unexpected service account email")
		}
	}

	return nil
}
