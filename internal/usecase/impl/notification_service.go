package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "shelflife/internal/delivery/context"
	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/inventory"
	"shelflife/internal/domain/repository"
	"shelflife/internal/domain/service"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	pushService      service.NotificationService
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	ProductRepo      repository.ProductRepository
	UserRepo         repository.UserRepository
	PushService      service.NotificationService `optional:"true"`
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService. The push
// service is optional; without it alert sweeps still run but nothing is sent.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		productRepo:      params.ProductRepo,
		userRepo:         params.UserRepo,
		pushService:      params.PushService,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSettings returns the user's notification settings, falling back to
// defaults when none have been saved yet.
func (srv *notificationService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	settings, err := srv.notificationRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entity.DefaultNotificationSettings(userID), nil
		}

		return nil, errors.Wrap(err, "failed to load notification settings")
	}

	return settings, nil
}

// UpdateSettings applies partial edits after validating the threshold range.
func (srv *notificationService) UpdateSettings(ctx context.Context, userID uuid.UUID, input *usecase.UpdateSettingsInput) (*entity.NotificationSettings, error) {
	srv.log(ctx).Info("Updating notification settings", slog.Any("userID", userID))

	settings, err := srv.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.ExpiryThreshold != nil {
		if *input.ExpiryThreshold < entity.MinExpiryThreshold || *input.ExpiryThreshold > entity.MaxExpiryThreshold {
			return nil, domainerrors.ErrInvalidThreshold.WrapMessage(
				fmt.Sprintf("expiry threshold must be between %d and %d days", entity.MinExpiryThreshold, entity.MaxExpiryThreshold))
		}
		settings.ExpiryThreshold = *input.ExpiryThreshold
	}
	if input.EmailEnabled != nil {
		settings.EmailEnabled = *input.EmailEnabled
	}
	if input.PushEnabled != nil {
		settings.PushEnabled = *input.PushEnabled
	}
	if input.DailyDigest != nil {
		settings.DailyDigest = *input.DailyDigest
	}
	if input.PushToken != nil {
		settings.PushToken = *input.PushToken
	}

	if err := srv.notificationRepo.Upsert(ctx, settings); err != nil {
		srv.log(ctx).Error("Failed to save notification settings", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save notification settings")
	}

	return settings, nil
}

// SendExpiryAlerts sweeps a store's active products, classifies them and
// pushes an alert when anything needs attention.
func (srv *notificationService) SendExpiryAlerts(ctx context.Context, storeID uuid.UUID) (*usecase.ExpiryAlertReport, error) {
	srv.log(ctx).Info("Running expiry alert sweep", slog.Any("storeID", storeID))

	store, err := srv.userRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "store not found")
		}

		return nil, errors.Wrap(err, "failed to load store")
	}
	if err := service.Authorize(store.Roles(), storeID, storeID, service.ActionViewStoreData); err != nil {
		return nil, err
	}

	settings, err := srv.GetSettings(ctx, storeID)
	if err != nil {
		return nil, err
	}

	products, err := srv.productRepo.FindByStore(ctx, storeID, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load store products")
	}

	counts := inventory.ExpirySummary(products, time.Now(), settings.ExpiryThreshold)
	lowStock := inventory.LowStock(products, len(products))

	report := &usecase.ExpiryAlertReport{
		StoreID:       storeID,
		ExpiredCount:  counts.Expired,
		ExpiringCount: counts.Expiring,
		LowStockCount: len(lowStock),
	}

	if report.ExpiredCount == 0 && report.ExpiringCount == 0 && report.LowStockCount == 0 {
		srv.log(ctx).Debug("Nothing to alert on", slog.Any("storeID", storeID))

		return report, nil
	}

	if srv.pushService == nil || !settings.PushEnabled || settings.PushToken == "" {
		srv.log(ctx).Debug("Push delivery skipped", slog.Any("storeID", storeID), slog.Bool("pushEnabled", settings.PushEnabled))

		return report, nil
	}

	title := "Inventory needs attention"
	body := fmt.Sprintf("%d expired, %d expiring within %d days, %d low on stock",
		report.ExpiredCount, report.ExpiringCount, settings.ExpiryThreshold, report.LowStockCount)
	data := map[string]string{
		"type":     "inventory_alert",
		"store_id": storeID.String(),
	}

	if err := srv.pushService.SendSingleNotification(ctx, settings.PushToken, title, body, data); err != nil {
		// Alert delivery is best-effort; the sweep result still stands.
		srv.log(ctx).Warn("Failed to send inventory alert", slog.Any("storeID", storeID), slog.Any("error", err))

		return report, nil
	}

	report.PushSent = true
	srv.log(ctx).Debug("Inventory alert sent", slog.Any("storeID", storeID))

	return report, nil
}
