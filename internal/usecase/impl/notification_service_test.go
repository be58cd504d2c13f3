package impl

import (
	"context"
	"testing"
	"time"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	mockRepo "shelflife/internal/mocks/repository"
	mockSvc "shelflife/internal/mocks/service"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// notificationServiceFixtures holds all test dependencies for notification service tests.
type notificationServiceFixtures struct {
	service          usecase.NotificationUsecase
	notificationRepo *mockRepo.MockNotificationRepository
	productRepo      *mockRepo.MockProductRepository
	userRepo         *mockRepo.MockUserRepository
	pushService      *mockSvc.MockNotificationService
}

func createTestNotificationService(t *testing.T) notificationServiceFixtures {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	pushService := mockSvc.NewMockNotificationService(t)

	service := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		ProductRepo:      productRepo,
		UserRepo:         userRepo,
		PushService:      pushService,
		Logger:           newDiscardLogger(),
	})

	return notificationServiceFixtures{
		service:          service,
		notificationRepo: notificationRepo,
		productRepo:      productRepo,
		userRepo:         userRepo,
		pushService:      pushService,
	}
}

func TestNotificationService_GetSettings_DefaultsWhenUnsaved(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()

	fixtures.notificationRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(nil, repository.ErrSettingsNotFound)

	settings, err := fixtures.service.GetSettings(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, settings.UserID)
	assert.Equal(t, entity.DefaultExpiryThreshold, settings.ExpiryThreshold)
	assert.True(t, settings.EmailEnabled)
	assert.False(t, settings.PushEnabled)
}

func TestNotificationService_UpdateSettings_Success(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()

	threshold := 14
	pushEnabled := true
	token := "fcm-token-123"

	fixtures.notificationRepo.EXPECT().
		FindByUser(ctx, userID).
		Return(nil, repository.ErrSettingsNotFound)
	fixtures.notificationRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.NotificationSettings")).
		Return(nil)

	settings, err := fixtures.service.UpdateSettings(ctx, userID, &usecase.UpdateSettingsInput{
		ExpiryThreshold: &threshold,
		PushEnabled:     &pushEnabled,
		PushToken:       &token,
	})

	require.NoError(t, err)
	assert.Equal(t, 14, settings.ExpiryThreshold)
	assert.True(t, settings.PushEnabled)
	assert.Equal(t, "fcm-token-123", settings.PushToken)
	// Untouched fields keep their defaults.
	assert.True(t, settings.EmailEnabled)
}

func TestNotificationService_UpdateSettings_ThresholdBounds(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	userID := uuid.New()

	saved := &entity.NotificationSettings{UserID: userID, ExpiryThreshold: 7}
	fixtures.notificationRepo.EXPECT().FindByUser(ctx, userID).Return(saved, nil)
	fixtures.notificationRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.NotificationSettings")).
		Return(nil).
		Maybe()

	for _, threshold := range []int{0, 91} {
		value := threshold
		settings, err := fixtures.service.UpdateSettings(ctx, userID, &usecase.UpdateSettingsInput{ExpiryThreshold: &value})

		assert.Nil(t, settings)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidThreshold)
	}

	for _, threshold := range []int{entity.MinExpiryThreshold, entity.MaxExpiryThreshold} {
		value := threshold
		settings, err := fixtures.service.UpdateSettings(ctx, userID, &usecase.UpdateSettingsInput{ExpiryThreshold: &value})

		require.NoError(t, err)
		assert.Equal(t, value, settings.ExpiryThreshold)
	}
}

func TestNotificationService_SendExpiryAlerts_PushSent(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	settings := &entity.NotificationSettings{
		UserID:          storeID,
		ExpiryThreshold: 7,
		PushEnabled:     true,
		PushToken:       "fcm-token-123",
	}
	products := []*entity.Product{
		newTestProduct(storeID, "Expired Cheese", 5, now.AddDate(0, 0, -2)),
		newTestProduct(storeID, "Expiring Yogurt", 12, now.AddDate(0, 0, 3)),
		newTestProduct(storeID, "Fresh Milk", 40, now.AddDate(0, 0, 30)),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.notificationRepo.EXPECT().FindByUser(ctx, storeID).Return(settings, nil)
	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)
	fixtures.pushService.EXPECT().
		SendSingleNotification(ctx, "fcm-token-123", "Inventory needs attention", mock.AnythingOfType("string"), map[string]string{
			"type":     "inventory_alert",
			"store_id": storeID.String(),
		}).
		Return(nil)

	report, err := fixtures.service.SendExpiryAlerts(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiredCount)
	assert.Equal(t, 1, report.ExpiringCount)
	assert.Equal(t, 2, report.LowStockCount)
	assert.True(t, report.PushSent)
}

func TestNotificationService_SendExpiryAlerts_NothingToReport(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	settings := &entity.NotificationSettings{
		UserID:          storeID,
		ExpiryThreshold: 7,
		PushEnabled:     true,
		PushToken:       "fcm-token-123",
	}
	products := []*entity.Product{
		newTestProduct(storeID, "Fresh Milk", 40, now.AddDate(0, 0, 30)),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.notificationRepo.EXPECT().FindByUser(ctx, storeID).Return(settings, nil)
	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)

	report, err := fixtures.service.SendExpiryAlerts(ctx, storeID)

	require.NoError(t, err)
	assert.Zero(t, report.ExpiredCount)
	assert.Zero(t, report.ExpiringCount)
	assert.Zero(t, report.LowStockCount)
	assert.False(t, report.PushSent)
}

func TestNotificationService_SendExpiryAlerts_PushDisabled(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	settings := &entity.NotificationSettings{
		UserID:          storeID,
		ExpiryThreshold: 7,
		PushEnabled:     false,
		PushToken:       "fcm-token-123",
	}
	products := []*entity.Product{
		newTestProduct(storeID, "Expired Cheese", 5, now.AddDate(0, 0, -2)),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.notificationRepo.EXPECT().FindByUser(ctx, storeID).Return(settings, nil)
	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)

	report, err := fixtures.service.SendExpiryAlerts(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiredCount)
	assert.False(t, report.PushSent)
}

func TestNotificationService_SendExpiryAlerts_WithoutPushService(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		ProductRepo:      productRepo,
		UserRepo:         userRepo,
		Logger:           newDiscardLogger(),
	})

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	settings := &entity.NotificationSettings{
		UserID:          storeID,
		ExpiryThreshold: 7,
		PushEnabled:     true,
		PushToken:       "fcm-token-123",
	}
	products := []*entity.Product{
		newTestProduct(storeID, "Expired Cheese", 5, now.AddDate(0, 0, -2)),
	}

	userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	notificationRepo.EXPECT().FindByUser(ctx, storeID).Return(settings, nil)
	productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)

	report, err := service.SendExpiryAlerts(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, 1, report.ExpiredCount)
	assert.False(t, report.PushSent)
}

func TestNotificationService_SendExpiryAlerts_CustomerForbidden(t *testing.T) {
	fixtures := createTestNotificationService(t)

	ctx := context.Background()
	actorID := uuid.New()

	fixtures.userRepo.EXPECT().FindByID(ctx, actorID).Return(newTestCustomer(actorID), nil)

	report, err := fixtures.service.SendExpiryAlerts(ctx, actorID)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
