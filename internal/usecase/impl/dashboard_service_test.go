package impl

import (
	"context"
	"testing"
	"time"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/inventory"
	"shelflife/internal/domain/repository"
	mockRepo "shelflife/internal/mocks/repository"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dashboardServiceFixtures holds all test dependencies for dashboard service tests.
type dashboardServiceFixtures struct {
	service          usecase.DashboardUsecase
	productRepo      *mockRepo.MockProductRepository
	purchaseRepo     *mockRepo.MockPurchaseRepository
	userRepo         *mockRepo.MockUserRepository
	notificationRepo *mockRepo.MockNotificationRepository
}

func createTestDashboardService(t *testing.T) dashboardServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	purchaseRepo := mockRepo.NewMockPurchaseRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)

	service := NewDashboardService(DashboardServiceParams{
		ProductRepo:      productRepo,
		PurchaseRepo:     purchaseRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Logger:           newDiscardLogger(),
	})

	return dashboardServiceFixtures{
		service:          service,
		productRepo:      productRepo,
		purchaseRepo:     purchaseRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func TestDashboardService_Summary_Success(t *testing.T) {
	fixtures := createTestDashboardService(t)

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	products := []*entity.Product{
		newTestProduct(storeID, "Fresh Milk", 40, now.AddDate(0, 0, 30)),
		newTestProduct(storeID, "Expiring Yogurt", 12, now.AddDate(0, 0, 3)),
		newTestProduct(storeID, "Expired Cheese", 5, now.AddDate(0, 0, -2)),
		newTestProduct(storeID, "Sold Out Butter", 0, now.AddDate(0, 0, 10)),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)
	fixtures.notificationRepo.EXPECT().
		FindByUser(ctx, storeID).
		Return(nil, repository.ErrSettingsNotFound)

	summary, err := fixtures.service.Summary(ctx, storeID)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalProducts)
	assert.Equal(t, 57, summary.TotalStock)
	assert.Equal(t, inventory.StatusCounts{Fresh: 1, Expiring: 1, Expired: 1, OutOfStock: 1}, summary.StatusCounts)
	assert.Equal(t, inventory.CategoryTotal{Count: 4, TotalStock: 57}, summary.CategoryTotals[entity.CategoryDairy])
	assert.Equal(t, "Fresh Milk", summary.TopProducts[0].Name)
	// Only non-zero stock below the low-stock ceiling qualifies.
	assert.Len(t, summary.LowStock, 2)
	assert.Equal(t, "Expired Cheese", summary.LowStock[0].Name)
}

func TestDashboardService_Summary_CustomerForbidden(t *testing.T) {
	fixtures := createTestDashboardService(t)

	ctx := context.Background()
	actorID := uuid.New()

	fixtures.userRepo.EXPECT().FindByID(ctx, actorID).Return(newTestCustomer(actorID), nil)

	summary, err := fixtures.service.Summary(ctx, actorID)

	assert.Nil(t, summary)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestDashboardService_ExpiryReport_MostUrgentFirst(t *testing.T) {
	fixtures := createTestDashboardService(t)

	ctx := context.Background()
	storeID := uuid.New()
	now := time.Now()

	products := []*entity.Product{
		newTestProduct(storeID, "Fresh Milk", 40, now.AddDate(0, 0, 30)),
		newTestProduct(storeID, "Expired Cheese", 5, now.AddDate(0, 0, -2)),
		newTestProduct(storeID, "Expiring Yogurt", 12, now.AddDate(0, 0, 3)),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)
	fixtures.notificationRepo.EXPECT().
		FindByUser(ctx, storeID).
		Return(&entity.NotificationSettings{UserID: storeID, ExpiryThreshold: 5}, nil)

	report, err := fixtures.service.ExpiryReport(ctx, storeID)

	require.NoError(t, err)
	require.Len(t, report, 3)
	assert.Equal(t, "Expired Cheese", report[0].Product.Name)
	assert.Equal(t, inventory.StatusExpired, report[0].Classification.Status)
	assert.Equal(t, "Expiring Yogurt", report[1].Product.Name)
	assert.Equal(t, inventory.StatusExpiring, report[1].Classification.Status)
	assert.Equal(t, "Fresh Milk", report[2].Product.Name)
	assert.Equal(t, inventory.StatusFresh, report[2].Classification.Status)
}

func TestDashboardService_SalesTrend_WeeklyBuckets(t *testing.T) {
	fixtures := createTestDashboardService(t)

	ctx := context.Background()
	storeID := uuid.New()

	sameWeek := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	records := []*entity.PurchaseRecord{
		{
			StoreID:     storeID,
			TotalAmount: 9.0,
			Items:       []entity.PurchaseItem{{Quantity: 3}},
			PurchasedAt: sameWeek,
		},
		{
			StoreID:     storeID,
			TotalAmount: 4.5,
			Items:       []entity.PurchaseItem{{Quantity: 1}},
			PurchasedAt: sameWeek.AddDate(0, 0, 2),
		},
		{
			StoreID:     storeID,
			TotalAmount: 2.5,
			Items:       []entity.PurchaseItem{{Quantity: 1}},
			PurchasedAt: sameWeek.AddDate(0, 0, 14),
		},
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.purchaseRepo.EXPECT().
		FindByStore(ctx, storeID, trendHistoryLimit, 0).
		Return(records, nil)

	trend, err := fixtures.service.SalesTrend(ctx, storeID, &usecase.SalesTrendInput{Unit: "weekly"})

	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.InDelta(t, 13.5, trend[0].TotalSales, 1e-9)
	assert.Equal(t, 4, trend[0].ItemCount)
	assert.InDelta(t, 2.5, trend[1].TotalSales, 1e-9)
}

func TestDashboardService_SalesTrend_InvalidUnit(t *testing.T) {
	fixtures := createTestDashboardService(t)

	trend, err := fixtures.service.SalesTrend(context.Background(), uuid.New(), &usecase.SalesTrendInput{Unit: "hourly"})

	assert.Nil(t, trend)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidPeriod)
}
