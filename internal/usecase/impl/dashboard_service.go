package impl

import (
	"context"
	"log/slog"
	"sort"
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

// trendHistoryLimit caps how many purchase records one trend query scans.
const trendHistoryLimit = 1000

// dashboardService implements the DashboardUsecase interface. Every figure is
// computed on demand from live products and purchases; none are stored.
type dashboardService struct {
	productRepo      repository.ProductRepository
	purchaseRepo     repository.PurchaseRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// DashboardServiceParams holds dependencies for DashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	ProductRepo      repository.ProductRepository
	PurchaseRepo     repository.PurchaseRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		productRepo:      params.ProductRepo,
		purchaseRepo:     params.PurchaseRepo,
		userRepo:         params.UserRepo,
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *dashboardService) authorize(ctx context.Context, storeID uuid.UUID) error {
	actor, err := srv.userRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "store not found")
		}

		return errors.Wrap(err, "failed to load store")
	}

	return service.Authorize(actor.Roles(), storeID, storeID, service.ActionViewStoreData)
}

func (srv *dashboardService) activeProducts(ctx context.Context, storeID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindByStore(ctx, storeID, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load store products")
	}

	return products, nil
}

// Summary computes the dashboard headline figures for a store.
func (srv *dashboardService) Summary(ctx context.Context, storeID uuid.UUID) (*usecase.DashboardSummary, error) {
	srv.log(ctx).Debug("Computing dashboard summary", slog.Any("storeID", storeID))

	if err := srv.authorize(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := srv.activeProducts(ctx, storeID)
	if err != nil {
		return nil, err
	}

	threshold, err := srv.expiryThreshold(ctx, storeID)
	if err != nil {
		return nil, err
	}

	totalStock := 0
	for _, product := range products {
		totalStock += product.Stock
	}

	return &usecase.DashboardSummary{
		TotalProducts:  len(products),
		TotalStock:     totalStock,
		StatusCounts:   inventory.ExpirySummary(products, time.Now(), threshold),
		CategoryTotals: inventory.CategoryTotals(products),
		StockLevels:    inventory.StockLevels(products),
		TopProducts:    inventory.TopByStock(products, inventory.DefaultTopN),
		LowStock:       inventory.LowStock(products, inventory.DefaultTopN),
	}, nil
}

// ExpiryReport classifies every active product of a store against the store's
// configured expiry threshold, expired and expiring first.
func (srv *dashboardService) ExpiryReport(ctx context.Context, storeID uuid.UUID) ([]usecase.ExpiryReportItem, error) {
	srv.log(ctx).Debug("Computing expiry report", slog.Any("storeID", storeID))

	if err := srv.authorize(ctx, storeID); err != nil {
		return nil, err
	}

	products, err := srv.activeProducts(ctx, storeID)
	if err != nil {
		return nil, err
	}

	threshold, err := srv.expiryThreshold(ctx, storeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := make([]usecase.ExpiryReportItem, 0, len(products))
	for _, product := range products {
		report = append(report, usecase.ExpiryReportItem{
			Product:        product,
			Classification: inventory.Classify(product.Stock, product.ExpiryDate, now, threshold),
		})
	}

	// Most urgent first: fewest days until expiry, expired items leading.
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Classification.DaysUntilExpiry < report[j].Classification.DaysUntilExpiry
	})

	return report, nil
}

// SalesTrend aggregates the store's purchase records into time-bucketed totals.
func (srv *dashboardService) SalesTrend(ctx context.Context, storeID uuid.UUID, input *usecase.SalesTrendInput) ([]inventory.TrendPoint, error) {
	srv.log(ctx).Debug("Computing sales trend", slog.Any("storeID", storeID), slog.String("unit", input.Unit))

	period, err := inventory.ParsePeriod(input.Unit)
	if err != nil {
		return nil, domainerrors.ErrInvalidPeriod.WrapMessage("unit must be daily, weekly or monthly")
	}

	if err := srv.authorize(ctx, storeID); err != nil {
		return nil, err
	}

	records, err := srv.purchaseRepo.FindByStore(ctx, storeID, trendHistoryLimit, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load store purchases")
	}

	trend, err := inventory.SalesTrend(records, period)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate sales trend")
	}

	return trend, nil
}

// expiryThreshold resolves the store's configured expiry window, falling back
// to the default when no settings are saved.
func (srv *dashboardService) expiryThreshold(ctx context.Context, storeID uuid.UUID) (int, error) {
	settings, err := srv.notificationRepo.FindByUser(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entity.DefaultExpiryThreshold, nil
		}

		return 0, errors.Wrap(err, "failed to load notification settings")
	}

	return settings.ExpiryThreshold, nil
}
