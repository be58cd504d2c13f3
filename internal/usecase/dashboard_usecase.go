package usecase

import (
	"context"

	"shelflife/internal/domain/entity"
	"shelflife/internal/domain/inventory"

	"github.com/google/uuid"
)

// DashboardSummary aggregates every headline figure shown on the store
// dashboard. All numbers are computed on demand from live product and
// purchase data; nothing here is persisted.
type DashboardSummary struct {
	TotalProducts  int                                         `json:"total_products"`
	TotalStock     int                                         `json:"total_stock"`
	StatusCounts   inventory.StatusCounts                      `json:"status_counts"`
	CategoryTotals map[entity.Category]inventory.CategoryTotal `json:"category_totals"`
	StockLevels    inventory.StockLevelBuckets                 `json:"stock_levels"`
	TopProducts    []*entity.Product                           `json:"top_products"`
	LowStock       []*entity.Product                           `json:"low_stock"`
}

// ExpiryReportItem pairs a product with its computed expiry classification.
type ExpiryReportItem struct {
	Product        *entity.Product          `json:"product"`
	Classification inventory.Classification `json:"classification"`
}

// SalesTrendInput selects the time bucketing for a sales trend query.
type SalesTrendInput struct {
	Unit string
}

// DashboardUsecase defines the interface for store analytics use cases.
// Every operation is restricted to the owning store administrator.
type DashboardUsecase interface {
	// Summary computes the dashboard headline figures for a store.
	Summary(ctx context.Context, storeID uuid.UUID) (*DashboardSummary, error)

	// ExpiryReport classifies every active product of a store against the
	// store's configured expiry threshold, expired and expiring first.
	ExpiryReport(ctx context.Context, storeID uuid.UUID) ([]ExpiryReportItem, error)

	// SalesTrend aggregates the store's purchase records into time-bucketed
	// totals using the given unit (daily, weekly or monthly).
	SalesTrend(ctx context.Context, storeID uuid.UUID, input *SalesTrendInput) ([]inventory.TrendPoint, error)
}
