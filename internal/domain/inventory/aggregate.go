package inventory

import (
	"sort"
	"time"

	"shelflife/internal/domain/entity"
)

// DefaultTopN is the ranking length used when the caller does not ask for a
// specific one.
const DefaultTopN = 5

// lowStockCeiling is the exclusive upper bound for the low-stock list.
// Zero-stock products are excluded; they belong to the out-of-stock bucket.
const lowStockCeiling = 15

// Stock-level bucket boundaries, inclusive on both ends.
const (
	criticalMax = 10
	lowMax      = 30
	mediumMax   = 70
)

// CategoryTotal is the per-category reduction over a product set.
type CategoryTotal struct {
	Count      int `json:"count"`
	TotalStock int `json:"total_stock"`
}

// CategoryTotals groups products by category, counting them and summing
// their stock. Every category present in the input appears exactly once;
// an empty input yields an empty map.
func CategoryTotals(products []*entity.Product) map[entity.Category]CategoryTotal {
	totals := make(map[entity.Category]CategoryTotal, len(products))
	for _, product := range products {
		total := totals[product.Category]
		total.Count++
		total.TotalStock += product.Stock
		totals[product.Category] = total
	}

	return totals
}

// StockLevelBuckets partitions products into fixed stock bands. The bounds
// are inclusive on both ends, so every product falls into exactly one
// bucket.
type StockLevelBuckets struct {
	Critical int `json:"critical"` // 0-10
	Low      int `json:"low"`      // 11-30
	Medium   int `json:"medium"`   // 31-70
	High     int `json:"high"`     // 71+
}

// StockLevels counts products per stock band.
func StockLevels(products []*entity.Product) StockLevelBuckets {
	var buckets StockLevelBuckets
	for _, product := range products {
		switch {
		case product.Stock <= criticalMax:
			buckets.Critical++
		case product.Stock <= lowMax:
			buckets.Low++
		case product.Stock <= mediumMax:
			buckets.Medium++
		default:
			buckets.High++
		}
	}

	return buckets
}

// TopByStock returns the n products with the highest stock, descending.
// The sort is stable: products with equal stock keep their input order, so
// the first occurrence wins ties. n <= 0 falls back to DefaultTopN.
func TopByStock(products []*entity.Product, n int) []*entity.Product {
	if n <= 0 {
		n = DefaultTopN
	}

	ranked := make([]*entity.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Stock > ranked[j].Stock
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// LowStock returns up to n products with 0 < stock < 15, ascending by
// stock. Zero-stock products are excluded here: they are out of stock, not
// low on stock. The sort is stable for equal stock values. n <= 0 falls
// back to DefaultTopN.
func LowStock(products []*entity.Product, n int) []*entity.Product {
	if n <= 0 {
		n = DefaultTopN
	}

	low := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		if product.Stock > 0 && product.Stock < lowStockCeiling {
			low = append(low, product)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})

	if len(low) > n {
		low = low[:n]
	}

	return low
}

// StatusCounts is the freshness bucketing of a product set, built on the
// classifier.
type StatusCounts struct {
	Fresh      int `json:"fresh"`
	Expiring   int `json:"expiring"`
	Expired    int `json:"expired"`
	OutOfStock int `json:"out_of_stock"`
}

// ExpirySummary classifies every product against now and the threshold and
// counts the resulting statuses.
func ExpirySummary(products []*entity.Product, now time.Time, thresholdDays int) StatusCounts {
	var counts StatusCounts
	for _, product := range products {
		switch Classify(product.Stock, product.ExpiryDate, now, thresholdDays).Status {
		case StatusFresh:
			counts.Fresh++
		case StatusExpiring:
			counts.Expiring++
		case StatusExpired:
			counts.Expired++
		case StatusOutOfStock:
			counts.OutOfStock++
		}
	}

	return counts
}

// TrendPoint is one period bucket of the sales trend.
type TrendPoint struct {
	Period     string  `json:"period"`      // Bucket key, e.g. "2023-01-02", "2022-W52", "2023-1".
	TotalSales float64 `json:"total_sales"` // Sum of purchase total amounts in the bucket.
	ItemCount  int     `json:"item_count"`  // Sum of line-item quantities in the bucket.
}

// SalesTrend groups purchase records into calendar buckets of the given
// unit, summing revenue and item counts per bucket. The result is sorted
// ascending by period key lexicographically. An invalid unit is rejected
// before any aggregation; an empty input yields an empty, non-nil slice.
func SalesTrend(records []*entity.PurchaseRecord, unit Period) ([]TrendPoint, error) {
	if !unit.IsValid() {
		return nil, ErrInvalidPeriod
	}

	buckets := make(map[string]*TrendPoint, len(records))
	for _, record := range records {
		key, err := PeriodKey(record.PurchasedAt, unit)
		if err != nil {
			return nil, err
		}

		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Period: key}
			buckets[key] = point
		}
		point.TotalSales += record.TotalAmount
		point.ItemCount += record.ItemCount()
	}

	trend := make([]TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		trend = append(trend, *point)
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Period < trend[j].Period
	})

	return trend, nil
}
