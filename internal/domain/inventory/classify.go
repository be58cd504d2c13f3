// Package inventory contains the pure computation core of the system:
// expiry-state classification of products and the aggregations that feed the
// dashboard, alerts and trend views. Everything here is deterministic and
// side-effect free; callers supply "now" explicitly, the package never reads
// the system clock.
package inventory

import "time"

// Status is the derived lifecycle state of a product at evaluation time.
type Status string

const (
	// StatusFresh indicates the product is in stock and not close to expiry.
	StatusFresh Status = "fresh"
	// StatusExpiring indicates the product expires within the warning threshold.
	StatusExpiring Status = "expiring"
	// StatusExpired indicates the expiry date has passed, regardless of stock.
	StatusExpired Status = "expired"
	// StatusOutOfStock indicates zero stock on a product that is not yet expiring.
	StatusOutOfStock Status = "out_of_stock"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// DefaultExpiryThreshold is the number of days before expiry at which a
// product is flagged as expiring when the caller has no configured threshold.
const DefaultExpiryThreshold = 7

// Classification is the computed view of a product's expiry state. It is
// never persisted; every read recomputes it from the product and "now".
type Classification struct {
	Status          Status `json:"status"`
	DaysUntilExpiry int    `json:"days_until_expiry"` // negative means already past
}

// Classify derives the expiry status of a product from its stock level and
// expiry date relative to now.
//
// Both timestamps are normalized to UTC midnight before subtraction, so the
// difference is always a whole number of calendar days and the calendar-day
// ceiling is exact: a product expiring at any time tomorrow reports
// DaysUntilExpiry = 1 no matter the time of day of either input. This avoids
// the off-by-one results a naive duration division produces near day
// boundaries.
//
// The rules apply in priority order, first match wins:
//
//	days <= 0             -> expired (expiry dominates stock exhaustion)
//	days <= thresholdDays -> expiring (irrespective of stock)
//	stock == 0            -> out_of_stock
//	otherwise             -> fresh
//
// Classify is total for all valid inputs. Validating thresholdDays against
// the advertised 1-90 range is the caller's responsibility.
func Classify(stock int, expiryDate, now time.Time, thresholdDays int) Classification {
	days := daysBetween(now, expiryDate)

	var status Status
	switch {
	case days <= 0:
		status = StatusExpired
	case days <= thresholdDays:
		status = StatusExpiring
	case stock == 0:
		status = StatusOutOfStock
	default:
		status = StatusFresh
	}

	return Classification{
		Status:          status,
		DaysUntilExpiry: days,
	}
}

// daysBetween returns the number of calendar days from the day containing
// "from" to the day containing "to", both interpreted in UTC.
func daysBetween(from, to time.Time) int {
	fromDay := startOfDayUTC(from)
	toDay := startOfDayUTC(to)

	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

// startOfDayUTC truncates a timestamp to midnight of its UTC calendar day.
func startOfDayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
