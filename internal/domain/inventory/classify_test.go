package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_ExpiredDominatesStock(t *testing.T) {
	now := date(2024, time.March, 15)

	tests := []struct {
		name   string
		stock  int
		expiry time.Time
	}{
		{"zero stock, expired yesterday", 0, date(2024, time.March, 14)},
		{"positive stock, expired yesterday", 50, date(2024, time.March, 14)},
		{"zero stock, expires today", 0, date(2024, time.March, 15)},
		{"positive stock, long past expiry", 12, date(2023, time.December, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.stock, tt.expiry, now, DefaultExpiryThreshold)
			assert.Equal(t, StatusExpired, result.Status)
			assert.LessOrEqual(t, result.DaysUntilExpiry, 0)
		})
	}
}

func TestClassify_ExpiringWithinThreshold(t *testing.T) {
	now := date(2024, time.March, 15)

	// Expiring wins irrespective of stock, including zero stock.
	for _, stock := range []int{0, 1, 500} {
		result := Classify(stock, date(2024, time.March, 18), now, 7)
		assert.Equal(t, StatusExpiring, result.Status)
		assert.Equal(t, 3, result.DaysUntilExpiry)
	}

	// Boundary: exactly threshold days out is still expiring.
	result := Classify(10, date(2024, time.March, 22), now, 7)
	assert.Equal(t, StatusExpiring, result.Status)
	assert.Equal(t, 7, result.DaysUntilExpiry)

	// One day past the threshold is not.
	result = Classify(10, date(2024, time.March, 23), now, 7)
	assert.Equal(t, StatusFresh, result.Status)
	assert.Equal(t, 8, result.DaysUntilExpiry)
}

func TestClassify_OutOfStock(t *testing.T) {
	now := date(2024, time.March, 15)

	result := Classify(0, date(2024, time.June, 1), now, 7)
	assert.Equal(t, StatusOutOfStock, result.Status)
}

func TestClassify_Fresh(t *testing.T) {
	now := date(2024, time.March, 15)

	result := Classify(25, date(2024, time.June, 1), now, 7)
	assert.Equal(t, StatusFresh, result.Status)
	assert.Equal(t, 78, result.DaysUntilExpiry)
}

func TestClassify_DayBoundaryNormalization(t *testing.T) {
	// A product expiring in 30 minutes and one expiring in 23 hours both
	// report one day remaining: the computation runs on UTC calendar days,
	// not raw durations.
	now := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)

	in30Minutes := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)
	in23Hours := time.Date(2024, time.March, 16, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, Classify(5, in30Minutes, now, 7).DaysUntilExpiry)
	assert.Equal(t, 1, Classify(5, in23Hours, now, 7).DaysUntilExpiry)

	// Later the same calendar day counts as zero days and is expired.
	laterToday := time.Date(2024, time.March, 15, 23, 45, 0, 0, time.UTC)
	result := Classify(5, laterToday, now, 7)
	assert.Equal(t, 0, result.DaysUntilExpiry)
	assert.Equal(t, StatusExpired, result.Status)
}

func TestClassify_NonUTCInputs(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// Identical instants must classify identically regardless of the
	// location attached to the inputs.
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	expiry := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

	utcResult := Classify(5, expiry, now, 7)
	zonedResult := Classify(5, expiry.In(tokyo), now.In(tokyo), 7)
	assert.Equal(t, utcResult, zonedResult)
}

func TestClassify_SpecScenario(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name   string
		stock  int
		expiry time.Time
		want   Status
	}{
		{"no stock, expired yesterday", 0, today.AddDate(0, 0, -1), StatusExpired},
		{"in stock, expires in three days", 5, today.AddDate(0, 0, 3), StatusExpiring},
		{"no stock, expires in a month", 0, today.AddDate(0, 0, 30), StatusOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stock, tt.expiry, today, 7).Status)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 41, 13, 0, time.UTC)
	expiry := date(2024, time.March, 19)

	first := Classify(3, expiry, now, 5)
	for range 10 {
		assert.Equal(t, first, Classify(3, expiry, now, 5))
	}
}
