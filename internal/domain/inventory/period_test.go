package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, raw := range []string{"daily", "weekly", "monthly"} {
		period, err := ParsePeriod(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, period.String())
	}

	for _, raw := range []string{"", "hourly", "yearly", "Daily", "week"} {
		_, err := ParsePeriod(raw)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "period %q", raw)
	}
}

func TestPeriodKey_Daily(t *testing.T) {
	key, err := PeriodKey(time.Date(2023, time.April, 5, 15, 30, 0, 0, time.UTC), PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, "2023-04-05", key)
}

func TestPeriodKey_Weekly_ISOYearBoundary(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		// 2023-01-01 is a Sunday and belongs to ISO week 52 of 2022.
		{"sunday before first ISO week", date(2023, time.January, 1), "2022-W52"},
		{"first monday of the ISO year", date(2023, time.January, 2), "2023-W1"},
		// 2024-12-30 is a Monday belonging to week 1 of ISO year 2025.
		{"late december in next ISO year", date(2024, time.December, 30), "2025-W1"},
		{"midyear week", date(2023, time.June, 15), "2023-W24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := PeriodKey(tt.t, PeriodWeekly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestPeriodKey_Monthly_NotZeroPadded(t *testing.T) {
	key, err := PeriodKey(date(2023, time.January, 15), PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "2023-1", key)

	key, err = PeriodKey(date(2023, time.November, 1), PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "2023-11", key)
}

func TestPeriodKey_UsesUTC(t *testing.T) {
	// 2023-01-01 03:00 in UTC+5 is still 2022-12-31 in UTC.
	zone := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2023, time.January, 1, 3, 0, 0, 0, zone)

	key, err := PeriodKey(local, PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, "2022-12-31", key)
}

func TestPeriodKey_InvalidUnit(t *testing.T) {
	_, err := PeriodKey(date(2023, time.January, 1), Period("hourly"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
