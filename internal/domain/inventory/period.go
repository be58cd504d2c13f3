package inventory

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// Period is the calendar unit used to bucket purchase records for trend
// aggregation.
type Period string

const (
	// PeriodDaily buckets by UTC calendar date, key "YYYY-MM-DD".
	PeriodDaily Period = "daily"
	// PeriodWeekly buckets by ISO-8601 week, key "YYYY-W{week}".
	PeriodWeekly Period = "weekly"
	// PeriodMonthly buckets by calendar month, key "YYYY-M".
	PeriodMonthly Period = "monthly"
)

// ErrInvalidPeriod is returned when a period unit is not one of daily,
// weekly or monthly. Callers must reject the unit before aggregating; there
// is no silent default.
var ErrInvalidPeriod = errors.New("period must be one of: daily, weekly, monthly")

// String returns the string representation of the Period.
func (p Period) String() string {
	return string(p)
}

// IsValid checks if the Period is a valid value.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// ParsePeriod validates a raw period unit supplied by a caller.
func ParsePeriod(raw string) (Period, error) {
	period := Period(raw)
	if !period.IsValid() {
		return "", errors.Wrapf(ErrInvalidPeriod, "unknown period unit %q", raw)
	}

	return period, nil
}

// PeriodKey derives the bucket label for a timestamp under the given unit.
// All keys are computed in UTC.
//
// Weekly keys follow the ISO-8601 rule: the week belongs to the year that
// contains its Thursday, so a date in late December can key into week 1 of
// the following ISO year (and 2023-01-01, a Sunday, keys into "2022-W52").
// Weekly and monthly numbers are not zero-padded.
func PeriodKey(t time.Time, unit Period) (string, error) {
	utc := t.UTC()

	switch unit {
	case PeriodDaily:
		return utc.Format("2006-01-02"), nil
	case PeriodWeekly:
		isoYear, isoWeek := utc.ISOWeek()

		return fmt.Sprintf("%d-W%d", isoYear, isoWeek), nil
	case PeriodMonthly:
		return fmt.Sprintf("%d-%d", utc.Year(), int(utc.Month())), nil
	default:
		return "", errors.Wrapf(ErrInvalidPeriod, "unknown period unit %q", unit)
	}
}
