// Package calendar implements date stepping on an instant's own calendar
// fields. No timezone conversion happens: the result keeps the location,
// wall clock and nanoseconds of the input.
//
// Month and year steps clamp the day of month to the last day of the target
// month instead of rolling over into the next one, so Jan 31 + 1 month is
// Feb 28 (Feb 29 in leap years) and Feb 29 + 1 year is Feb 28.
package calendar

import (
	"fmt"
	"time"

	"github.com/marikeiske/datekeeper-plus/internal/model"
)

// Step advances t by n units of the given frequency.
func Step(t time.Time, f model.Frequency, n int) (time.Time, error) {
	switch f {
	case model.FrequencyDaily:
		return t.AddDate(0, 0, n), nil
	case model.FrequencyWeekly:
		return t.AddDate(0, 0, 7*n), nil
	case model.FrequencyMonthly:
		return AddMonths(t, n), nil
	case model.FrequencyYearly:
		return AddYears(t, n), nil
	default:
		return time.Time{}, fmt.Errorf("unknown frequency %q: %w", f, model.ErrInvalidRule)
	}
}

func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// first of the target month, normalized by time.Date
	target := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysIn(target.Year(), target.Month()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOf truncates t to midnight of its calendar date, in t's location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
