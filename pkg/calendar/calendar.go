// Package calendar holds the pure date arithmetic the scheduling engine is
// built on: weekday normalization, month enumeration and the bookable-date
// predicate. No I/O, no state.
package calendar

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates. Fixed-width, so
	// date strings sort chronologically.
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for slot times, minute granularity.
	// Zero-padded, so time strings sort chronologically too.
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date string. The returned time is midnight
// UTC; the engine only ever compares civil dates, never instants.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidClock reports whether s is a well-formed zero-padded HH:MM time.
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// WeekdayIndex maps a date to the rule system's weekday convention:
// 1=Monday .. 7=Sunday. Go's time.Weekday counts Sunday as 0, so Sunday is
// the one value that needs remapping.
func WeekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// MonthDates returns every calendar date of the given month, ascending.
func MonthDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	dates := make([]time.Time, 0, days)
	for d := 0; d < days; d++ {
		dates = append(dates, first.AddDate(0, 0, d))
	}
	return dates
}

// IsBookable reports whether a date may carry bookable slots: past dates are
// out, and Sunday is the fixed closed day regardless of configured rules.
// Every other weekday, Saturday included, is governed by the rule store.
func IsBookable(date, today time.Time) bool {
	if truncate(date).Before(truncate(today)) {
		return false
	}
	return WeekdayIndex(date) != 7
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
