package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// NormalizeDate turns a YYYY-MM-DD string into UTC midnight of that day.
// All meal and score dates are stored with this normalization; everything
// downstream treats the value as an opaque day key.
func NormalizeDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// FormatDate renders a normalized day key back to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Today returns the current day normalized to UTC midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
