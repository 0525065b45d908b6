// Package dates parses the loosely formatted date strings the upstream
// APIs emit and formats them for display.
package dates

import (
	"fmt"
	"time"
)

var formats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse tries the known upstream date layouts in order.
func Parse(value string) (time.Time, bool) {
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clock formats a time as 24-hour H:MM without a leading zero on the hour.
func Clock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// DayMonth formats a date string as "2 Jan" for itinerary summaries.
// Unparseable input yields an empty string.
func DayMonth(value string) string {
	t, ok := Parse(value)
	if !ok {
		return ""
	}
	return t.Format("2 Jan")
}
