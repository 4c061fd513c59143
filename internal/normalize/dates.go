package normalize

import (
	"strings"
	"time"
)

// Common date formats found in claims and payment exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

// ParseDate attempts to parse a date string in multiple common formats.
// The time-of-day portion is discarded: claims are bucketed by calendar day.
// Returns ok=false if the input is empty or unparseable.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, f := range dateFormats {
		if t, err := time.Parse(f, s); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthLabel returns the YYYY-MM calendar month label for t.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// DaysBetween returns the whole number of days from earlier to later.
func DaysBetween(earlier, later time.Time) int {
	return int(Midnight(later).Sub(Midnight(earlier)).Hours() / 24)
}
