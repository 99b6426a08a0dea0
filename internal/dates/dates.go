// Package dates provides helpers for the YYYY-MM-DD calendar-date strings
// used throughout the task engine. Dates in this form compare correctly as
// plain strings, which the query and analytics code relies on.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the calendar-date layout used for task start and due dates.
const Layout = "2006-01-02"

// Format renders a time as a YYYY-MM-DD string.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse parses a YYYY-MM-DD string in the local time zone.
func Parse(value string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// Valid reports whether value is a well-formed YYYY-MM-DD string.
// The empty string is not a valid date.
func Valid(value string) bool {
	if len(value) != len(Layout) {
		return false
	}
	_, err := time.ParseInLocation(Layout, value, time.Local)
	return err == nil
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns the date days calendar days after t.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// HasTime reports whether value carries a time-of-day component, i.e. it is
// longer than a bare date and contains a 'T' separator.
func HasTime(value string) bool {
	return len(value) > len(Layout) && strings.Contains(value, "T")
}
