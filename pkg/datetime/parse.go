// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/sip-planner/pkg/constants"
)

const (
	// DateLayout is the calendar date format used for plan schedules.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// AddDays returns t moved forward by the given number of whole days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// FormatDate renders t in DateLayout. The zero time renders as an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// MaturityDate returns the date a plan started at t reaches the end of its
// term, using the 30-day month approximation.
func MaturityDate(t time.Time, months int) time.Time {
	return AddDays(t, months*constants.DaysPerMonth)
}
