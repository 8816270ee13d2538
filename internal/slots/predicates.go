// Package slots holds the per-slot predicates used by intent validation.
package slots

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// OneOf reports whether value matches one of options, ignoring case.
func OneOf(value string, options []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, opt := range options {
		if v == opt {
			return true
		}
	}
	return false
}

// IndexOf returns the position of value in options, ignoring case, or -1.
func IndexOf(value string, options []string) int {
	v := strings.ToLower(strings.TrimSpace(value))
	for i, opt := range options {
		if v == opt {
			return i
		}
	}
	return -1
}

// IsDigits reports whether value is a non-empty run of decimal digits.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ParseCount parses a count slot such as Nights or DriverAge.
func ParseCount(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDate accepts the date shapes the platform and users send and returns
// midnight of that civil date in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, v, loc)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", value)
}

// IsAfterToday reports whether date falls strictly after the civil date of now
// in loc.
func IsAfterToday(date, now time.Time, loc *time.Location) bool {
	ny, nm, nd := now.In(loc).Date()
	today := civil(ny, nm, nd)
	dy, dm, dd := date.In(loc).Date()
	return civil(dy, dm, dd).After(today)
}

// DayDifference returns the absolute number of days between two dates.
func DayDifference(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	diff := civil(ay, am, ad).Sub(civil(by, bm, bd))
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

func civil(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
