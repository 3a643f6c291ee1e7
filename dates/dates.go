// ABOUTME: Timestamp normalization and fixed-timezone display formatting
// ABOUTME: Naive backend timestamps are interpreted as UTC and rendered in Chicago time
package dates

import (
	"regexp"
	"strings"
	"time"
)

// DisplayZone is the single timezone every timestamp renders in. This is a
// single-user tool with a known home timezone; viewer-local rendering would
// shuffle days around depending on where the terminal happens to run.
const DisplayZone = "America/Chicago"

var (
	dateOnlyRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	explicitTzRe = regexp.MustCompile(`([+-]\d{2}:\d{2}|Z)$`)

	displayLoc = mustLoadDisplayZone()
)

func mustLoadDisplayZone() *time.Location {
	loc, err := time.LoadLocation(DisplayZone)
	if err != nil {
		// Zoneinfo is embedded-or-OS; a missing zone means a broken build.
		panic("dates: cannot load " + DisplayZone + ": " + err.Error())
	}
	return loc
}

// Location returns the fixed display timezone.
func Location() *time.Location {
	return displayLoc
}

// naive RFC 3339 variants after the missing-offset repair appends "Z"
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
}

// Normalize resolves an ambiguous timestamp string to an instant.
//
// The backend historically emitted naive timestamps, so the policy is:
// date-only strings anchor to midday UTC (immune to day-shift in any
// rendering zone), date-time strings without an offset are taken as UTC,
// and strings with an explicit offset or Z parse as written. The second
// return is false when no instant can be resolved.
func Normalize(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	if dateOnlyRe.MatchString(s) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), true
	}

	if dateTimeRe.MatchString(s) && !explicitTzRe.MatchString(s) {
		s += "Z"
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders a timestamp string in the display timezone using the given
// layout. Unresolvable input echoes back unchanged so a malformed value is
// at least visible instead of blank.
func Format(value, layout string) string {
	t, ok := Normalize(value)
	if !ok {
		return value
	}
	return t.In(displayLoc).Format(layout)
}

// FormatTime renders an already-resolved instant in the display timezone.
func FormatTime(t time.Time, layout string) string {
	return t.In(displayLoc).Format(layout)
}

// Common display layouts.
const (
	LayoutDate     = "Jan 2, 2006"
	LayoutDay      = "Jan 2"
	LayoutDateTime = "Jan 2, 3:04 PM"
)

// Today returns the current date in the display timezone as YYYY-MM-DD.
func Today() string {
	return time.Now().In(displayLoc).Format("2006-01-02")
}

// MondayOf snaps a date to the Monday of its week.
func MondayOf(d time.Time) time.Time {
	// Go weeks start on Sunday; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).AddDate(0, 0, -offset)
}

// CurrentWeekStart returns the Monday of the current display-timezone week.
func CurrentWeekStart() time.Time {
	now := time.Now().In(displayLoc)
	return MondayOf(now)
}
