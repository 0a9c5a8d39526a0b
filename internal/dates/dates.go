// Package dates handles the calendar-date strings stored on booking records.
// Dates are kept as ISO "YYYY-MM-DD" strings and interpreted in UTC.
package dates

import (
	"fmt"
	"time"
)

// ISOLayout is the storage layout of every date field.
const ISOLayout = "2006-01-02"

const day = 24 * time.Hour

// Parse reads an ISO date or an RFC 3339 timestamp. The result is in UTC.
func Parse(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(ISOLayout, value, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Format renders t as an ISO date using its UTC fields.
func Format(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// FormatDDMMYYYY converts a stored date into DD/MM/YYYY. Empty, unparsable
// and pre-1900 values render as the empty string.
func FormatDDMMYYYY(value string) string {
	t, ok := Parse(value)
	if !ok || t.Year() < 1900 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year())
}

// StartOfDay truncates t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable instant of t's UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(day - time.Nanosecond)
}

// AddDays shifts an ISO date by n days. Unparsable input is returned as is.
func AddDays(value string, n int) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	return Format(t.AddDate(0, 0, n))
}

// Range is an inclusive day range. A zero bound is open.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a normalized range from two ISO strings. Empty or invalid
// strings leave the corresponding bound open.
func NewRange(start, end string) Range {
	var r Range
	if t, ok := Parse(start); ok {
		r.Start = StartOfDay(t)
	}
	if t, ok := Parse(end); ok {
		r.End = EndOfDay(t)
	}
	return r
}

// Open reports whether neither bound is set.
func (r Range) Open() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether the stored date value falls inside the range.
// Unparsable values are only contained by an open range.
func (r Range) Contains(value string) bool {
	if r.Open() {
		return true
	}
	t, ok := Parse(value)
	if !ok {
		return false
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Week returns the Monday through Sunday range containing today.
func Week(today time.Time) (string, string) {
	today = StartOfDay(today)
	offset := int(today.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	monday := today.AddDate(0, 0, -offset)
	return Format(monday), Format(monday.AddDate(0, 0, 6))
}

// Nights counts the nights between two ISO dates, rounding partial days up.
// Reversed, equal or unparsable dates yield zero.
func Nights(checkIn, checkOut string) int {
	start, ok := Parse(checkIn)
	if !ok {
		return 0
	}
	end, ok := Parse(checkOut)
	if !ok || !start.Before(end) {
		return 0
	}
	diff := end.Sub(start)
	nights := int(diff / day)
	if diff%day != 0 {
		nights++
	}
	return nights
}

// Overlaps reports whether the half-open stays [aIn, aOut) and [bIn, bOut)
// share at least one night. Missing bounds are treated as unbounded.
func Overlaps(aIn, aOut, bIn, bOut string) bool {
	aStart, aHasStart := Parse(aIn)
	aEnd, aHasEnd := Parse(aOut)
	bStart, bHasStart := Parse(bIn)
	bEnd, bHasEnd := Parse(bOut)

	if aHasStart && bHasEnd && !aStart.Before(bEnd) {
		return false
	}
	if bHasStart && aHasEnd && !bStart.Before(aEnd) {
		return false
	}
	return true
}
