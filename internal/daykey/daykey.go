// Package daykey derives timezone-stable calendar-day identifiers.
//
// A day key is a zero-padded, lexically sortable YYYY-MM-DD string computed
// from an instant's calendar date in the device's local timezone. Deriving
// the key through a UTC serialization is a known bug class: an entry written
// at 11:30 PM local time must never bucket into the next UTC day.
package daykey

import "time"

// Layout is the wire format of a day key.
const Layout = "2006-01-02"

// Format returns the day key for t in the local timezone.
func Format(t time.Time) string {
	return FormatIn(t, time.Local)
}

// FormatIn returns the day key for t in the given location.
func FormatIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}

// Midnight truncates t to local midnight of its calendar day.
func Midnight(t time.Time) time.Time {
	return MidnightIn(t, time.Local)
}

// MidnightIn truncates t to midnight of its calendar day in loc.
func MidnightIn(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// Parse converts a day key back to local midnight of that day.
// Returns the zero time if the key is malformed.
func Parse(key string) time.Time {
	return ParseIn(key, time.Local)
}

// ParseIn converts a day key to midnight of that day in loc.
func ParseIn(key string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
