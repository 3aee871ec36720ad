// Package domain defines the plain data records shared across the journal
// core: entries, crying-day aggregates, and statistics bundles. Records carry
// no behavior beyond validation and small derivations; the presentation layer
// is responsible for all formatting and localization.
package domain

import "time"

// CryIntensity is the ordinal severity of a crying event.
// Zero means no intensity recorded (the entry was not a crying entry).
type CryIntensity int

// Intensity levels, ordered from mildest to heaviest.
const (
	IntensityNone            CryIntensity = 0
	IntensitySingleTear      CryIntensity = 1
	IntensityMistyEyes       CryIntensity = 2
	IntensityProperCry       CryIntensity = 3
	IntensityMentalBreakdown CryIntensity = 4
)

// Valid reports whether the intensity is a recognized recorded level.
// IntensityNone is not a recorded level.
func (i CryIntensity) Valid() bool {
	return i >= IntensitySingleTear && i <= IntensityMentalBreakdown
}

// Label returns a short human-readable name for the intensity.
func (i CryIntensity) Label() string {
	switch i {
	case IntensitySingleTear:
		return "Single Tear"
	case IntensityMistyEyes:
		return "Misty Eyes"
	case IntensityProperCry:
		return "Proper Cry"
	case IntensityMentalBreakdown:
		return "Mental Breakdown"
	default:
		return "None"
	}
}

// JournalEntry is one user-authored record. Entries are mutable in place;
// the journal service owns the collection and keeps it sorted by CreatedAt
// descending.
//
// Invariant: Intensity != IntensityNone implies WasCrying. Every write path
// normalizes a stray intensity away when WasCrying is false.
type JournalEntry struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	WasCrying bool         `json:"was_crying"`
	Intensity CryIntensity `json:"intensity,omitempty"`
}

// CryingDay is one aggregate bucket keyed by local calendar day. It is a
// derived index over crying entries: Count mirrors the number of crying
// entries whose CreatedAt falls on Date, and Timestamp is the instant of the
// most recently recorded crying entry for that day. Buckets whose count
// reaches zero are removed, never kept as zero-rows.
type CryingDay struct {
	// Date is a YYYY-MM-DD key derived in the device's local timezone.
	Date string `json:"date"`

	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}
