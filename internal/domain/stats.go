package domain

import "time"

// Timeframe restricts which entries and buckets the analyzer considers.
// The zero value means "all time". Start and End are inclusive instants;
// filtering applies identically to entries and crying-day buckets.
//
// The two rolling windows (last 7 / last 30 days) and the 6-month trend are
// always anchored to the real current moment and ignore the timeframe.
type Timeframe struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// All is the unbounded timeframe.
var All = Timeframe{}

// IsAll reports whether the timeframe places no restriction.
func (tf Timeframe) IsAll() bool {
	return tf.Start.IsZero() && tf.End.IsZero()
}

// Contains reports whether t falls inside the timeframe.
func (tf Timeframe) Contains(t time.Time) bool {
	if !tf.Start.IsZero() && t.Before(tf.Start) {
		return false
	}
	if !tf.End.IsZero() && t.After(tf.End) {
		return false
	}
	return true
}

// MonthCount is one column of the 6-month trend chart.
type MonthCount struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// Statistics is the full result bundle computed by the analyzer.
// All fields are plain data; callers decide when to recompute.
type Statistics struct {
	TotalCries   int `json:"total_cries"`
	TotalEntries int `json:"total_entries"`

	// Rolling windows, always relative to the real current moment.
	CriesLast7Days  int `json:"cries_last_7_days"`
	CriesLast30Days int `json:"cries_last_30_days"`

	// Weekday distribution of crying entries, Sunday-first.
	WeekdayCounts    [7]int       `json:"weekday_counts"`
	MostEmotionalDay time.Weekday `json:"most_emotional_day"`

	// Hour-of-day histogram of crying entries.
	HourCounts    [24]int `json:"hour_counts"`
	PeakHour      int     `json:"peak_hour"`
	PeakHourLabel string  `json:"peak_hour_label"`

	// Six calendar months ending at the current month, oldest first.
	MonthlyTrend []MonthCount `json:"monthly_trend"`

	// Streaks, all day-granular.
	CurrentDryStreak int `json:"current_dry_streak"`
	LongestDryStreak int `json:"longest_dry_streak"`
	CurrentCryStreak int `json:"current_cry_streak"`
	LongestCryStreak int `json:"longest_cry_streak"`

	// Intensity distribution over crying entries that carry an intensity.
	IntensityCounts   map[CryIntensity]int `json:"intensity_counts"`
	AverageIntensity  float64              `json:"average_intensity"`
	DominantIntensity CryIntensity         `json:"dominant_intensity"`

	AveragePerWeek float64 `json:"average_per_week"`
}
