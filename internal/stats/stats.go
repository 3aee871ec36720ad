// Package stats computes streak and pattern statistics over the journal
// collections. Compute is pure: it takes a snapshot of the two collections
// plus a reference instant and returns a plain result bundle. Callers decide
// when to recompute; nothing here caches or observes store state.
package stats

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/tearlogapp/tearlog-core/internal/daykey"
	"github.com/tearlogapp/tearlog-core/internal/domain"
)

const day = 24 * time.Hour

// Snapshot carries copies of the collections the analyzer reads.
type Snapshot struct {
	Entries    []domain.JournalEntry
	CryingDays []domain.CryingDay
}

// Compute derives the full statistics bundle from a snapshot.
//
// The timeframe restricts entries and buckets identically before analysis.
// Three figures deliberately ignore it and anchor to the real now instead:
// the rolling 7- and 30-day totals and the 6-month trend.
func Compute(snap Snapshot, tf domain.Timeframe, now time.Time) *domain.Statistics {
	filtered := applyTimeframe(snap, tf)

	result := &domain.Statistics{
		TotalEntries:    len(filtered.Entries),
		IntensityCounts: make(map[domain.CryIntensity]int),
	}

	for _, d := range filtered.CryingDays {
		result.TotalCries += d.Count
	}

	// Rolling windows always use the unfiltered buckets.
	sevenDaysAgo := now.Add(-7 * day)
	thirtyDaysAgo := now.Add(-30 * day)
	for _, d := range snap.CryingDays {
		dayStart := daykey.Parse(d.Date)
		if !dayStart.Before(sevenDaysAgo) {
			result.CriesLast7Days += d.Count
		}
		if !dayStart.Before(thirtyDaysAgo) {
			result.CriesLast30Days += d.Count
		}
	}

	computeEntryPatterns(filtered.Entries, result)
	computeMonthlyTrend(snap.CryingDays, now, result)
	computeStreaks(filtered.CryingDays, now, result)
	computeAveragePerWeek(filtered.CryingDays, now, result)

	return result
}

// applyTimeframe narrows both collections to the window. Entries filter on
// their CreatedAt instant; buckets filter on their calendar day, so a bucket
// is kept when its local midnight falls inside the window's days.
func applyTimeframe(snap Snapshot, tf domain.Timeframe) Snapshot {
	if tf.IsAll() {
		return snap
	}

	out := Snapshot{}
	for _, e := range snap.Entries {
		if tf.Contains(e.CreatedAt) {
			out.Entries = append(out.Entries, e)
		}
	}

	var start, end time.Time
	if !tf.Start.IsZero() {
		start = daykey.Midnight(tf.Start)
	}
	if !tf.End.IsZero() {
		end = tf.End
	}
	for _, d := range snap.CryingDays {
		dayStart := daykey.Parse(d.Date)
		if !start.IsZero() && dayStart.Before(start) {
			continue
		}
		if !end.IsZero() && dayStart.After(end) {
			continue
		}
		out.CryingDays = append(out.CryingDays, d)
	}
	return out
}

// computeEntryPatterns fills the weekday, hour, and intensity figures from
// the crying entries.
func computeEntryPatterns(entries []domain.JournalEntry, result *domain.Statistics) {
	var intensitySum int
	var intensityN int

	for _, e := range entries {
		if !e.WasCrying {
			continue
		}

		local := e.CreatedAt.In(time.Local)
		result.WeekdayCounts[int(local.Weekday())]++
		result.HourCounts[local.Hour()]++

		if e.Intensity.Valid() {
			result.IntensityCounts[e.Intensity]++
			intensitySum += int(e.Intensity)
			intensityN++
		}
	}

	// Ties break toward the earlier index, Sunday-first for weekdays and
	// midnight-first for hours.
	best := 0
	for i, c := range result.WeekdayCounts {
		if c > result.WeekdayCounts[best] {
			best = i
		}
	}
	result.MostEmotionalDay = time.Weekday(best)

	peak := 0
	for h, c := range result.HourCounts {
		if c > result.HourCounts[peak] {
			peak = h
		}
	}
	result.PeakHour = peak
	result.PeakHourLabel = hourLabel(peak)

	if intensityN > 0 {
		result.AverageIntensity = float64(intensitySum) / float64(intensityN)
	}
	dominant := domain.IntensityNone
	for level := domain.IntensitySingleTear; level <= domain.IntensityMentalBreakdown; level++ {
		if c := result.IntensityCounts[level]; c > result.IntensityCounts[dominant] && c > 0 {
			dominant = level
		}
	}
	result.DominantIntensity = dominant
}

// computeMonthlyTrend sums bucket counts for the six calendar months ending
// at now's month, oldest first. Grouping is by calendar year and month,
// never by the timeframe filter.
func computeMonthlyTrend(days []domain.CryingDay, now time.Time, result *domain.Statistics) {
	type yearMonth struct {
		year  int
		month time.Month
	}

	counts := make(map[yearMonth]int)
	for _, d := range days {
		dayStart := daykey.Parse(d.Date)
		counts[yearMonth{dayStart.Year(), dayStart.Month()}] += d.Count
	}

	result.MonthlyTrend = make([]domain.MonthCount, 0, 6)
	for i := 5; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.Local)
		result.MonthlyTrend = append(result.MonthlyTrend, domain.MonthCount{
			Year:  anchor.Year(),
			Month: anchor.Month(),
			Count: counts[yearMonth{anchor.Year(), anchor.Month()}],
		})
	}
}

// computeStreaks walks the sorted distinct bucket dates. Day keys are
// re-parsed as UTC midnights so differences are exact multiples of 24 hours
// regardless of DST transitions in the local zone.
func computeStreaks(days []domain.CryingDay, now time.Time, result *domain.Statistics) {
	if len(days) == 0 {
		return
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, daykey.ParseIn(d.Date, time.UTC))
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	dates = slices.CompactFunc(dates, func(a, b time.Time) bool { return a.Equal(b) })

	// A gap of 1 between consecutive bucket dates means back-to-back crying
	// days; a gap > 1 means gap-1 dry days sat between them.
	consecutive := 1
	for i := 1; i < len(dates); i++ {
		gap := int(dates[i].Sub(dates[i-1]) / day)
		if gap > 1 {
			result.LongestDryStreak = max(result.LongestDryStreak, gap-1)
			result.LongestCryStreak = max(result.LongestCryStreak, consecutive)
			consecutive = 1
		} else if gap == 1 {
			consecutive++
		}
	}
	result.LongestCryStreak = max(result.LongestCryStreak, consecutive)

	today := daykey.ParseIn(daykey.Format(now), time.UTC)

	// The ongoing dry spell can itself be the longest one.
	lastCry := dates[len(dates)-1]
	result.CurrentDryStreak = int(today.Sub(lastCry) / day)
	result.LongestDryStreak = max(result.LongestDryStreak, result.CurrentDryStreak)

	// Walk backward from today; a 0-or-1-day step keeps the run alive.
	check := today
	for i := len(dates) - 1; i >= 0; i-- {
		diff := int(check.Sub(dates[i]) / day)
		if diff == 0 || diff == 1 {
			result.CurrentCryStreak++
			check = dates[i]
		} else {
			break
		}
	}
}

// computeAveragePerWeek divides total cries by the number of weeks elapsed
// since the earliest bucket date, at least one.
func computeAveragePerWeek(days []domain.CryingDay, now time.Time, result *domain.Statistics) {
	if len(days) == 0 || result.TotalCries == 0 {
		return
	}

	earliest := daykey.Parse(days[0].Date)
	for _, d := range days[1:] {
		if t := daykey.Parse(d.Date); t.Before(earliest) {
			earliest = t
		}
	}

	weeks := int(math.Ceil(now.Sub(earliest).Hours() / (7 * 24)))
	result.AveragePerWeek = float64(result.TotalCries) / float64(max(1, weeks))
}

// hourLabel renders an hour-of-day as a 12-hour clock label.
func hourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour == 12:
		return "12 PM"
	case hour < 12:
		return strconv.Itoa(hour) + " AM"
	default:
		return strconv.Itoa(hour-12) + " PM"
	}
}
