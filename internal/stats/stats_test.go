package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tearlogapp/tearlog-core/internal/daykey"
	"github.com/tearlogapp/tearlog-core/internal/domain"
)

func bucket(date string, count int) domain.CryingDay {
	return domain.CryingDay{
		Date:      date,
		Timestamp: daykey.Parse(date).Add(12 * time.Hour),
		Count:     count,
	}
}

func cryingEntry(at time.Time, intensity domain.CryIntensity) domain.JournalEntry {
	return domain.JournalEntry{
		ID:        "ent-test",
		Content:   "test",
		CreatedAt: at,
		WasCrying: true,
		Intensity: intensity,
	}
}

func TestCompute_EmptySnapshot(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	result := Compute(Snapshot{}, domain.All, now)

	assert.Zero(t, result.TotalCries)
	assert.Zero(t, result.TotalEntries)
	assert.Zero(t, result.CurrentDryStreak)
	assert.Zero(t, result.LongestDryStreak)
	assert.Zero(t, result.CurrentCryStreak)
	assert.Zero(t, result.LongestCryStreak)
	assert.Zero(t, result.AveragePerWeek)
	assert.Equal(t, time.Sunday, result.MostEmotionalDay)
	assert.Equal(t, "12 AM", result.PeakHourLabel)
	assert.Equal(t, domain.IntensityNone, result.DominantIntensity)
	assert.Len(t, result.MonthlyTrend, 6)
	for _, m := range result.MonthlyTrend {
		assert.Zero(t, m.Count)
	}
}

func TestCompute_StreakWalk(t *testing.T) {
	// Three back-to-back crying days, a two-day dry gap, one more crying
	// day, then two dry days up to now.
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-01-01", 1),
		bucket("2024-01-02", 2),
		bucket("2024-01-03", 1),
		bucket("2024-01-06", 1),
	}}
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, 3, result.LongestCryStreak)
	assert.Equal(t, 2, result.LongestDryStreak)
	assert.Equal(t, 2, result.CurrentDryStreak)
	assert.Zero(t, result.CurrentCryStreak)
	assert.Equal(t, 5, result.TotalCries)
}

func TestCompute_OngoingDrySpellIsLongest(t *testing.T) {
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-01-05", 1),
	}}
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, 5, result.CurrentDryStreak)
	assert.Equal(t, 5, result.LongestDryStreak)
	assert.Equal(t, 1, result.LongestCryStreak)
	assert.Zero(t, result.CurrentCryStreak)
}

func TestCompute_CurrentCryStreakIncludesToday(t *testing.T) {
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-03-04", 1),
		bucket("2024-03-05", 1),
	}}
	now := time.Date(2024, 3, 5, 18, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, 2, result.CurrentCryStreak)
	assert.Equal(t, 2, result.LongestCryStreak)
	assert.Zero(t, result.CurrentDryStreak)
}

func TestCompute_CurrentCryStreakSurvivesNotCryingYetToday(t *testing.T) {
	// Cried yesterday and the day before but not today; the run is still
	// considered alive.
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-03-03", 1),
		bucket("2024-03-04", 1),
	}}
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, 2, result.CurrentCryStreak)
	assert.Equal(t, 1, result.CurrentDryStreak)
}

func TestCompute_WeekdayAndHourPatterns(t *testing.T) {
	// 2024-03-04 is a Monday, 2024-03-05 a Tuesday.
	snap := Snapshot{Entries: []domain.JournalEntry{
		cryingEntry(time.Date(2024, 3, 4, 14, 5, 0, 0, time.Local), domain.IntensityMistyEyes),
		cryingEntry(time.Date(2024, 3, 4, 14, 40, 0, 0, time.Local), domain.IntensityMistyEyes),
		cryingEntry(time.Date(2024, 3, 5, 9, 10, 0, 0, time.Local), domain.IntensityMentalBreakdown),
	}}
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, time.Monday, result.MostEmotionalDay)
	assert.Equal(t, 2, result.WeekdayCounts[int(time.Monday)])
	assert.Equal(t, 1, result.WeekdayCounts[int(time.Tuesday)])
	assert.Equal(t, 14, result.PeakHour)
	assert.Equal(t, "2 PM", result.PeakHourLabel)
	assert.Equal(t, 2, result.HourCounts[14])
}

func TestCompute_IntensityFigures(t *testing.T) {
	snap := Snapshot{Entries: []domain.JournalEntry{
		cryingEntry(time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local), domain.IntensityMistyEyes),
		cryingEntry(time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local), domain.IntensityMistyEyes),
		cryingEntry(time.Date(2024, 3, 6, 10, 0, 0, 0, time.Local), domain.IntensityMentalBreakdown),
		{ID: "calm", Content: "fine day", CreatedAt: time.Date(2024, 3, 6, 11, 0, 0, 0, time.Local)},
	}}
	now := time.Date(2024, 3, 7, 12, 0, 0, 0, time.Local)

	result := Compute(snap, domain.All, now)

	assert.Equal(t, 2, result.IntensityCounts[domain.IntensityMistyEyes])
	assert.Equal(t, 1, result.IntensityCounts[domain.IntensityMentalBreakdown])
	assert.InDelta(t, 8.0/3.0, result.AverageIntensity, 0.0001)
	assert.Equal(t, domain.IntensityMistyEyes, result.DominantIntensity)
	assert.Equal(t, 4, result.TotalEntries)
}

func TestCompute_RollingWindowsIgnoreTimeframe(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-06-13", 2),
		bucket("2024-05-01", 5),
	}}
	mayOnly := domain.Timeframe{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, 5, 31, 23, 59, 59, 0, time.Local),
	}

	result := Compute(snap, mayOnly, now)

	assert.Equal(t, 5, result.TotalCries)
	assert.Equal(t, 2, result.CriesLast7Days)
	assert.Equal(t, 2, result.CriesLast30Days)
}

func TestCompute_MonthlyTrend(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-06-01", 2),
		bucket("2024-04-10", 3),
		bucket("2023-12-25", 9),
	}}

	result := Compute(snap, domain.All, now)

	require.Len(t, result.MonthlyTrend, 6)
	assert.Equal(t, domain.MonthCount{Year: 2024, Month: time.January, Count: 0}, result.MonthlyTrend[0])
	assert.Equal(t, domain.MonthCount{Year: 2024, Month: time.April, Count: 3}, result.MonthlyTrend[3])
	assert.Equal(t, domain.MonthCount{Year: 2024, Month: time.June, Count: 2}, result.MonthlyTrend[5])
}

func TestCompute_AveragePerWeek(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	snap := Snapshot{CryingDays: []domain.CryingDay{
		bucket("2024-05-26", 4),
		bucket("2024-06-10", 2),
	}}

	// 20.5 days since the earliest bucket rounds up to 3 weeks.
	result := Compute(snap, domain.All, now)

	assert.InDelta(t, 2.0, result.AveragePerWeek, 0.0001)
}

func TestCompute_TimeframeFiltersEntriesAndBuckets(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	snap := Snapshot{
		Entries: []domain.JournalEntry{
			cryingEntry(time.Date(2024, 5, 10, 10, 0, 0, 0, time.Local), domain.IntensityProperCry),
			cryingEntry(time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local), domain.IntensitySingleTear),
		},
		CryingDays: []domain.CryingDay{
			bucket("2024-05-10", 1),
			bucket("2024-06-10", 1),
		},
	}
	juneOnly := domain.Timeframe{
		Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local),
		End:   now,
	}

	result := Compute(snap, juneOnly, now)

	assert.Equal(t, 1, result.TotalEntries)
	assert.Equal(t, 1, result.TotalCries)
	assert.Equal(t, 1, result.IntensityCounts[domain.IntensitySingleTear])
	assert.Zero(t, result.IntensityCounts[domain.IntensityProperCry])
}

func TestHourLabel(t *testing.T) {
	cases := map[int]string{
		0:  "12 AM",
		5:  "5 AM",
		11: "11 AM",
		12: "12 PM",
		13: "1 PM",
		23: "11 PM",
	}
	for hour, want := range cases {
		assert.Equal(t, want, hourLabel(hour), "hour %d", hour)
	}
}
