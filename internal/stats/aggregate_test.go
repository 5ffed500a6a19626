package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

func TestTotals(t *testing.T) {
	sessions := []internal.Session{
		{DurationMinutes: 30, DateString: "d1"},
		{DurationMinutes: 90, DateString: "d1"},
		{DurationMinutes: 10, DateString: "d2"},
	}
	assert.Equal(t, 130, TotalMinutes(sessions))
	assert.Equal(t, 2, TotalHours(sessions))
}

func TestDayBuckets_GroupsAndSorts(t *testing.T) {
	sessions := []internal.Session{
		{DurationMinutes: 10, DateString: "2024-06-02", Content: "abc"},
		{DurationMinutes: 30, DateString: "2024-06-01", Content: "hello"},
		{DurationMinutes: 90, DateString: "2024-06-01", Content: "hi"},
	}
	buckets := DayBuckets(sessions)
	assert.Len(t, buckets, 2)
	assert.Equal(t, "2024-06-01", buckets[0].Date)
	assert.Equal(t, 120, buckets[0].TotalMinutes)
	assert.Equal(t, 7, buckets[0].TotalChars)
	assert.Equal(t, "2024-06-02", buckets[1].Date)
	assert.Equal(t, 10, buckets[1].TotalMinutes)
}

func TestDayBuckets_PreservesTotal(t *testing.T) {
	sessions := []internal.Session{
		{DurationMinutes: 5, DateString: "a"},
		{DurationMinutes: 25, DateString: "b"},
		{DurationMinutes: 61, DateString: "a"},
		{DurationMinutes: 7, DateString: "c"},
	}
	sum := 0
	for _, b := range DayBuckets(sessions) {
		sum += b.TotalMinutes
	}
	assert.Equal(t, TotalMinutes(sessions), sum)
}

func TestDayBuckets_Empty(t *testing.T) {
	assert.Empty(t, DayBuckets(nil))
}

func TestTailBuckets(t *testing.T) {
	buckets := []DayBucket{{Date: "a"}, {Date: "b"}, {Date: "c"}}
	assert.Equal(t, buckets, TailBuckets(buckets, 5))
	assert.Equal(t, buckets, TailBuckets(buckets, 0))
	tail := TailBuckets(buckets, 2)
	assert.Len(t, tail, 2)
	assert.Equal(t, "b", tail[0].Date)
	assert.Equal(t, "c", tail[1].Date)
}

func TestHourHistogram(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2024, 6, 10, hour, 30, 0, 0, time.Local)
	}
	sessions := []internal.Session{
		{CreatedAt: at(9)},
		{CreatedAt: at(9)},
		{CreatedAt: at(22)},
		{}, // no timestamp: excluded, not an error
	}
	hist := HourHistogram(sessions)
	assert.Equal(t, 2, hist[9])
	assert.Equal(t, 1, hist[22])
	total := 0
	for _, c := range hist {
		total += c
	}
	assert.Equal(t, 3, total)
}

func TestCategoryHistogram_DeriveOnReadFallback(t *testing.T) {
	sessions := []internal.Session{
		{DurationMinutes: 5},  // derived QuickNote
		{DurationMinutes: 45}, // derived DeepLearning
		{DurationMinutes: 45, Category: internal.CategoryGrindMaster}, // stored value wins
	}
	hist := CategoryHistogram(sessions)
	assert.Equal(t, 1, hist[internal.CategoryQuickNote])
	assert.Equal(t, 1, hist[internal.CategoryDeepLearning])
	assert.Equal(t, 1, hist[internal.CategoryGrindMaster])
	// Zero-count tiers are omitted entirely.
	_, ok := hist[internal.CategoryShortFocus]
	assert.False(t, ok)
}

func TestDeriveCategory_Boundaries(t *testing.T) {
	cases := map[int]internal.Category{
		1:   internal.CategoryQuickNote,
		5:   internal.CategoryQuickNote,
		6:   internal.CategoryShortFocus,
		20:  internal.CategoryShortFocus,
		21:  internal.CategoryDeepLearning,
		60:  internal.CategoryDeepLearning,
		61:  internal.CategoryGrindMaster,
		120: internal.CategoryGrindMaster,
	}
	for minutes, want := range cases {
		assert.Equal(t, want, internal.DeriveCategory(minutes), "minutes=%d", minutes)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalSessions)
	assert.Equal(t, 0, s.AvgDurationMinutes)
	assert.Equal(t, 0, s.AvgChars)
	assert.Equal(t, 0, s.Pace)
}

func TestSummarize(t *testing.T) {
	sessions := []internal.Session{
		{DurationMinutes: 30, Content: "aaaaaaaaaa"}, // 10 chars
		{DurationMinutes: 10, Content: "aaaaa"},      // 5 chars
	}
	s := Summarize(sessions)
	assert.Equal(t, 2, s.TotalSessions)
	assert.Equal(t, 20, s.AvgDurationMinutes)
	assert.Equal(t, 8, s.AvgChars) // round(7.5)
	assert.Equal(t, 0, s.Pace)     // round(8/20) = 0
}

func TestSummarize_ZeroDurationGuard(t *testing.T) {
	// Durations rounding to 0 on average must not divide by zero.
	sessions := []internal.Session{{DurationMinutes: 0, Content: "notes"}}
	s := Summarize(sessions)
	assert.Equal(t, 0, s.AvgDurationMinutes)
	assert.Equal(t, 0, s.Pace)
}

func TestDistinctDates(t *testing.T) {
	sessions := []internal.Session{
		{DateString: "2024-06-10"},
		{DateString: "2024-06-09"},
		{DateString: "2024-06-10"},
	}
	dates := DistinctDates(sessions)
	assert.Len(t, dates, 2)
	assert.Contains(t, dates, "2024-06-10")
	assert.Contains(t, dates, "2024-06-09")
}
