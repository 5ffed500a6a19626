package stats

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

// TotalMinutes sums the duration of all sessions.
func TotalMinutes(sessions []internal.Session) int {
	total := 0
	for _, s := range sessions {
		total += s.DurationMinutes
	}
	return total
}

// TotalHours is the whole-hour floor of TotalMinutes.
func TotalHours(sessions []internal.Session) int {
	return TotalMinutes(sessions) / 60
}

// DayBucket is one calendar day's worth of activity.
type DayBucket struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
	TotalChars   int    `json:"total_chars"`
}

// DayBuckets groups sessions by their DateString, summing duration
// and note length per day, ordered ascending by date.
func DayBuckets(sessions []internal.Session) []DayBucket {
	byDate := make(map[string]*DayBucket)
	for _, s := range sessions {
		b, ok := byDate[s.DateString]
		if !ok {
			b = &DayBucket{Date: s.DateString}
			byDate[s.DateString] = b
		}
		b.TotalMinutes += s.DurationMinutes
		b.TotalChars += utf8.RuneCountInString(s.Content)
	}

	buckets := make([]DayBucket, 0, len(byDate))
	for _, b := range byDate {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// TailBuckets returns the trailing n entries of buckets, for chart
// windows like "last 14 days with activity".
func TailBuckets(buckets []DayBucket, n int) []DayBucket {
	if n <= 0 || len(buckets) <= n {
		return buckets
	}
	return buckets[len(buckets)-n:]
}

// HourHistogram counts sessions per local starting hour. Sessions
// without a timestamp are excluded.
func HourHistogram(sessions []internal.Session) [24]int {
	var hist [24]int
	for _, s := range sessions {
		if s.CreatedAt.IsZero() {
			continue
		}
		hist[s.CreatedAt.Hour()]++
	}
	return hist
}

// CategoryHistogram counts sessions per focus tier, deriving the tier
// from duration for records that predate the stored category field.
// Tiers with zero occurrences are omitted.
func CategoryHistogram(sessions []internal.Session) map[internal.Category]int {
	hist := make(map[internal.Category]int)
	for _, s := range sessions {
		hist[s.EffectiveCategory()]++
	}
	return hist
}

// Summary is the headline card row of the stats page.
type Summary struct {
	TotalSessions      int `json:"total_sessions"`
	AvgDurationMinutes int `json:"avg_duration_minutes"`
	AvgChars           int `json:"avg_chars"`
	// Pace is average characters written per average minute spent.
	Pace int `json:"pace"`
}

// Summarize computes the summary statistics. Every value is zero for
// an empty input, and the pace guard keeps a zero average duration
// from dividing by zero.
func Summarize(sessions []internal.Session) Summary {
	n := len(sessions)
	if n == 0 {
		return Summary{}
	}

	totalChars := 0
	for _, s := range sessions {
		totalChars += utf8.RuneCountInString(s.Content)
	}

	avgDuration := int(math.Round(float64(TotalMinutes(sessions)) / float64(n)))
	avgChars := int(math.Round(float64(totalChars) / float64(n)))

	pace := 0
	if avgDuration > 0 {
		pace = int(math.Round(float64(avgChars) / float64(avgDuration)))
	}

	return Summary{
		TotalSessions:      n,
		AvgDurationMinutes: avgDuration,
		AvgChars:           avgChars,
		Pace:               pace,
	}
}

// DistinctDates returns the unique DateString values in sessions, in
// no particular order. Feed for CurrentStreak.
func DistinctDates(sessions []internal.Session) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if _, ok := seen[s.DateString]; ok {
			continue
		}
		seen[s.DateString] = struct{}{}
		dates = append(dates, s.DateString)
	}
	return dates
}
