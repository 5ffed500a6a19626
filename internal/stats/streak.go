// Package stats holds the pure computations behind the journal's
// derived numbers: the consecutive-day streak and the aggregate
// summaries feeding the charts. Everything here is side-effect-free
// and deterministic given a fixed "now", so it can be exercised from
// the request path, the live watch loop, and the daily digest alike.
package stats

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// CurrentStreak returns the length of the maximal run of consecutive
// calendar days, ending at today or yesterday, covered by dates.
// dates holds YYYY-MM-DD strings, one per day with activity; order
// does not matter (the input is sorted defensively) and duplicates or
// unparseable entries must not crash the scan. now supplies the
// caller's wall clock; today and yesterday are its local calendar
// days.
func CurrentStreak(dates []string, now time.Time) int {
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return 0
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].After(parsed[j]) })

	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	mostRecent := parsed[0].Format(dateLayout)
	if mostRecent != today && mostRecent != yesterday {
		// Stale: the run does not reach the present, so it is broken.
		return 0
	}

	streak := 1
	prev := parsed[0]
	for _, d := range parsed[1:] {
		gap := prev.Sub(d)
		if gap == 0 {
			// Duplicate day. The data model guarantees distinct
			// dates upstream, but a duplicate here must neither
			// crash nor double count; stop the scan.
			break
		}
		if gap != 24*time.Hour {
			break
		}
		streak++
		prev = d
	}
	return streak
}
