// Package view is the view-model layer: it feeds raw session records
// into the stats core and exposes the derived values the frontend
// renders. Recompute is pure; Model adds the storage lookup and the
// live subscription on top of it.
package view

import (
	"context"
	"time"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/stats"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

// chartWindow is the trailing number of active days shown on the
// deep-work chart.
const chartWindow = 14

// Snapshot is the full derived state for one owner at one moment.
type Snapshot struct {
	Streak            int                       `json:"streak"`
	TotalMinutes      int                       `json:"total_minutes"`
	TotalHours        int                       `json:"total_hours"`
	Summary           stats.Summary             `json:"summary"`
	DayBuckets        []stats.DayBucket         `json:"day_buckets"`
	HourHistogram     [24]int                   `json:"hour_histogram"`
	CategoryHistogram map[internal.Category]int `json:"category_histogram"`
}

// Recompute derives a Snapshot from a session collection. Pure and
// deterministic given now; an empty collection yields a zero-valued
// snapshot.
func Recompute(sessions []internal.Session, now time.Time) Snapshot {
	return Snapshot{
		Streak:            stats.CurrentStreak(stats.DistinctDates(sessions), now),
		TotalMinutes:      stats.TotalMinutes(sessions),
		TotalHours:        stats.TotalHours(sessions),
		Summary:           stats.Summarize(sessions),
		DayBuckets:        stats.TailBuckets(stats.DayBuckets(sessions), chartWindow),
		HourHistogram:     stats.HourHistogram(sessions),
		CategoryHistogram: stats.CategoryHistogram(sessions),
	}
}

// Model binds the pure recomputation to a session repository and the
// storage change feed.
type Model struct {
	sessions storage.SessionRepository
	feed     *storage.Feed
	logger   internal.Logger
	now      func() time.Time
}

func NewModel(sessions storage.SessionRepository, feed *storage.Feed, logger internal.Logger) *Model {
	return &Model{sessions: sessions, feed: feed, logger: logger, now: time.Now}
}

// Snapshot loads the owner's sessions and recomputes the derived
// state.
func (m *Model) Snapshot(ctx context.Context, ownerID string) (Snapshot, error) {
	sessions, err := m.sessions.ListSessions(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	return Recompute(sessions, m.now()), nil
}

// Watch emits a snapshot for every change to the owner's records,
// starting with the current state, until ctx is done. Delivery is
// last-write-wins: the output channel holds one snapshot, and a
// newer one displaces an unconsumed older one, so a slow consumer
// only ever sees the latest state and superseded recomputations are
// discarded.
func (m *Model) Watch(ctx context.Context, ownerID string) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	events, cancel := m.feed.Subscribe(ownerID)

	push := func() {
		snap, err := m.Snapshot(ctx, ownerID)
		if err != nil {
			if ctx.Err() == nil {
				m.logger.Errorf("view: snapshot for %s failed: %v", ownerID, err)
			}
			return
		}
		for {
			select {
			case out <- snap:
				return
			default:
				// Drop the stale snapshot still sitting in the buffer.
				select {
				case <-out:
				default:
				}
			}
		}
	}

	go func() {
		defer cancel()
		defer close(out)
		push()
		for {
			select {
			case <-ctx.Done():
				return
			case <-events:
				push()
			}
		}
	}()

	return out
}
