// Package digest runs the scheduled daily sweep that logs each
// user's streak standing. It reuses the same pure stats core as the
// request path, outside of any HTTP context.
package digest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/stats"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

type Digest struct {
	users    storage.UserRepository
	sessions storage.SessionRepository
	logger   internal.Logger
	cron     *cron.Cron
}

func New(users storage.UserRepository, sessions storage.SessionRepository, logger internal.Logger) *Digest {
	return &Digest{
		users:    users,
		sessions: sessions,
		logger:   logger,
		cron:     cron.New(cron.WithLocation(time.Local)),
	}
}

// Schedule registers the daily run at the given HH:MM local time and
// starts the scheduler.
func (d *Digest) Schedule(timeStr string) error {
	spec, err := dailySpec(timeStr)
	if err != nil {
		return err
	}
	if _, err := d.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d.Run(ctx)
	}); err != nil {
		return err
	}
	d.cron.Start()
	return nil
}

func (d *Digest) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

// Run sweeps all users once. One user's failure is logged and skipped
// so it cannot abort the rest of the sweep.
func (d *Digest) Run(ctx context.Context) {
	users, err := d.users.ListUsers(ctx)
	if err != nil {
		d.logger.Errorf("digest: failed to list users: %v", err)
		return
	}

	now := time.Now()
	for _, u := range users {
		sessions, err := d.sessions.ListSessions(ctx, u.ID)
		if err != nil {
			d.logger.Errorf("digest: failed to list sessions for %s: %v", u.ID, err)
			continue
		}
		streak := stats.CurrentStreak(stats.DistinctDates(sessions), now)
		d.logger.Infof("digest: user=%s streak=%d sessions=%d total_hours=%d",
			u.ID, streak, len(sessions), stats.TotalHours(sessions))
	}
}

func dailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
