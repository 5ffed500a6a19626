package digest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

type recordingLogger struct {
	internal.NopLogger
	infos  []string
	errors []string
}

func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.infos = append(l.infos, format)
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, format)
}

func TestRun_SweepsAllUsers(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	err := os.WriteFile(usersFile, []byte(`[
		{"id":"u1","token":"t1","name":"A"},
		{"id":"u2","token":"t2","name":"B"}
	]`), 0644)
	assert.NoError(t, err)

	store, err := storage.NewFileStorage(
		filepath.Join(dir, "sessions.json"),
		filepath.Join(dir, "resources.json"),
		usersFile,
		internal.NopLogger{},
	)
	assert.NoError(t, err)
	defer store.Close()

	now := time.Now()
	assert.NoError(t, store.SaveSession(context.Background(), &internal.Session{
		ID: "s1", OwnerID: "u1", CreatedAt: now,
		DateString: now.Format("2006-01-02"), DurationMinutes: 60, Content: "x",
	}))

	logger := &recordingLogger{}
	d := New(store, store, logger)
	d.Run(context.Background())

	// One digest line per user, including the one with zero sessions.
	assert.Len(t, logger.infos, 2)
}

// flakySessionRepo fails ListSessions for one owner and delegates the
// rest.
type flakySessionRepo struct {
	storage.SessionRepository
	failOwner string
}

func (r *flakySessionRepo) ListSessions(ctx context.Context, ownerID string) ([]internal.Session, error) {
	if ownerID == r.failOwner {
		return nil, errors.New("backend unavailable")
	}
	return r.SessionRepository.ListSessions(ctx, ownerID)
}

func TestRun_OneUserFailingDoesNotAbortSweep(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "users.json")
	err := os.WriteFile(usersFile, []byte(`[
		{"id":"u1","token":"t1","name":"A"},
		{"id":"u2","token":"t2","name":"B"},
		{"id":"u3","token":"t3","name":"C"}
	]`), 0644)
	assert.NoError(t, err)

	store, err := storage.NewFileStorage(
		filepath.Join(dir, "sessions.json"),
		filepath.Join(dir, "resources.json"),
		usersFile,
		internal.NopLogger{},
	)
	assert.NoError(t, err)
	defer store.Close()

	logger := &recordingLogger{}
	d := New(store, &flakySessionRepo{SessionRepository: store, failOwner: "u2"}, logger)
	d.Run(context.Background())

	// The failing user is logged and skipped; the other two still get
	// their digest lines.
	assert.Len(t, logger.infos, 2)
	assert.Len(t, logger.errors, 1)
}

func TestDailySpec(t *testing.T) {
	spec, err := dailySpec("06:30")
	assert.NoError(t, err)
	assert.Equal(t, "30 6 * * *", spec)

	_, err = dailySpec("25:00")
	assert.Error(t, err)
	_, err = dailySpec("6")
	assert.Error(t, err)
	_, err = dailySpec("06:61")
	assert.Error(t, err)
}
