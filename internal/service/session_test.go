package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

func setupRepo(t *testing.T) (*storage.FileStorage, *storage.Feed) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "sessions.json"),
		filepath.Join(dir, "resources.json"),
		filepath.Join(dir, "users.json"),
		internal.NopLogger{},
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, storage.NewFeed()
}

var testUser = &internal.User{ID: "u1", Token: "MOCK-TOKEN", Name: "Test User"}

func TestValidateSessionRequest(t *testing.T) {
	assert.NoError(t, ValidateSessionRequest(&SessionRequest{Content: "learned go", DurationMinutes: 30}))
	assert.Error(t, ValidateSessionRequest(&SessionRequest{DurationMinutes: 30}), "content required")
	assert.Error(t, ValidateSessionRequest(&SessionRequest{Content: "x"}), "duration required")
	assert.Error(t, ValidateSessionRequest(&SessionRequest{Content: "x", DurationMinutes: -5}))
	assert.Error(t, ValidateSessionRequest(&SessionRequest{Content: "x", DurationMinutes: 30, Mood: "dog1"}))
}

func TestCreateSession_DerivesWriteTimeFields(t *testing.T) {
	repo, feed := setupRepo(t)
	ctx := context.Background()

	sess, err := CreateSession(ctx, repo, feed, testUser, &SessionRequest{Content: "quick check", DurationMinutes: 5})
	assert.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "u1", sess.OwnerID)
	assert.Equal(t, time.Now().Format("2006-01-02"), sess.DateString)
	assert.True(t, sess.IsEmergency)
	assert.Equal(t, internal.CategoryQuickNote, sess.Category)
	assert.Contains(t, internal.Moods, sess.Mood)

	long, err := CreateSession(ctx, repo, feed, testUser, &SessionRequest{Content: "deep dive", DurationMinutes: 90, Mood: "cat3"})
	assert.NoError(t, err)
	assert.False(t, long.IsEmergency)
	assert.Equal(t, internal.CategoryGrindMaster, long.Category)
	assert.Equal(t, "cat3", long.Mood)
}

func TestCreateSession_PublishesChange(t *testing.T) {
	repo, feed := setupRepo(t)
	ch, cancel := feed.Subscribe("u1")
	defer cancel()

	_, err := CreateSession(context.Background(), repo, feed, testUser, &SessionRequest{Content: "x", DurationMinutes: 10})
	assert.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change notification after create")
	}
}

func TestUpdateSession_RederivesButKeepsDateString(t *testing.T) {
	repo, feed := setupRepo(t)
	ctx := context.Background()

	created, err := CreateSession(ctx, repo, feed, testUser, &SessionRequest{Content: "short", DurationMinutes: 5})
	assert.NoError(t, err)
	originalDate := created.DateString
	originalCreatedAt := created.CreatedAt

	updated, err := UpdateSession(ctx, repo, feed, testUser, created.ID, &SessionRequest{Content: "went longer", DurationMinutes: 45})
	assert.NoError(t, err)
	assert.Equal(t, "went longer", updated.Content)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.False(t, updated.IsEmergency)
	assert.Equal(t, internal.CategoryDeepLearning, updated.Category)
	// The grouping key and creation time never move on edit.
	assert.Equal(t, originalDate, updated.DateString)
	assert.Equal(t, originalCreatedAt, updated.CreatedAt)
}

func TestUpdateSession_ForeignRecordIsNotFound(t *testing.T) {
	repo, feed := setupRepo(t)
	ctx := context.Background()

	created, err := CreateSession(ctx, repo, feed, testUser, &SessionRequest{Content: "mine", DurationMinutes: 30})
	assert.NoError(t, err)

	intruder := &internal.User{ID: "u2"}
	_, err = UpdateSession(ctx, repo, feed, intruder, created.ID, &SessionRequest{Content: "theirs", DurationMinutes: 10})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	repo, feed := setupRepo(t)
	ctx := context.Background()

	created, err := CreateSession(ctx, repo, feed, testUser, &SessionRequest{Content: "bye", DurationMinutes: 10})
	assert.NoError(t, err)

	intruder := &internal.User{ID: "u2"}
	assert.ErrorIs(t, DeleteSession(ctx, repo, feed, intruder, created.ID), storage.ErrNotFound)

	assert.NoError(t, DeleteSession(ctx, repo, feed, testUser, created.ID))
	assert.ErrorIs(t, DeleteSession(ctx, repo, feed, testUser, created.ID), storage.ErrNotFound)
}

func TestFilterSessions(t *testing.T) {
	sessions := []internal.Session{
		{ID: "1", Content: "Learned Go generics"},
		{ID: "2", Content: "math homework"},
		{ID: "3", Content: "more go practice"},
	}
	assert.Len(t, FilterSessions(sessions, ""), 3)
	hits := FilterSessions(sessions, "GO")
	assert.Len(t, hits, 2)
	assert.Equal(t, "1", hits[0].ID)
	assert.Equal(t, "3", hits[1].ID)
	assert.Empty(t, FilterSessions(sessions, "rust"))
}

func TestValidateResourceRequest(t *testing.T) {
	assert.NoError(t, ValidateResourceRequest(&ResourceRequest{Title: "Go blog", URL: "https://go.dev/blog", Type: "article"}))
	assert.Error(t, ValidateResourceRequest(&ResourceRequest{URL: "https://go.dev", Type: "article"}))
	assert.Error(t, ValidateResourceRequest(&ResourceRequest{Title: "x", URL: "not a url", Type: "article"}))
	assert.Error(t, ValidateResourceRequest(&ResourceRequest{Title: "x", URL: "https://a.dev", Type: "banana"}))
}

func TestResourceLifecycle(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	res, err := CreateResource(ctx, repo, testUser, &ResourceRequest{Title: "Tour", URL: "https://go.dev/tour", Type: "tool"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	intruder := &internal.User{ID: "u2"}
	assert.ErrorIs(t, DeleteResource(ctx, repo, intruder, res.ID), storage.ErrNotFound)
	assert.NoError(t, DeleteResource(ctx, repo, testUser, res.ID))
}
