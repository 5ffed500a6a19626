package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

var validate = validator.New()

const emergencyThresholdMinutes = 5

type SessionRequest struct {
	Content         string `json:"content" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1"`
	Mood            string `json:"mood,omitempty" validate:"omitempty,oneof=cat1 cat2 cat3 cat4 cat5"`
}

func ValidateSessionRequest(req *SessionRequest) error {
	return validate.Struct(req)
}

// CreateSession derives the write-time fields and stores the record.
// DateString is fixed here, from the server's local calendar day, and
// is never recomputed on later edits.
func CreateSession(ctx context.Context, repo storage.SessionRepository, feed *storage.Feed, user *internal.User, req *SessionRequest) (*internal.Session, error) {
	now := time.Now()
	mood := req.Mood
	if mood == "" {
		mood = internal.Moods[rand.Intn(len(internal.Moods))]
	}
	sess := &internal.Session{
		ID:              uuid.NewString(),
		OwnerID:         user.ID,
		CreatedAt:       now,
		DateString:      now.Format("2006-01-02"),
		DurationMinutes: req.DurationMinutes,
		Content:         req.Content,
		Mood:            mood,
		IsEmergency:     req.DurationMinutes <= emergencyThresholdMinutes,
		Category:        internal.DeriveCategory(req.DurationMinutes),
	}
	if err := repo.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	feed.Publish(user.ID)
	return sess, nil
}

// UpdateSession applies an owner's edit. Content, duration and mood
// change; IsEmergency and Category are re-derived from the new
// duration; DateString, OwnerID and CreatedAt stay as written at
// creation. Returns storage.ErrNotFound for missing or foreign
// records so the handler cannot leak their existence.
func UpdateSession(ctx context.Context, repo storage.SessionRepository, feed *storage.Feed, user *internal.User, id string, req *SessionRequest) (*internal.Session, error) {
	sess, err := repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != user.ID {
		return nil, storage.ErrNotFound
	}

	sess.Content = req.Content
	sess.DurationMinutes = req.DurationMinutes
	if req.Mood != "" {
		sess.Mood = req.Mood
	}
	sess.IsEmergency = req.DurationMinutes <= emergencyThresholdMinutes
	sess.Category = internal.DeriveCategory(req.DurationMinutes)

	if err := repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}
	feed.Publish(user.ID)
	return sess, nil
}

// DeleteSession removes an owner's record. The yes/no confirmation
// belongs to the presentation layer; by the time the request arrives
// here it is final.
func DeleteSession(ctx context.Context, repo storage.SessionRepository, feed *storage.Feed, user *internal.User, id string) error {
	sess, err := repo.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if sess.OwnerID != user.ID {
		return storage.ErrNotFound
	}
	if err := repo.DeleteSession(ctx, id); err != nil {
		return err
	}
	feed.Publish(user.ID)
	return nil
}

// FilterSessions narrows a session list to those whose content
// contains the query, case-insensitively. Empty query returns the
// input unchanged.
func FilterSessions(sessions []internal.Session, query string) []internal.Session {
	if query == "" {
		return sessions
	}
	filtered := make([]internal.Session, 0, len(sessions))
	for _, s := range sessions {
		if containsFold(s.Content, query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
