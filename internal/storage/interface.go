package storage

import (
	"context"
	"errors"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

// ErrNotFound is returned when a record does not exist or is owned by
// someone else. Handlers map it to 404.
var ErrNotFound = errors.New("storage: not found")

type SessionRepository interface {
	SaveSession(ctx context.Context, s *internal.Session) error
	GetSession(ctx context.Context, id string) (*internal.Session, error)
	UpdateSession(ctx context.Context, s *internal.Session) error
	DeleteSession(ctx context.Context, id string) error
	// ListSessions returns the owner's sessions sorted by CreatedAt
	// descending.
	ListSessions(ctx context.Context, ownerID string) ([]internal.Session, error)
}

type ResourceRepository interface {
	SaveResource(ctx context.Context, r *internal.Resource) error
	DeleteResource(ctx context.Context, id string) error
	// ListResources returns the owner's resources sorted by CreatedAt
	// descending.
	ListResources(ctx context.Context, ownerID string) ([]internal.Resource, error)
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
	ListUsers(ctx context.Context) ([]internal.User, error)
}

// Repositories bundles the three repository facets of one backend.
type Repositories struct {
	Sessions  SessionRepository
	Resources ResourceRepository
	Users     UserRepository
}
