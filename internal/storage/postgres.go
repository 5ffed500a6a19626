package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- SessionRepository ---

func (p *PostgresStorage) SaveSession(ctx context.Context, s *internal.Session) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sessions (id, owner_id, created_at, date_string, duration_minutes, content, mood, is_emergency, category) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.OwnerID, s.CreatedAt, s.DateString, s.DurationMinutes, s.Content, s.Mood, s.IsEmergency, string(s.Category))
	if err != nil {
		p.logger.Errorf("failed to insert session: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetSession(ctx context.Context, id string) (*internal.Session, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, owner_id, created_at, date_string, duration_minutes, content, mood, is_emergency, category FROM sessions WHERE id = $1`, id)
	var s internal.Session
	if err := row.Scan(&s.ID, &s.OwnerID, &s.CreatedAt, &s.DateString, &s.DurationMinutes, &s.Content, &s.Mood, &s.IsEmergency, &s.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to fetch session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStorage) UpdateSession(ctx context.Context, s *internal.Session) error {
	// date_string, owner_id and created_at are deliberately not part
	// of the update set.
	tag, err := p.pool.Exec(ctx, `UPDATE sessions SET duration_minutes = $1, content = $2, mood = $3, is_emergency = $4, category = $5 WHERE id = $6`,
		s.DurationMinutes, s.Content, s.Mood, s.IsEmergency, string(s.Category), s.ID)
	if err != nil {
		p.logger.Errorf("failed to update session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteSession(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete session: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) ListSessions(ctx context.Context, ownerID string) ([]internal.Session, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, owner_id, created_at, date_string, duration_minutes, content, mood, is_emergency, category FROM sessions WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		p.logger.Errorf("failed to query sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	sessions := []internal.Session{}
	for rows.Next() {
		var s internal.Session
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.CreatedAt, &s.DateString, &s.DurationMinutes, &s.Content, &s.Mood, &s.IsEmergency, &s.Category); err != nil {
			p.logger.Errorf("failed to scan session: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// --- ResourceRepository ---

func (p *PostgresStorage) SaveResource(ctx context.Context, r *internal.Resource) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO resources (id, owner_id, title, url, type, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.OwnerID, r.Title, r.URL, r.Type, r.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert resource: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) DeleteResource(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete resource: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) ListResources(ctx context.Context, ownerID string) ([]internal.Resource, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, owner_id, title, url, type, created_at FROM resources WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		p.logger.Errorf("failed to query resources: %v", err)
		return nil, err
	}
	defer rows.Close()

	resources := []internal.Resource{}
	for rows.Next() {
		var r internal.Resource
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Title, &r.URL, &r.Type, &r.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan resource: %v", err)
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to fetch user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, token, name FROM users`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []internal.User{}
	for rows.Next() {
		var u internal.User
		if err := rows.Scan(&u.ID, &u.Token, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// --- Compile-time assertions ---
var _ SessionRepository = (*PostgresStorage)(nil)
var _ ResourceRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
