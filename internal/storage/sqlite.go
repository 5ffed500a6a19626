package storage

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RadyaI/learning-tracker-journal/internal"
)

// SQLiteStorage backs the repositories with a single-file database,
// the middle ground between the JSON files and a postgres instance.
type SQLiteStorage struct {
	db     *gorm.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, log internal.Logger) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Errorf("failed to open sqlite db: %v", err)
		return nil, err
	}
	if err := db.AutoMigrate(&internal.Session{}, &internal.Resource{}, &internal.User{}); err != nil {
		log.Errorf("failed to migrate sqlite db: %v", err)
		return nil, err
	}
	return &SQLiteStorage{db: db, logger: log}, nil
}

func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- SessionRepository ---

func (s *SQLiteStorage) SaveSession(ctx context.Context, sess *internal.Session) error {
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		s.logger.Errorf("failed to insert session: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*internal.Session, error) {
	var sess internal.Session
	err := s.db.WithContext(ctx).First(&sess, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to fetch session: %v", err)
		return nil, err
	}
	return &sess, nil
}

func (s *SQLiteStorage) UpdateSession(ctx context.Context, sess *internal.Session) error {
	// Select restricts the update to the editable columns; DateString,
	// OwnerID and CreatedAt stay as written at creation.
	res := s.db.WithContext(ctx).Model(&internal.Session{}).
		Where("id = ?", sess.ID).
		Select("DurationMinutes", "Content", "Mood", "IsEmergency", "Category").
		Updates(sess)
	if res.Error != nil {
		s.logger.Errorf("failed to update session: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) DeleteSession(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&internal.Session{}, "id = ?", id)
	if res.Error != nil {
		s.logger.Errorf("failed to delete session: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) ListSessions(ctx context.Context, ownerID string) ([]internal.Session, error) {
	sessions := []internal.Session{}
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		s.logger.Errorf("failed to query sessions: %v", err)
		return nil, err
	}
	return sessions, nil
}

// --- ResourceRepository ---

func (s *SQLiteStorage) SaveResource(ctx context.Context, r *internal.Resource) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		s.logger.Errorf("failed to insert resource: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) DeleteResource(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&internal.Resource{}, "id = ?", id)
	if res.Error != nil {
		s.logger.Errorf("failed to delete resource: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStorage) ListResources(ctx context.Context, ownerID string) ([]internal.Resource, error) {
	resources := []internal.Resource{}
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&resources).Error
	if err != nil {
		s.logger.Errorf("failed to query resources: %v", err)
		return nil, err
	}
	return resources, nil
}

// --- UserRepository ---

func (s *SQLiteStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	var u internal.User
	err := s.db.WithContext(ctx).First(&u, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to fetch user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	users := []internal.User{}
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		s.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	return users, nil
}

// --- Compile-time assertions ---
var _ SessionRepository = (*SQLiteStorage)(nil)
var _ ResourceRepository = (*SQLiteStorage)(nil)
var _ UserRepository = (*SQLiteStorage)(nil)
