package storage

import (
	"fmt"
	"io"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/config"
)

// New builds the repository set for the configured backend. The
// returned closer flushes and releases the backend.
func New(cfg *config.Config, logger internal.Logger) (Repositories, io.Closer, error) {
	switch cfg.StorageBackend {
	case "file":
		s, err := NewFileStorage(cfg.SessionsFile, cfg.ResourcesFile, cfg.UsersFile, logger)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{Sessions: s, Resources: s, Users: s}, s, nil
	case "sqlite":
		s, err := NewSQLiteStorage(cfg.SQLitePath, logger)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{Sessions: s, Resources: s, Users: s}, s, nil
	case "postgres":
		s, err := NewPostgresStorage(cfg.PostgresDSN, logger)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{Sessions: s, Resources: s, Users: s}, s, nil
	default:
		return Repositories{}, nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
