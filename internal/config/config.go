package config

import (
	"errors"
	"os"
	"sync"
)

type Config struct {
	Env            string
	LogLevel       string
	ListenAddr     string
	StorageBackend string
	PostgresDSN    string
	SQLitePath     string
	SessionsFile   string
	ResourcesFile  string
	UsersFile      string
	AuthServiceURL string
	LocalAuthToken string
	DigestTime     string // HH:MM local time for the daily digest, empty disables it
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:            getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			ListenAddr:     getEnv("LISTEN_ADDR", ":8088"),
			StorageBackend: getEnv("STORAGE_BACKEND", "file"),
			PostgresDSN:    getEnv("POSTGRES_DSN", ""),
			SQLitePath:     getEnv("SQLITE_PATH", "data/dailygrind.db"),
			SessionsFile:   getEnv("SESSIONS_FILE", "data/sessions.json"),
			ResourcesFile:  getEnv("RESOURCES_FILE", "data/resources.json"),
			UsersFile:      getEnv("USERS_FILE", "data/users.json"),
			AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
			LocalAuthToken: getEnv("LOCAL_AUTH_TOKEN", "MOCK-TOKEN"),
			DigestTime:     getEnv("DIGEST_TIME", "06:00"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "file":
		if c.SessionsFile == "" || c.ResourcesFile == "" || c.UsersFile == "" {
			return errors.New("File storage requires SESSIONS_FILE, RESOURCES_FILE and USERS_FILE to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
