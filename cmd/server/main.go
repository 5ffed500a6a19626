package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/api"
	"github.com/RadyaI/learning-tracker-journal/internal/auth"
	"github.com/RadyaI/learning-tracker-journal/internal/config"
	"github.com/RadyaI/learning-tracker-journal/internal/digest"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
	"github.com/RadyaI/learning-tracker-journal/internal/view"
)

type app struct {
	logger internal.Logger
	repos  storage.Repositories
	feed   *storage.Feed
	vm     *view.Model
}

func (a *app) Logger() internal.Logger               { return a.logger }
func (a *app) Sessions() storage.SessionRepository   { return a.repos.Sessions }
func (a *app) Resources() storage.ResourceRepository { return a.repos.Resources }
func (a *app) Feed() *storage.Feed                   { return a.feed }
func (a *app) View() *view.Model                     { return a.vm }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.StorageBackend == "file" {
		ensureFileBackend(cfg)
	}

	repos, closer, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer closer.Close()

	feed := storage.NewFeed()
	vm := view.NewModel(repos.Sessions, feed, logger)
	a := &app{logger: logger, repos: repos, feed: feed, vm: vm}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(repos.Users, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.DigestTime != "" {
		d := digest.New(repos.Users, repos.Sessions, logger)
		if err := d.Schedule(cfg.DigestTime); err != nil {
			logger.Fatalf("failed to schedule digest: %v", err)
		}
		defer d.Stop()
	}

	r := api.NewRouter(a, provider, cfg)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		logger.Infof("server running on %s (storage=%s env=%s)", cfg.ListenAddr, cfg.StorageBackend, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}

// ensureFileBackend creates the data directory and a default dev user
// so a fresh checkout can serve requests immediately.
func ensureFileBackend(cfg *config.Config) {
	dir := filepath.Dir(cfg.SessionsFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	if _, err := os.Stat(cfg.UsersFile); os.IsNotExist(err) {
		seed := `[{"id":"u1","token":"` + cfg.LocalAuthToken + `","name":"Demo User"}]`
		_ = os.WriteFile(cfg.UsersFile, []byte(seed), 0644)
	}
}
