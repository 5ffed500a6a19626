package api

import (
	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
	"github.com/RadyaI/learning-tracker-journal/internal/view"
)

type App interface {
	Logger() internal.Logger
	Sessions() storage.SessionRepository
	Resources() storage.ResourceRepository
	Feed() *storage.Feed
	View() *view.Model
}
