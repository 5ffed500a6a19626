package api

import (
	"github.com/gin-gonic/gin"

	"github.com/RadyaI/learning-tracker-journal/internal/auth"
	"github.com/RadyaI/learning-tracker-journal/internal/config"
)

// NewRouter wires all routes behind the request-ID and auth
// middleware.
func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))

	r.POST("/api/sessions", PostSession(app))
	r.GET("/api/sessions", GetSessions(app))
	r.PUT("/api/sessions/:id", PutSession(app))
	r.DELETE("/api/sessions/:id", DeleteSession(app))

	r.GET("/api/stats", GetStats(app))
	r.GET("/api/stats/watch", WatchStats(app))

	r.POST("/api/resources", PostResource(app))
	r.GET("/api/resources", GetResources(app))
	r.DELETE("/api/resources/:id", DeleteResource(app))

	r.GET("/api/export", ExportSessions(app))

	return r
}
