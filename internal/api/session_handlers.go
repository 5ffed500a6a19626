package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/RadyaI/learning-tracker-journal/internal/service"
	"github.com/RadyaI/learning-tracker-journal/internal/storage"
)

func PostSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.SessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		sess, err := service.CreateSession(c.Request.Context(), app.Sessions(), app.Feed(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save session")
			return
		}

		HandleSuccess(c, app.Logger(), 201, sess, nil)
	}
}

func GetSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		sessions, err := app.Sessions().ListSessions(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions")
			return
		}

		sessions = service.FilterSessions(sessions, c.Query("q"))

		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				HandleError(c, app.Logger(), errors.New("limit must be a non-negative integer"), 400, "Invalid limit")
				return
			}
			if limit < len(sessions) {
				sessions = sessions[:limit]
			}
		}

		HandleSuccess(c, app.Logger(), 200, sessions, map[string]any{"count": len(sessions)})
	}
}

func PutSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.SessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		sess, err := service.UpdateSession(c.Request.Context(), app.Sessions(), app.Feed(), user, c.Param("id"), &body)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Session not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update session")
			return
		}

		HandleSuccess(c, app.Logger(), 200, sess, nil)
	}
}

func DeleteSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		err := service.DeleteSession(c.Request.Context(), app.Sessions(), app.Feed(), user, c.Param("id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Session not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete session")
			return
		}

		HandleSuccess(c, app.Logger(), 200, nil, map[string]any{"deleted": c.Param("id")})
	}
}
