package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

func GetStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		snap, err := app.View().Snapshot(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute stats")
			return
		}

		HandleSuccess(c, app.Logger(), 200, snap, nil)
	}
}

// WatchStats streams derived-state snapshots over server-sent events:
// one event on connect, then one per change to the owner's records.
// The view layer coalesces bursts, so a slow client only receives the
// latest snapshot.
func WatchStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		snapshots := app.View().Watch(c.Request.Context(), user.ID)
		c.Stream(func(w io.Writer) bool {
			snap, ok := <-snapshots
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		})
	}
}
