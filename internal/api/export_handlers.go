package api

import (
	"encoding/csv"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExportSessions flattens the owner's sessions to CSV, newest first.
// The download is plain CSV; fancier spreadsheet formats are the
// consumer's problem.
func ExportSessions(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		sessions, err := app.Sessions().ListSessions(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sessions for export")
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="dailygrind-export.csv"`)

		w := csv.NewWriter(c.Writer)
		_ = w.Write([]string{"date", "time", "duration_minutes", "category", "mood", "is_emergency", "content"})
		for _, s := range sessions {
			_ = w.Write([]string{
				s.DateString,
				s.CreatedAt.Format("15:04"),
				strconv.Itoa(s.DurationMinutes),
				string(s.EffectiveCategory()),
				s.Mood,
				strconv.FormatBool(s.IsEmergency),
				s.Content,
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			app.Logger().Errorf("[request_id=%s] export write failed: %v", c.GetString("request_id"), err)
		}
	}
}
