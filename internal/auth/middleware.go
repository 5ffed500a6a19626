package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RadyaI/learning-tracker-journal/internal"
	"github.com/RadyaI/learning-tracker-journal/internal/config"
)

// Middleware resolves the bearer token into a user and stores it on
// the request context under "user".
func Middleware(provider Provider, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			var user *internal.User
			var err error
			if cfg.Env == "development" {
				user, err = provider.ValidateTokenLocal(c.Request.Context(), token)
			} else {
				user, err = provider.ValidateTokenRemote(c.Request.Context(), token)
			}
			if err == nil {
				c.Set("user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
