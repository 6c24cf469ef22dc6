package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nairafund/pledge_lending_app/internal/core/domain"
)

// profileKey is the key used to store the resolved demo profile in the
// request context.
const profileKey = contextKey("profile")

// ProfileMiddleware resolves the :profileID path parameter into a
// domain.Profile, rejects unknown profiles, and enriches the request logger
// with the profile name.
func ProfileMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		profile, err := domain.ParseProfile(c.Param("profileID"))
		if err != nil {
			logger.Warn("Rejected request with unknown profile", slog.String("profile_id", c.Param("profileID")))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "profile must be 'fresh' or 'active'"})
			return
		}

		ctxWithProfile := context.WithValue(c.Request.Context(), profileKey, profile)
		enrichedLogger := logger.With(slog.String("profile", string(profile)))
		c.Request = c.Request.WithContext(ContextWithLogger(ctxWithProfile, enrichedLogger))

		c.Next()
	}
}

// GetProfileFromContext retrieves the resolved demo profile from the Gin
// context. It returns the profile and a boolean indicating if it was found.
func GetProfileFromContext(c *gin.Context) (domain.Profile, bool) {
	profile, ok := c.Request.Context().Value(profileKey).(domain.Profile)
	return profile, ok
}
