package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/auth"
	"daybook/internal/metrics"
	"daybook/internal/service"
)

const userIDKey = "userID"

// requireAuth verifies the bearer token and binds the user id for downstream
// handlers. Header problems are rejected without touching the token service.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			h.rejectAuth(c, err)
			return
		}

		userID, err := h.tokens.Verify(token)
		if err != nil {
			h.rejectAuth(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// requireAdmin must run after requireAuth. It loads the caller and lets only
// admins through.
func (h *Handler) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticatedUserID(c)
		if !ok {
			h.rejectAuth(c, auth.ErrAuthMissing)
			return
		}

		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, service.ErrUserNotFound) {
			h.logger.WithError(err).Error("admin gate: load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"error":   err.Error(),
			})
			return
		}
		if user == nil || !user.IsAdmin() {
			metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
			h.logger.WithField("user_id", userID).Warn("admin gate: access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Not an admin."})
			return
		}

		c.Next()
	}
}

func (h *Handler) rejectAuth(c *gin.Context, err error) {
	var reason, message string
	switch {
	case errors.Is(err, auth.ErrAuthMissing):
		reason, message = "missing", "No token provided."
	case errors.Is(err, auth.ErrAuthMalformed):
		reason, message = "malformed", "Malformed token."
	default:
		reason, message = "invalid", "Failed to authenticate token."
	}
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	h.logger.WithField("reason", reason).WithField("path", c.Request.URL.Path).Warn("authentication failed")
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": message})
}

func authenticatedUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(userIDKey)
	return userID, userID != ""
}
