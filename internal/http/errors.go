package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/service"
)

// respondError maps service errors onto status codes. Unexpected errors are
// returned as 500 with the underlying message.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
	case errors.Is(err, service.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
	case errors.Is(err, service.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Document not found"})
	case errors.Is(err, service.ErrIncorrectPassword):
		c.JSON(http.StatusForbidden, gin.H{"message": "Incorrect password"})
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Uploads are not enabled"})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("store timeout")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database operation timed out", "error": err.Error()})
	default:
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
}
