package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"daybook/internal/auth"
	"daybook/internal/metrics"
	"daybook/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	profiles    service.ProfileService
	events      service.EventService
	documents   service.DocumentService
	tokens      *auth.TokenService
	store       Pinger
	logger      logrus.FieldLogger
	allowOrigin string
}

func NewHandler(
	users service.UserService,
	profiles service.ProfileService,
	events service.EventService,
	documents service.DocumentService,
	tokens *auth.TokenService,
	store Pinger,
	logger logrus.FieldLogger,
	allowOrigin string,
) *Handler {
	return &Handler{
		users:       users,
		profiles:    profiles,
		events:      events,
		documents:   documents,
		tokens:      tokens,
		store:       store,
		logger:      logger,
		allowOrigin: allowOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), metrics.Middleware(), corsMiddleware(h.allowOrigin))

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/api/health", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authed := router.Group("/", h.requireAuth())
	{
		authed.GET("/profile/:username", h.getProfile)
		authed.PUT("/profile/:username/update", h.updateProfile)
		authed.POST("/profile/:username/avatar", h.uploadAvatar)
		authed.GET("/api/userid/:username", h.resolveUserID)

		authed.GET("/events", h.listEvents)
		authed.POST("/events", h.createEvent)
		authed.PUT("/events/:eventId", h.updateEvent)
		authed.DELETE("/events/:eventId", h.deleteEvent)

		authed.GET("/api/documents", h.listDocuments)
		authed.POST("/api/documents/save", h.saveDocument)
		authed.GET("/api/documents/load/:docId", h.loadDocument)
		authed.DELETE("/api/documents/:docId", h.deleteDocument)
	}

	admin := authed.Group("/admin", h.requireAdmin())
	{
		admin.GET("/users", h.listUsers)
		admin.PUT("/users/:userId", h.updateUser)
		admin.DELETE("/users/:userId", h.deleteUser)
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

const requestIDHeader = "X-Request-ID"

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(requestIDHeader, requestID)

		c.Next()

		entry := h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request handled")
	}
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "store unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": "ok"})
}
