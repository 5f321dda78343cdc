package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/internal/infrastructure/store"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	store *store.CacheStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s *store.CacheStore) *HealthHandler {
	return &HealthHandler{store: s}
}

// HealthCheck serves GET /health.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"items":     h.store.Len(),
	})
}

// LivenessCheck serves GET /live.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// ReadinessCheck serves GET /ready. The store is in-process, so readiness
// follows liveness.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
