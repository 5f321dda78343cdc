package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/internal/infrastructure/monitoring"
	"github.com/openshelf/shelfd/pkg/logger"
	"github.com/openshelf/shelfd/pkg/metrics"
)

// MetricsHandler serves the scrape endpoint.
type MetricsHandler struct {
	registry *metrics.Registry
	system   *monitoring.SystemCollector
	log      logger.Logger
}

// NewMetricsHandler creates the scrape handler. system may be nil when host
// gauges are not wanted (tests).
func NewMetricsHandler(registry *metrics.Registry, system *monitoring.SystemCollector, log logger.Logger) *MetricsHandler {
	return &MetricsHandler{registry: registry, system: system, log: log}
}

// Scrape serves GET on the metrics path: refresh system gauges, snapshot the
// registry, render the exposition text. A formatter fault is contained to
// this route as a 500; no scrape failure may take the process down.
func (h *MetricsHandler) Scrape(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error(c.Request.Context(), "metrics exposition failed", fmt.Errorf("%v", r))
			c.String(http.StatusInternalServerError, "metrics exposition failed")
			c.Abort()
		}
	}()

	if h.system != nil {
		h.system.Refresh(c.Request.Context())
	}

	body := metrics.Expose(h.registry.Snapshot())
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, metrics.ContentType, []byte(body))
}
