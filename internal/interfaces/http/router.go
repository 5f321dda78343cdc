// Package http wires the Gin engine: middleware chain, routes and server
// lifecycle.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/internal/config"
	"github.com/openshelf/shelfd/internal/interfaces/http/handlers"
	"github.com/openshelf/shelfd/internal/interfaces/http/middleware"
	"github.com/openshelf/shelfd/pkg/constants"
	"github.com/openshelf/shelfd/pkg/logger"
	"github.com/openshelf/shelfd/pkg/metrics"
)

// Router owns the Gin engine and the HTTP server lifecycle.
type Router struct {
	engine         *gin.Engine
	config         *config.Config
	logger         logger.Logger
	registry       *metrics.Registry
	itemHandler    *handlers.ItemHandler
	metricsHandler *handlers.MetricsHandler
	healthHandler  *handlers.HealthHandler
	server         *http.Server
}

// NewRouter creates the router. Routes are registered on Start.
func NewRouter(
	cfg *config.Config,
	log logger.Logger,
	registry *metrics.Registry,
	itemHandler *handlers.ItemHandler,
	metricsHandler *handlers.MetricsHandler,
	healthHandler *handlers.HealthHandler,
) *Router {
	if cfg.Server.Environment == constants.EnvironmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	return &Router{
		engine:         gin.New(),
		config:         cfg,
		logger:         log,
		registry:       registry,
		itemHandler:    itemHandler,
		metricsHandler: metricsHandler,
		healthHandler:  healthHandler,
	}
}

// SetupRoutes installs the middleware chain and all routes. Recovery wraps
// the instrumentation middleware so panics are observed before they are
// turned into 500s.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Tracing())
	r.engine.Use(middleware.Logging(r.logger))
	r.engine.Use(middleware.Observability(r.registry, r.config.Metrics.Path))

	corsConfig := cors.Config{
		AllowOrigins:  r.config.Server.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", constants.HeaderRequestID},
		ExposeHeaders: []string{constants.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	r.engine.Use(cors.New(corsConfig))

	r.engine.GET("/health", r.healthHandler.HealthCheck)
	r.engine.GET("/ready", r.healthHandler.ReadinessCheck)
	r.engine.GET("/live", r.healthHandler.LivenessCheck)

	r.engine.GET(r.config.Metrics.Path, r.metricsHandler.Scrape)

	if r.config.Server.Environment != constants.EnvironmentProduction {
		pprof.Register(r.engine)
	}

	r.engine.GET("/", r.itemHandler.Index)

	items := r.engine.Group("/items")
	{
		items.POST("", r.itemHandler.CreateItem)
		items.GET("", r.itemHandler.ListItems)
		items.GET("/:id", r.itemHandler.GetItem)
		items.PUT("/:id", r.itemHandler.UpdateItem)
		items.DELETE("/:id", r.itemHandler.DeleteItem)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "The requested resource was not found",
		})
	})
}

// Engine exposes the configured engine for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Start registers routes and serves until Stop or a listen error.
func (r *Router) Start() error {
	r.SetupRoutes()

	addr := r.config.Server.Address()
	r.server = &http.Server{
		Addr:         addr,
		Handler:      r.engine,
		ReadTimeout:  time.Duration(r.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(r.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(r.config.Server.IdleTimeout) * time.Second,
	}

	r.logger.Info(context.Background(), "starting HTTP server", logger.Fields{"address": addr})

	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (r *Router) Stop(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	r.logger.Info(ctx, "stopping HTTP server")
	return r.server.Shutdown(ctx)
}
