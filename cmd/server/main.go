package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openshelf/shelfd/internal/application/service"
	"github.com/openshelf/shelfd/internal/config"
	"github.com/openshelf/shelfd/internal/infrastructure/monitoring"
	"github.com/openshelf/shelfd/internal/infrastructure/store"
	httpiface "github.com/openshelf/shelfd/internal/interfaces/http"
	"github.com/openshelf/shelfd/internal/interfaces/http/handlers"
	"github.com/openshelf/shelfd/internal/interfaces/http/middleware"
	"github.com/openshelf/shelfd/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, err := monitoring.NewZapLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := monitoring.InitTracer(&cfg.Tracing, appLogger)
	if err != nil {
		appLogger.Fatal(ctx, "failed to initialize tracer", err)
	}

	// Single registry shared by the middleware and the scrape handler.
	registry := metrics.NewRegistry(appLogger)
	registry.SetHistogramBuckets(middleware.MetricRequestDuration, metrics.DefBuckets)
	systemCollector := monitoring.NewSystemCollector(registry, appLogger)

	itemStore := store.NewCacheStore(appLogger)
	itemService := service.NewItemAppService(itemStore, appLogger)

	router := httpiface.NewRouter(
		cfg,
		appLogger,
		registry,
		handlers.NewItemHandler(itemService, appLogger),
		handlers.NewMetricsHandler(registry, systemCollector, appLogger),
		handlers.NewHealthHandler(itemStore),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(router.Start)
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := shutdownTracer(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "tracer shutdown failed", err)
		}
		return router.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal(context.Background(), "server exited", err)
	}
	appLogger.Info(context.Background(), "server stopped")
}
