package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"Product_Catalog/internal/cache"
	"Product_Catalog/internal/cache/catalogCache"
	"Product_Catalog/internal/catalogService"
	"Product_Catalog/internal/config"
	"Product_Catalog/internal/http"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"
	"Product_Catalog/internal/ratelimit"
	"Product_Catalog/internal/store"
)

// cacheBackend is a cache that owns a resource released at shutdown
type cacheBackend interface {
	cache.Service
	io.Closer
}

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger, err := initializeLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	// Create internal log event for startup
	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Product Catalog API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":              cfg.Port,
			"db_driver":         cfg.DBDriver,
			"cache_type":        cfg.CacheType,
			"list_cache_ttl":    cfg.ListCacheTTL.Seconds(),
			"summary_cache_ttl": cfg.SummaryCacheTTL.Seconds(),
			"log_sink":          cfg.LogSink,
		},
	})

	catalogStore, err := store.Open(startupCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		appLogger.LogError(startupCtx, "store_init", "", "Failed to open catalog store", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer catalogStore.Close()

	cacheService, err := initializeCache(cfg)
	if err != nil {
		appLogger.LogError(startupCtx, "cache_init", "", "Failed to initialize cache", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer cacheService.Close()

	catalog := catalogCache.New(cacheService, catalogCache.Config{
		ListTTL:    cfg.ListCacheTTL,
		SummaryTTL: cfg.SummaryCacheTTL,
	}, appLogger)

	// A shared backend may still hold entries from before a restart
	if err := catalog.Invalidate(startupCtx); err != nil {
		appLogger.LogError(startupCtx, logger.OpCacheInvalidate, "", "Failed to clear stale catalog entries", err, models.LogSeverityMedium, nil)
	}

	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		cfg.GlobalRateLimitPerSec,
		cfg.GlobalRateLimitPerSec,
		cfg.PerIPRateLimitPerSec,
		cfg.PerIPRateLimitPerSec,
	)
	defer rateLimiter.Close()

	service := catalogService.NewService(catalogStore, catalog, appLogger)

	// Initialize HTTP handler
	handler := http.NewHandler(service, appLogger)

	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
	}()

	fmt.Printf("🚀 Product Catalog API server started on %s\n", addr)
	fmt.Println("📋 Available endpoints:")
	fmt.Println("  GET    /health                                      - Health check")
	fmt.Println("  GET    /metrics                                     - Prometheus metrics")
	fmt.Println("  GET    /departments, /categories, /products         - List entities")
	fmt.Println("  POST   /departments, /categories, /products         - Create entities")
	fmt.Println("  PUT    /products/{id}                               - Partially update a product")
	fmt.Println("  DELETE /departments/{id}, /categories/{id}, /products/{id}")
	fmt.Println("  GET    /products/summary/{report}                   - Aggregate reports")

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		appLogger.LogError(startupCtx, logger.OpServerStart, "", "Server failed to start", err, models.LogSeverityHigh, map[string]interface{}{"addr": addr})
		log.Printf("Server failed to start: %v", err)
		return
	}

	fmt.Println("\n🛑 Shutting down server...")

	shutdownCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())
	ctx, cancel := context.WithTimeout(shutdownCtx, cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(ctx, logger.OpServerShutdown, "", "Server shutdown error", err, models.LogSeverityMedium, nil)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("✅ Server shutdown completed")
	}
}

// initializeLogger picks the log sink; the database sink writes to a Postgres log table
func initializeLogger(cfg *config.Config) (logger.Service, error) {
	switch cfg.LogSink {
	case "stdout", "":
		return logger.NewConsoleLogger(cfg.LogLevel), nil
	case "database":
		db, err := logger.NewPostgresConnection(cfg.LogDatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to log database: %w", err)
		}
		return logger.NewDatabaseLogger(db), nil
	default:
		return nil, fmt.Errorf("unsupported log sink: %s", cfg.LogSink)
	}
}

func initializeCache(cfg *config.Config) (cacheBackend, error) {
	switch cfg.CacheType {
	case "redis":
		return cache.NewRedisCache(cfg.RedisURL)
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
