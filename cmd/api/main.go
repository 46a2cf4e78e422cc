package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guindo/fireplan-api/config"
	"github.com/guindo/fireplan-api/internal/cache"
	"github.com/guindo/fireplan-api/internal/handlers"
	"github.com/guindo/fireplan-api/internal/middleware"
	"github.com/guindo/fireplan-api/internal/repository"
	"github.com/guindo/fireplan-api/internal/services"
	"github.com/guindo/fireplan-api/pkg/db"
	"github.com/guindo/fireplan-api/pkg/httpclient"
	"github.com/guindo/fireplan-api/pkg/llm"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	"github.com/guindo/fireplan-api/pkg/profiling"
	"github.com/guindo/fireplan-api/pkg/tracing"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.Environment,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting FIRE Planning API",
		zap.String("version", handlers.APIVersion),
		zap.String("environment", cfg.Server.Environment),
		zap.String("model", cfg.AI.Model),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:       cfg.Observability.ServiceName,
		ServiceNamespace:  cfg.Observability.ServiceNamespace,
		ServiceVersion:    cfg.Observability.ServiceVersion,
		ServiceInstanceID: cfg.Observability.ServiceInstanceID,
		Environment:       cfg.Server.Environment,
		Endpoint:          cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, profiling.Service{
		Name:        cfg.Observability.ServiceName,
		Namespace:   cfg.Observability.ServiceNamespace,
		Version:     cfg.Observability.ServiceVersion,
		InstanceID:  cfg.Observability.ServiceInstanceID,
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	// Start infrastructure metrics collection
	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	// History store is optional
	var (
		pool  *pgxpool.Pool
		store repository.AnalysisStore
	)
	if cfg.HistoryEnabled() {
		// Migrations run separately: go run ./cmd/migrate
		pool, err = db.NewPool(context.Background(), db.PoolConfig{
			URL:        cfg.Database.URL,
			MaxConns:   cfg.Database.MaxConns,
			MinConns:   cfg.Database.MinConns,
			CACertPath: cfg.Database.CACertPath,
		})
		if err != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
		}
		defer db.Close(pool)
		store = repository.NewAnalysisRepository(pool)
		logger.Info("Analysis history enabled")
	} else {
		logger.Info("Analysis history disabled: DATABASE_URL not set")
	}

	if cfg.AI.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set, analysis requests will fail")
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.AI.Timeout
	aiClient := llm.NewClient(llm.Config{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
		MaxRetries:  cfg.AI.MaxRetries,
		HTTPClient:  httpclient.NewStandardClient(httpCfg),
	})

	// Initialize services
	analysisService := services.NewAnalysisService(aiClient, cache.NewAnalysisCache(cfg.Cache.AnalysisTTL), store)

	// Initialize handlers
	deps := routerDeps{
		health:   handlers.NewHealthHandler(aiClient.Model(), cfg.AI.APIKey != "", store != nil),
		analysis: handlers.NewAnalysisHandler(analysisService),

		analyzeLimiter: middleware.NewRateLimiter("analyze", middleware.PerMinute(10), 10),
		batchLimiter:   middleware.NewRateLimiter("analyze_all", middleware.PerHour(3), 3),
		readLimiter:    middleware.NewRateLimiter("history", middleware.PerMinute(60), 30),
	}
	defer deps.analyzeLimiter.Stop()
	defer deps.batchLimiter.Stop()
	defer deps.readLimiter.Stop()

	if store != nil {
		deps.history = handlers.NewHistoryHandler(services.NewHistoryService(store))
	}

	gin.SetMode(cfg.Server.GinMode)
	router, err := setupRouter(cfg, deps)
	if err != nil {
		logger.Fatal("Failed to set up router", zap.Error(err))
	}

	// A batch makes five model calls; leave room for a slow provider
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
