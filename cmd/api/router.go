package main

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/guindo/fireplan-api/config"
	"github.com/guindo/fireplan-api/internal/handlers"
	"github.com/guindo/fireplan-api/internal/middleware"
)

// routerDeps are the handlers and limiters the router wires together.
// history is nil when DATABASE_URL is not set.
type routerDeps struct {
	health   *handlers.HealthHandler
	analysis *handlers.AnalysisHandler
	history  *handlers.HistoryHandler

	analyzeLimiter *middleware.RateLimiter
	batchLimiter   *middleware.RateLimiter
	readLimiter    *middleware.RateLimiter
}

func setupRouter(cfg *config.Config, deps routerDeps) (*gin.Engine, error) {
	router := gin.New()

	// Rate limits key on ClientIP, so only configured proxies may set it
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader, handlers.OwnerHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Utility endpoints
	router.GET("/", deps.health.Root)
	router.GET("/health", deps.health.Healthcheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", middleware.APIKeyAuthMiddleware(cfg.Auth.APISecretKey))
	bodyLimit := middleware.BodySizeLimitMiddleware(cfg.Server.MaxBodyBytes)

	api.POST("/analyze", deps.analyzeLimiter.Middleware(), bodyLimit, deps.analysis.Analyze)
	api.POST("/analyze-all", deps.batchLimiter.Middleware(), bodyLimit, deps.analysis.AnalyzeAll)

	if deps.history != nil {
		api.GET("/analyses", deps.readLimiter.Middleware(), deps.history.ListAnalyses)
		api.GET("/analyses/:id", deps.readLimiter.Middleware(), deps.history.GetAnalysis)
	}

	return router, nil
}
