package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	EnableIdempotency bool
	// IdempotencyStore is shared between instances. Nil keeps responses in memory.
	IdempotencyStore middleware.IdempotencyStore
	CORSOrigins      []string
	SwaggerUser      string
	SwaggerPass      string
	VerificationURL  string
	LoggingService   service.LoggingService
	Rental           RentalAPI
	Contracts        service.ContractService
	// ContractDrafts is nil when no draft store is configured.
	ContractDrafts service.ContractDraftService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		EnableIdempotency: true,
		VerificationURL:   DefaultVerificationURL,
	}
}

// NewRouter creates and configures the Gin router for the rental BFF.
func NewRouter(healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)
	registerAPIRoutes(api, &cfg)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Location", middleware.SessionExpiredHeader, middleware.IdempotencyReplayedHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	router.Use(func(c *gin.Context) {
		c.Set("logging_service", cfg.LoggingService)
		c.Next()
	})

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group. The session
// is built before idempotency so stored responses are keyed per caller.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	api.Use(
		middleware.Session(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	if cfg.EnableIdempotency {
		idempotencyCfg := middleware.DefaultIdempotencyConfig()
		if cfg.IdempotencyStore != nil {
			idempotencyCfg.Store = cfg.IdempotencyStore
		}
		api.Use(middleware.Idempotency(idempotencyCfg))
	}
}

// registerAPIRoutes registers the public routes and, behind a session, the
// rental routes.
func registerAPIRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.Rental == nil {
		return
	}
	errs := ErrorMapper{VerificationURL: cfg.VerificationURL}

	authRoutes := NewAuthRoutes(cfg.Rental, errs)
	authRoutes.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.RequireSession())
	if cfg.RateLimit > 0 {
		sessionLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		protected.Use(sessionLimiter.SessionRateLimit())
	}

	groups := []ProtectedRouteGroup{authRoutes, NewRentalRoutes(cfg, errs)}
	if cfg.ContractDrafts != nil {
		groups = append(groups, NewContractDraftRoutes(cfg.ContractDrafts, errs))
	}
	for _, group := range groups {
		group.RegisterProtectedRoutes(protected, cfg)
	}
}
