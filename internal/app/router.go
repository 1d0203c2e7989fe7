// Package app provides router configuration.
package app

import (
	"context"

	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/http"
	"github.com/rentaldesk/rental-bff/internal/middleware"
	"github.com/rentaldesk/rental-bff/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the health handler and router configuration from
// the initialized services. Contract drafts are served only with a database.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	if cfg.Server.RequestTimeout > 0 {
		routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	}
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	if cfg.API.VerificationURL != "" {
		routerCfg.VerificationURL = cfg.API.VerificationURL
	}

	if services != nil {
		routerCfg.Rental = services.Rental
		routerCfg.Contracts = services.Contracts
		if services.Redis != nil {
			routerCfg.IdempotencyStore = middleware.NewStoreIdempotency(services.Store)
			redisClient := services.Redis
			healthHandler.RegisterChecker("redis", http.CheckerFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}))
		}
	}

	if dbComponents != nil {
		routerCfg.LoggingService = dbComponents.LoggingService
		if dbComponents.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.CheckerFunc(dbComponents.DB.HealthCheck))
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
		if dbComponents.DraftsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_drafts", dbComponents.DraftsCircuitBreaker)
		}
		if dbComponents.DraftsRepo != nil && services != nil {
			routerCfg.ContractDrafts = service.NewContractDraftService(
				dbComponents.DraftsRepo,
				services.Rental,
				services.Quoter,
				cfg.Database.DraftTTL,
			)
		}
	}

	return &RouterComponents{
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
