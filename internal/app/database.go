// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/circuitbreaker"
	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/repository"
	"github.com/rentaldesk/rental-bff/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                   *repository.MongoDB
	LoggingService       service.LoggingService
	DraftsRepo           repository.ContractDraftRepositoryInterface
	LogsCircuitBreaker   *circuitbreaker.CircuitBreaker
	DraftsCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and creates the repositories behind
// audit logging and contract drafts.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	logsCB := newCircuitBreaker(cfg, "mongodb-logs", nil)
	// Missing drafts and version conflicts are answers, not outages.
	draftsCB := newCircuitBreaker(cfg, "mongodb-drafts", repository.IsStoreFailure)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	draftsRepo := repository.NewContractDraftRepositoryWithCircuitBreaker(repository.NewContractDraftRepository(db), draftsCB)

	return &DatabaseComponents{
		DB:                   db,
		LoggingService:       service.NewLoggingService(logsRepo),
		DraftsRepo:           draftsRepo,
		LogsCircuitBreaker:   logsCB,
		DraftsCircuitBreaker: draftsCB,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string, isFailure func(error) bool) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        isFailure,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})
}

// Close disconnects from MongoDB.
func (dc *DatabaseComponents) Close(ctx context.Context) {
	if dc == nil || dc.DB == nil {
		return
	}
	if err := dc.DB.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}
