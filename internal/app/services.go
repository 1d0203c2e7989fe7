// Package app provides service initialization.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	redisNamespace       = "rental-bff"
	redisConnectTimeout  = 5 * time.Second
	cacheMetricsInterval = 15 * time.Second
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	GraphQL   *graphql.Client
	Store     querycache.Store
	Cache     *querycache.Client
	Redis     *redis.Client
	Rental    *rental.Services
	Quoter    *contractform.Quoter
	Contracts service.ContractService

	stop     chan struct{}
	stopOnce sync.Once
}

// InitializeServices builds the GraphQL client, the query cache and the
// rental services on top of them. A Redis URL that cannot be reached falls
// back to the in-process store.
func InitializeServices(cfg config.Config) *ServiceComponents {
	sc := &ServiceComponents{stop: make(chan struct{})}

	sc.GraphQL = graphql.NewClient(cfg.API.Endpoint(), graphql.WithTimeout(cfg.API.Timeout))
	sc.Store = sc.newStore(cfg)
	sc.Cache = querycache.NewClient(sc.Store,
		querycache.WithDefaultStaleTime(cfg.Query.StaleTime),
		querycache.WithDefaultRetry(cfg.Query.Retry),
		querycache.WithRetryIf(graphql.IsRetryable),
		querycache.WithFetchTimeout(cfg.Query.FetchTimeout),
	)

	var opts []rental.Option
	if cfg.API.PageSize > 0 {
		opts = append(opts, rental.WithPageSize(cfg.API.PageSize))
	}
	sc.Rental = rental.NewServices(sc.GraphQL, sc.Cache, opts...)
	sc.Quoter = contractform.NewQuoter(pricing.NewCalculatorService())
	sc.Contracts = service.NewContractService(sc.Rental, sc.Quoter)

	log.Info().Str("endpoint", sc.GraphQL.Endpoint()).Msg("Rental API client ready")
	return sc
}

func (sc *ServiceComponents) newStore(cfg config.Config) querycache.Store {
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()

		client, err := querycache.NewRedisClient(ctx, cfg.Redis.URL)
		if err == nil {
			sc.Redis = client
			log.Info().Msg("Connected to Redis - query cache is shared")
			return querycache.NewRedisStore(client, cfg.Query.GCTime, querycache.WithNamespace(redisNamespace))
		}
		log.Error().Err(err).Msg("Failed to connect to Redis - continuing with in-memory query cache")
	}

	store := querycache.NewMemoryStore(cfg.Query.CacheSize, cfg.Query.GCTime, 0)
	go reportCacheMetrics(store, cacheMetricsInterval, sc.stop)
	return store
}

// reportCacheMetrics publishes the in-memory store size until stop is closed.
func reportCacheMetrics(store *querycache.MemoryStore, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		m := store.Metrics()
		metrics.UpdateQueryCacheMetrics(m.Size, m.Capacity)

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Close stops background work and releases the cache store.
func (sc *ServiceComponents) Close() {
	sc.stopOnce.Do(func() {
		close(sc.stop)
		if mem, ok := sc.Store.(*querycache.MemoryStore); ok {
			mem.Stop()
		}
		if sc.Redis != nil {
			if err := sc.Redis.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis client")
			}
		}
	})
}
