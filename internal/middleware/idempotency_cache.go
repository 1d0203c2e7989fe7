package middleware

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rentaldesk/rental-bff/internal/logger"
	"github.com/rentaldesk/rental-bff/internal/querycache"
)

const idempotencyKeyPrefix = "idempotency:"

// idempotencyCache keeps responses in process memory.
type idempotencyCache struct {
	mu    sync.RWMutex
	items map[string]*cachedResponse
	ttl   time.Duration
	now   func() time.Time
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items: make(map[string]*cachedResponse),
		ttl:   ttl,
		now:   time.Now,
	}
	go c.startCleanup()
	return c
}

func (c *idempotencyCache) Get(_ context.Context, key string) (*cachedResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resp, ok := c.items[key]
	if !ok || c.now().Sub(resp.Timestamp) > c.ttl {
		return nil, false
	}
	return resp, true
}

func (c *idempotencyCache) Set(_ context.Context, key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Timestamp = c.now()
	c.items[key] = resp
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}

// storeIdempotency keeps responses in a query cache store, so instances that
// share a Redis store also share replays. The store's own TTL applies.
type storeIdempotency struct {
	store querycache.Store
}

// NewStoreIdempotency adapts a query cache store for the idempotency middleware.
func NewStoreIdempotency(store querycache.Store) IdempotencyStore {
	return &storeIdempotency{store: store}
}

func (s *storeIdempotency) Get(ctx context.Context, key string) (*cachedResponse, bool) {
	entry, ok, err := s.store.Get(ctx, idempotencyKeyPrefix+key)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Idempotency store read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp cachedResponse
	if err := json.Unmarshal(entry.Data, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (s *storeIdempotency) Set(ctx context.Context, key string, resp *cachedResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	entry := querycache.Entry{Data: data, UpdatedAt: time.Now()}
	if err := s.store.Set(ctx, idempotencyKeyPrefix+key, entry); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Idempotency store write failed")
	}
}
