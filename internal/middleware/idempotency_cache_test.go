//go:build !integration

package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/rentaldesk/rental-bff/internal/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_GetSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newIdempotencyCache(time.Minute)
	cache.now = func() time.Time { return now }

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	cache.Set(ctx, "k", &cachedResponse{StatusCode: 201, Body: []byte(`{}`)})

	tests := []struct {
		name    string
		advance time.Duration
		found   bool
	}{
		{name: "fresh", advance: 30 * time.Second, found: true},
		{name: "at ttl", advance: 30 * time.Second, found: true},
		{name: "expired", advance: time.Second, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = now.Add(tt.advance)
			resp, ok := cache.Get(ctx, "k")
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, 201, resp.StatusCode)
			}
		})
	}
}

func TestIdempotencyCache_Cleanup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newIdempotencyCache(time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "old", &cachedResponse{StatusCode: 200})
	now = now.Add(50 * time.Second)
	cache.Set(ctx, "new", &cachedResponse{StatusCode: 200})
	now = now.Add(20 * time.Second)

	cache.cleanup()

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	assert.NotContains(t, cache.items, "old")
	assert.Contains(t, cache.items, "new")
}

func TestStoreIdempotency(t *testing.T) {
	ctx := context.Background()
	store := querycache.NewMemoryStore(10, time.Minute, 1)
	defer store.Stop()
	idem := NewStoreIdempotency(store)

	_, ok := idem.Get(ctx, "k")
	assert.False(t, ok)

	idem.Set(ctx, "k", &cachedResponse{
		StatusCode: 201,
		Headers:    map[string]string{"Location": "/api/contracts/9"},
		Body:       []byte(`{"id":"9"}`),
	})

	resp, ok := idem.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "/api/contracts/9", resp.Headers["Location"])
	assert.JSONEq(t, `{"id":"9"}`, string(resp.Body))

	_, found, err := store.Get(ctx, idempotencyKeyPrefix+"k")
	require.NoError(t, err)
	assert.True(t, found, "responses are namespaced in the shared store")
}

func TestStoreIdempotency_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	store := querycache.NewMemoryStore(10, time.Minute, 1)
	defer store.Stop()
	require.NoError(t, store.Set(ctx, idempotencyKeyPrefix+"k", querycache.Entry{Data: []byte("not json")}))

	_, ok := NewStoreIdempotency(store).Get(ctx, "k")
	assert.False(t, ok)
}
