package querycache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore(t *testing.T, capacity int, ttl time.Duration, shards int) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(capacity, ttl, shards)
	t.Cleanup(s.Stop)
	return s
}

func TestMemoryStore_Get(t *testing.T) {
	ctx := context.Background()
	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(*testing.T) *MemoryStore
		key       string
		wantFound bool
	}{
		{
			name: "returns entry when present",
			setup: func(t *testing.T) *MemoryStore {
				s := newTestMemoryStore(t, 10, time.Minute, 1)
				require.NoError(t, s.Set(ctx, "clients", Entry{Data: []byte(`[1]`), UpdatedAt: updated}))
				return s
			},
			key:       "clients",
			wantFound: true,
		},
		{
			name: "misses unknown key",
			setup: func(t *testing.T) *MemoryStore {
				return newTestMemoryStore(t, 10, time.Minute, 1)
			},
			key: "clients",
		},
		{
			name: "misses expired entry",
			setup: func(t *testing.T) *MemoryStore {
				s := newTestMemoryStore(t, 10, 20*time.Millisecond, 1)
				require.NoError(t, s.Set(ctx, "clients", Entry{Data: []byte(`[1]`)}))
				time.Sleep(50 * time.Millisecond)
				return s
			},
			key: "clients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup(t)

			entry, found, err := s.Get(ctx, tt.key)

			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, `[1]`, string(entry.Data))
				assert.True(t, entry.UpdatedAt.Equal(updated))
			}
		})
	}
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore(t, 2, time.Minute, 1)

	require.NoError(t, s.Set(ctx, "a", Entry{Data: []byte(`1`)}))
	require.NoError(t, s.Set(ctx, "b", Entry{Data: []byte(`2`)}))
	_, _, _ = s.Get(ctx, "a")
	require.NoError(t, s.Set(ctx, "c", Entry{Data: []byte(`3`)}))

	_, foundA, _ := s.Get(ctx, "a")
	_, foundB, _ := s.Get(ctx, "b")
	_, foundC, _ := s.Get(ctx, "c")
	assert.True(t, foundA)
	assert.False(t, foundB)
	assert.True(t, foundC)
	assert.Equal(t, int64(1), s.Metrics().Evictions)
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore(t, 2, time.Minute, 1)

	require.NoError(t, s.Set(ctx, "a", Entry{Data: []byte(`1`)}))
	require.NoError(t, s.Set(ctx, "a", Entry{Data: []byte(`2`)}))

	entry, found, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `2`, string(entry.Data))
	assert.Equal(t, 1, s.Metrics().Size)
}

func TestMemoryStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	clients := querykey.Domain(querykey.Clients)
	contracts := querykey.Domain(querykey.Contracts)

	keys := []querykey.Key{
		clients.PaginatedWith(querykey.Filters{"page": "1"}),
		clients.PaginatedWith(querykey.Filters{"page": "2", "query": "ana"}),
		clients.Detail("7"),
		contracts.Paginated(),
		{"clients-archive"},
	}

	tests := []struct {
		name        string
		prefix      querykey.Key
		wantRemoved int
		wantKept    []querykey.Key
	}{
		{
			name:        "domain prefix removes every query of the domain",
			prefix:      clients.All(),
			wantRemoved: 3,
			wantKept:    []querykey.Key{contracts.Paginated(), {"clients-archive"}},
		},
		{
			name:        "paginated prefix keeps details",
			prefix:      clients.Paginated(),
			wantRemoved: 2,
			wantKept:    []querykey.Key{clients.Detail("7"), contracts.Paginated()},
		},
		{
			name:        "empty prefix removes everything",
			prefix:      querykey.Key{},
			wantRemoved: len(keys),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestMemoryStore(t, 100, time.Minute, 4)
			for _, k := range keys {
				require.NoError(t, s.Set(ctx, k.String(), Entry{Data: []byte(`{}`)}))
			}

			removed, err := s.DeletePrefix(ctx, tt.prefix.String())

			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			for _, k := range tt.wantKept {
				_, found, _ := s.Get(ctx, k.String())
				assert.True(t, found, "expected %v to be kept", k)
			}
		})
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore(t, 10, time.Minute, 2)
	require.NoError(t, s.Set(ctx, "a", Entry{Data: []byte(`1`)}))
	_, _, _ = s.Get(ctx, "a")

	require.NoError(t, s.Clear(ctx))

	m := s.Metrics()
	assert.Equal(t, 0, m.Size)
	assert.Equal(t, int64(0), m.Hits)
}

func TestNewMemoryStore_Shards(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		shards       int
		wantShards   int
		wantCapacity int
	}{
		{name: "rounds up to power of two", capacity: 64, shards: 3, wantShards: 4, wantCapacity: 64},
		{name: "defaults when zero", capacity: 160, shards: 0, wantShards: 16, wantCapacity: 160},
		{name: "at least one slot per shard", capacity: 2, shards: 8, wantShards: 8, wantCapacity: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestMemoryStore(t, tt.capacity, time.Minute, tt.shards)
			assert.Len(t, s.shards, tt.wantShards)
			assert.Equal(t, tt.wantCapacity, s.Metrics().Capacity)
		})
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := newTestMemoryStore(t, 1000, time.Minute, 16)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			_ = s.Set(ctx, key, Entry{Data: []byte(`1`)})
			_, _, _ = s.Get(ctx, key)
			if i%7 == 0 {
				_, _ = s.DeletePrefix(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Metrics().Size, 10)
}

func TestMemoryStore_StopIsIdempotent(t *testing.T) {
	s := NewMemoryStore(4, time.Minute, 1)
	s.Stop()
	assert.NotPanics(t, s.Stop)
}
