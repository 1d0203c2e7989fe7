//go:build integration

package querycache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rentaldesk/rental-bff/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithRedis(context.Background(), m))
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	ctx := context.Background()
	client, err := NewRedisClient(ctx, testutil.GetSharedRedisURI())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ns := fmt.Sprintf("test:%s:", testutil.SanitizeDBName(t.Name()))
	return NewRedisStore(client, time.Minute, WithNamespace(ns))
}

func TestRedisStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	updated := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_, found, err := s.Get(ctx, "clients")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "clients", Entry{Data: []byte(`{"items":[1]}`), UpdatedAt: updated}))

	entry, found, err := s.Get(ctx, "clients")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"items":[1]}`, string(entry.Data))
	assert.True(t, entry.UpdatedAt.Equal(updated))
}

func TestRedisStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	clients := querykey.Domain(querykey.Clients)

	keys := []querykey.Key{
		clients.PaginatedWith(querykey.Filters{"page": "1"}),
		clients.PaginatedWith(querykey.Filters{"page": "2", "query": "a*b"}),
		clients.Detail("7"),
		querykey.Domain(querykey.Contracts).Paginated(),
		{"clients-archive"},
	}
	for _, k := range keys {
		require.NoError(t, s.Set(ctx, k.String(), Entry{Data: []byte(`{}`)}))
	}

	removed, err := s.DeletePrefix(ctx, clients.Paginated().String())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = s.DeletePrefix(ctx, clients.All().String())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, found, err := s.Get(ctx, "clients-archive")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, s.Clear(ctx))
	_, found, err = s.Get(ctx, querykey.Domain(querykey.Contracts).Paginated().String())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_WithClient(t *testing.T) {
	ctx := context.Background()
	c := NewClient(newTestRedisStore(t), WithDefaultStaleTime(time.Minute))
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"ana"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Query(ctx, c, clientsKey, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"ana"}, v)
	}
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Invalidate(ctx, querykey.Domain(querykey.Clients).All()))
	_, err := Query(ctx, c, clientsKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
