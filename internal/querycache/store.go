// Package querycache caches GraphQL query results by query key.
//
// A query result is fresh for the client's stale time and kept in the store
// for its gc time. Stale entries are refetched on the next read. Mutations
// invalidate key prefixes so dependent lists are refetched.
package querycache

import (
	"context"
	"time"
)

// Entry is a stored query result.
type Entry struct {
	Data      []byte
	UpdatedAt time.Time
}

// Store persists entries under encoded query keys.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry) error
	// DeletePrefix removes every key covered by prefix and returns how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
	Clear(ctx context.Context) error
}

// Metrics provides store performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}
