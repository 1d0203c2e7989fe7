package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentaldesk/rental-bff/internal/querykey"
)

const (
	defaultNamespace = "rental-bff:query:"
	scanBatch        = 200
)

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// RedisStore shares query results between instances through Redis.
type RedisStore struct {
	client    redis.Cmdable
	namespace string
	ttl       time.Duration
}

type redisEntry struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithNamespace prefixes every Redis key.
func WithNamespace(ns string) RedisOption {
	return func(s *RedisStore) {
		s.namespace = ns
	}
}

// NewRedisStore creates a store whose entries expire after ttl.
func NewRedisStore(client redis.Cmdable, ttl time.Duration, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, namespace: defaultNamespace, ttl: ttl}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Get returns the entry stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := s.client.Get(ctx, s.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cached entry: %w", err)
	}
	return Entry{Data: e.Data, UpdatedAt: e.UpdatedAt}, true, nil
}

// Set stores entry under key.
func (s *RedisStore) Set(ctx context.Context, key string, entry Entry) error {
	raw, err := json.Marshal(redisEntry{Data: entry.Data, UpdatedAt: entry.UpdatedAt})
	if err != nil {
		return fmt.Errorf("encode cached entry: %w", err)
	}
	if err := s.client.Set(ctx, s.namespace+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// DeletePrefix removes every key covered by prefix. MATCH narrows the scan;
// keys are checked against the key boundaries before deletion.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	match := globEscaper.Replace(s.namespace+prefix) + "*"

	removed := 0
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("redis scan: %w", err)
		}

		batch := keys[:0]
		for _, k := range keys {
			if prefix == "" || querykey.Covers(prefix, strings.TrimPrefix(k, s.namespace)) {
				batch = append(batch, k)
			}
		}
		if len(batch) > 0 {
			n, err := s.client.Del(ctx, batch...).Result()
			if err != nil {
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}

		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Clear removes every entry in the namespace.
func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.DeletePrefix(ctx, "")
	return err
}
