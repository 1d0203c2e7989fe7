package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned by Query when the query is gated off.
var ErrDisabled = errors.New("querycache: query disabled")

const (
	defaultStaleTime = 0
	defaultRetry     = 3
	maxRetryDelay    = 30 * time.Second

	defaultFetchTimeout = 30 * time.Second
)

// Client runs cache-aware queries against a Store.
type Client struct {
	store        Store
	group        singleflight.Group
	staleTime    time.Duration
	retry        int
	retryDelay   func(attempt int) time.Duration
	retryIf      func(err error) bool
	fetchTimeout time.Duration
	now          func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultStaleTime sets how long a stored result is served without refetching.
func WithDefaultStaleTime(d time.Duration) ClientOption {
	return func(c *Client) {
		c.staleTime = d
	}
}

// WithDefaultRetry sets how many times a failed fetch is retried.
func WithDefaultRetry(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.retry = n
		}
	}
}

// WithRetryDelay replaces the backoff between attempts.
func WithRetryDelay(fn func(attempt int) time.Duration) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.retryDelay = fn
		}
	}
}

// WithRetryIf limits retries to errors for which fn returns true.
// Context errors are never retried.
func WithRetryIf(fn func(err error) bool) ClientOption {
	return func(c *Client) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// WithFetchTimeout bounds a shared fetch, retries included. The fetch does
// not stop when the caller that started it goes away.
func WithFetchTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// NewClient creates a query client over store.
func NewClient(store Store, opts ...ClientOption) *Client {
	c := &Client{
		store:        store,
		staleTime:    defaultStaleTime,
		retry:        defaultRetry,
		retryDelay:   ExponentialBackoff,
		retryIf:      func(error) bool { return true },
		fetchTimeout: defaultFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExponentialBackoff waits 1s, 2s, 4s... capped at 30s.
func ExponentialBackoff(attempt int) time.Duration {
	if attempt >= 5 {
		return maxRetryDelay
	}
	return min(time.Second<<attempt, maxRetryDelay)
}

// Store returns the underlying store.
func (c *Client) Store() Store {
	return c.store
}

type queryOptions struct {
	enabled   bool
	staleTime time.Duration
	retry     int
	scope     string
}

// QueryOption configures a single query.
type QueryOption func(*queryOptions)

// WithEnabled gates the query. A disabled query returns ErrDisabled without fetching.
func WithEnabled(enabled bool) QueryOption {
	return func(o *queryOptions) {
		o.enabled = enabled
	}
}

// WithStaleTime overrides the client's stale time.
func WithStaleTime(d time.Duration) QueryOption {
	return func(o *queryOptions) {
		o.staleTime = d
	}
}

// WithRetry overrides the client's retry count.
func WithRetry(n int) QueryOption {
	return func(o *queryOptions) {
		if n >= 0 {
			o.retry = n
		}
	}
}

// WithScope stores the result apart from other scopes. The scope is the last
// key part, so invalidating a domain still clears every scope.
func WithScope(scope string) QueryOption {
	return func(o *queryOptions) {
		o.scope = scope
	}
}

// Query returns the result stored under key while it is fresh. Otherwise it
// fetches, retrying failures, and stores the result. Concurrent callers with
// the same key share one fetch, which runs detached from any single caller's
// context and is bounded by the client's fetch timeout.
func Query[T any](ctx context.Context, c *Client, key querykey.Key, fetch func(context.Context) (T, error), opts ...QueryOption) (T, error) {
	var zero T

	o := queryOptions{enabled: true, staleTime: c.staleTime, retry: c.retry}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.enabled {
		return zero, ErrDisabled
	}
	if o.scope != "" {
		key = key.Append(o.scope)
	}

	k := key.String()
	if data, ok := c.fresh(ctx, k, o.staleTime); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			metrics.RecordQueryCacheOperation("query", "hit")
			return v, nil
		}
		log.Warn().Str("key", k).Msg("Discarding undecodable cached query result")
	}

	ch := c.group.DoChan(k, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		v, err := fetchWithRetry(fetchCtx, c, key, o.retry, fetch)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode query result: %w", err)
		}
		if err := c.store.Set(fetchCtx, k, Entry{Data: data, UpdatedAt: c.now()}); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("Failed to store query result")
		}
		return data, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Shared {
		metrics.RecordQueryCacheOperation("query", "dedup")
	}
	if res.Err != nil {
		metrics.RecordQueryCacheOperation("fetch", "error")
		return zero, res.Err
	}

	var v T
	if err := json.Unmarshal(res.Val.([]byte), &v); err != nil {
		return zero, fmt.Errorf("decode query result: %w", err)
	}
	return v, nil
}

// fresh returns stored data younger than staleTime.
func (c *Client) fresh(ctx context.Context, key string, staleTime time.Duration) ([]byte, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Query cache read failed")
		metrics.RecordQueryCacheOperation("query", "error")
		return nil, false
	}
	if !ok {
		metrics.RecordQueryCacheOperation("query", "miss")
		return nil, false
	}
	if c.now().Sub(entry.UpdatedAt) >= staleTime {
		metrics.RecordQueryCacheOperation("query", "stale")
		return nil, false
	}
	return entry.Data, true
}

func fetchWithRetry[T any](ctx context.Context, c *Client, key querykey.Key, retry int, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		v, err := fetch(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= retry || !c.shouldRetry(err) {
			return zero, err
		}

		delay := c.retryDelay(attempt)
		log.Debug().
			Err(err).
			Str("key", key.String()).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Retrying query")
		metrics.RecordQueryRetry(domainOf(key))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return c.retryIf(err)
}

// Invalidate removes every stored result under prefix.
func (c *Client) Invalidate(ctx context.Context, prefix querykey.Key) error {
	n, err := c.store.DeletePrefix(ctx, prefix.String())
	if err != nil {
		metrics.RecordQueryCacheOperation("invalidate", "error")
		return fmt.Errorf("invalidate %s: %w", domainOf(prefix), err)
	}
	metrics.RecordQueryCacheOperation("invalidate", "success")
	log.Debug().Str("prefix", prefix.String()).Int("removed", n).Msg("Invalidated queries")
	return nil
}

// Mutate runs fn once and, when it succeeds, invalidates the given prefixes.
// Invalidation failures are logged; the mutation result is still returned.
func Mutate[T any](ctx context.Context, c *Client, fn func(context.Context) (T, error), invalidate ...querykey.Key) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, prefix := range invalidate {
		if err := c.Invalidate(ctx, prefix); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate queries after mutation")
		}
	}
	return v, nil
}

func domainOf(key querykey.Key) string {
	if len(key) == 0 {
		return "all"
	}
	return key[0]
}
