package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rentaldesk/rental-bff/internal/querykey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestClient(t *testing.T, opts ...ClientOption) (*Client, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]ClientOption{WithRetryDelay(func(int) time.Duration { return 0 })}, opts...)
	c := NewClient(newTestMemoryStore(t, 100, time.Hour, 4), opts...)
	c.now = clock.Now
	return c, clock
}

type counter struct {
	calls atomic.Int32
}

func (c *counter) fetch(v []string, errs ...error) func(context.Context) ([]string, error) {
	return func(context.Context) ([]string, error) {
		n := int(c.calls.Add(1))
		if n <= len(errs) && errs[n-1] != nil {
			return nil, errs[n-1]
		}
		return v, nil
	}
}

var clientsKey = querykey.Domain(querykey.Clients).PaginatedWith(querykey.Filters{"page": "1"})

func TestQuery_CachesWhileFresh(t *testing.T) {
	tests := []struct {
		name      string
		staleTime time.Duration
		advance   time.Duration
		wantCalls int32
	}{
		{name: "fresh result is served from the store", staleTime: time.Minute, advance: 30 * time.Second, wantCalls: 1},
		{name: "stale result is refetched", staleTime: time.Minute, advance: time.Minute, wantCalls: 2},
		{name: "zero stale time always refetches", staleTime: 0, advance: 0, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c, clock := newTestClient(t, WithDefaultStaleTime(tt.staleTime))
			var cnt counter

			first, err := Query(ctx, c, clientsKey, cnt.fetch([]string{"ana"}))
			require.NoError(t, err)
			clock.Advance(tt.advance)
			second, err := Query(ctx, c, clientsKey, cnt.fetch([]string{"ana"}))
			require.NoError(t, err)

			assert.Equal(t, []string{"ana"}, first)
			assert.Equal(t, first, second)
			assert.Equal(t, tt.wantCalls, cnt.calls.Load())
		})
	}
}

func TestQuery_StaleTimeOverride(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestClient(t, WithDefaultStaleTime(0))
	var cnt counter

	_, err := Query(ctx, c, clientsKey, cnt.fetch([]string{"a"}), WithStaleTime(time.Minute))
	require.NoError(t, err)
	clock.Advance(10 * time.Second)
	_, err = Query(ctx, c, clientsKey, cnt.fetch([]string{"a"}), WithStaleTime(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, int32(1), cnt.calls.Load())
}

func TestQuery_Disabled(t *testing.T) {
	c, _ := newTestClient(t)
	var cnt counter

	_, err := Query(context.Background(), c, clientsKey, cnt.fetch(nil), WithEnabled(false))

	assert.ErrorIs(t, err, ErrDisabled)
	assert.Equal(t, int32(0), cnt.calls.Load())
}

func TestQuery_Retry(t *testing.T) {
	errBoom := errors.New("boom")
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		retry     int
		errs      []error
		wantCalls int32
		wantErr   error
	}{
		{name: "succeeds after transient failures", retry: 3, errs: []error{errBoom, errBoom}, wantCalls: 3},
		{name: "gives up after retries", retry: 2, errs: []error{errBoom, errBoom, errBoom}, wantCalls: 3, wantErr: errBoom},
		{name: "no retry when disabled", retry: 0, errs: []error{errBoom}, wantCalls: 1, wantErr: errBoom},
		{name: "non retryable error", retry: 3, errs: []error{errFatal}, wantCalls: 1, wantErr: errFatal},
		{name: "context errors are not retried", retry: 3, errs: []error{context.DeadlineExceeded}, wantCalls: 1, wantErr: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t,
				WithDefaultRetry(tt.retry),
				WithRetryIf(func(err error) bool { return !errors.Is(err, errFatal) }),
			)
			var cnt counter

			v, err := Query(context.Background(), c, clientsKey, cnt.fetch([]string{"ok"}, tt.errs...))

			assert.Equal(t, tt.wantCalls, cnt.calls.Load())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"ok"}, v)
		})
	}
}

func TestQuery_RetryStopsWhenContextDone(t *testing.T) {
	c, _ := newTestClient(t,
		WithRetryDelay(func(int) time.Duration { return time.Hour }),
		WithFetchTimeout(50*time.Millisecond),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	var cnt counter

	_, err := Query(ctx, c, clientsKey, cnt.fetch(nil, errors.New("boom")))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), cnt.calls.Load())
}

func TestQuery_DeduplicatesConcurrentCalls(t *testing.T) {
	c, _ := newTestClient(t, WithDefaultStaleTime(time.Minute))
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return []string{"ana"}, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([][]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Query(context.Background(), c, clientsKey, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []string{"ana"}, r)
	}
}

func TestQuery_CanceledCallerDoesNotFailSharedFetch(t *testing.T) {
	c, _ := newTestClient(t, WithDefaultStaleTime(time.Minute), WithDefaultRetry(0))
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	fetch := func(ctx context.Context) ([]string, error) {
		calls.Add(1)
		close(started)
		select {
		case <-release:
			return []string{"ana"}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Query(firstCtx, c, clientsKey, fetch)
		firstErr <- err
	}()
	<-started

	secondRes := make(chan []string, 1)
	secondErr := make(chan error, 1)
	go func() {
		v, err := Query(context.Background(), c, clientsKey, fetch)
		secondRes <- v
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, []string{"ana"}, <-secondRes)
	assert.Equal(t, int32(1), calls.Load())

	v, err := Query(context.Background(), c, clientsKey, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana"}, v)
	assert.Equal(t, int32(1), calls.Load(), "result stored after the first caller left")
}

func TestQuery_FetchTimeout(t *testing.T) {
	c, _ := newTestClient(t, WithDefaultRetry(0), WithFetchTimeout(20*time.Millisecond))

	_, err := Query(context.Background(), c, clientsKey, func(ctx context.Context) ([]string, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQuery_Scope(t *testing.T) {
	tests := []struct {
		name      string
		scopes    []string
		wantCalls int32
	}{
		{name: "same scope shares the result", scopes: []string{"a", "a"}, wantCalls: 1},
		{name: "different scopes fetch separately", scopes: []string{"a", "b"}, wantCalls: 2},
		{name: "scoped and unscoped are separate", scopes: []string{"a", ""}, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, WithDefaultStaleTime(time.Hour), WithDefaultRetry(0))
			var cnt counter

			for _, scope := range tt.scopes {
				_, err := Query(context.Background(), c, clientsKey, cnt.fetch([]string{"ana"}), WithScope(scope))
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantCalls, cnt.calls.Load())
		})
	}
}

func TestQuery_InvalidateClearsEveryScope(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t, WithDefaultStaleTime(time.Hour), WithDefaultRetry(0))
	var cnt counter

	load := func() {
		for _, scope := range []string{"a", "b"} {
			_, err := Query(ctx, c, clientsKey, cnt.fetch([]string{"ana"}), WithScope(scope))
			require.NoError(t, err)
		}
	}

	load()
	require.NoError(t, c.Invalidate(ctx, querykey.Domain(querykey.Clients).All()))
	load()

	assert.Equal(t, int32(4), cnt.calls.Load())
}

func TestMutate(t *testing.T) {
	clients := querykey.Domain(querykey.Clients)
	contracts := querykey.Domain(querykey.Contracts)

	tests := []struct {
		name             string
		mutationErr      error
		invalidate       []querykey.Key
		wantClientCalls  int32
		wantContractCall int32
	}{
		{
			name:             "success invalidates given prefixes",
			invalidate:       []querykey.Key{clients.All()},
			wantClientCalls:  2,
			wantContractCall: 1,
		},
		{
			name:             "failure keeps cache",
			mutationErr:      errors.New("Client already exists"),
			invalidate:       []querykey.Key{clients.All()},
			wantClientCalls:  1,
			wantContractCall: 1,
		},
		{
			name:             "multiple prefixes",
			invalidate:       []querykey.Key{clients.Lists(), contracts.All()},
			wantClientCalls:  2,
			wantContractCall: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			c, _ := newTestClient(t, WithDefaultStaleTime(time.Hour), WithDefaultRetry(0))
			var clientCnt, contractCnt counter
			contractsKey := contracts.PaginatedWith(querykey.Filters{"page": "1"})

			load := func() {
				_, err := Query(ctx, c, clientsKey, clientCnt.fetch([]string{"ana"}))
				require.NoError(t, err)
				_, err = Query(ctx, c, contractsKey, contractCnt.fetch([]string{"c1"}))
				require.NoError(t, err)
			}

			load()
			var mutations int
			_, err := Mutate(ctx, c, func(context.Context) (string, error) {
				mutations++
				return "id-1", tt.mutationErr
			}, tt.invalidate...)
			load()

			assert.Equal(t, 1, mutations)
			assert.ErrorIs(t, err, tt.mutationErr)
			assert.Equal(t, tt.wantClientCalls, clientCnt.calls.Load())
			assert.Equal(t, tt.wantContractCall, contractCnt.calls.Load())
		})
	}
}

type failingStore struct {
	getErr error
	delErr error
}

func (s *failingStore) Get(context.Context, string) (Entry, bool, error) {
	return Entry{}, false, s.getErr
}

func (s *failingStore) Set(context.Context, string, Entry) error {
	return nil
}

func (s *failingStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, s.delErr
}

func (s *failingStore) Clear(context.Context) error {
	return nil
}

func TestQuery_StoreFailuresFallBackToFetch(t *testing.T) {
	c := NewClient(&failingStore{getErr: errors.New("redis down")})
	var cnt counter

	v, err := Query(context.Background(), c, clientsKey, cnt.fetch([]string{"ana"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"ana"}, v)
	assert.Equal(t, int32(1), cnt.calls.Load())
}

func TestMutate_InvalidationFailureStillReturnsResult(t *testing.T) {
	c := NewClient(&failingStore{delErr: errors.New("redis down")})

	v, err := Mutate(context.Background(), c, func(context.Context) (int, error) {
		return 42, nil
	}, querykey.Domain(querykey.Clients).All())

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Error(t, c.Invalidate(context.Background(), querykey.Domain(querykey.Clients).All()))
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: time.Second},
		{attempt: 1, want: 2 * time.Second},
		{attempt: 3, want: 8 * time.Second},
		{attempt: 4, want: 16 * time.Second},
		{attempt: 5, want: 30 * time.Second},
		{attempt: 50, want: 30 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExponentialBackoff(tt.attempt), "attempt %d", tt.attempt)
	}
}
