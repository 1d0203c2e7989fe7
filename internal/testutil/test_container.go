//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

type shared struct {
	once      sync.Once
	mu        sync.RWMutex
	container *Container
	err       error
	setup     func(context.Context) (*Container, error)
}

func (s *shared) get(ctx context.Context) (*Container, error) {
	s.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.container, s.err = s.setup(ctx)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.container, s.err
}

func (s *shared) cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.container.Cleanup(ctx)
}

func (s *shared) uri(kind string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.container == nil {
		panic("shared " + kind + " container not initialized")
	}
	return s.container.URI
}

var (
	sharedMongo = &shared{setup: SetupMongoDB}
	sharedRedis = &shared{setup: SetupRedis}
)

// GetSharedMongoDB returns the package-wide MongoDB container, starting it on first use.
func GetSharedMongoDB(ctx context.Context) (*Container, error) {
	return sharedMongo.get(ctx)
}

// GetSharedRedis returns the package-wide Redis container, starting it on first use.
func GetSharedRedis(ctx context.Context) (*Container, error) {
	return sharedRedis.get(ctx)
}

// GetSharedContainerURI returns the URI of the shared MongoDB container.
func GetSharedContainerURI() string {
	return sharedMongo.uri("MongoDB")
}

// GetSharedRedisURI returns the URI of the shared Redis container.
func GetSharedRedisURI() string {
	return sharedRedis.uri("Redis")
}

// SetupTestMainWithMongoDB runs m with a shared MongoDB container.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	return runWith(ctx, m, sharedMongo, "MongoDB")
}

// SetupTestMainWithRedis runs m with a shared Redis container.
func SetupTestMainWithRedis(ctx context.Context, m *testing.M) int {
	return runWith(ctx, m, sharedRedis, "Redis")
}

func runWith(ctx context.Context, m *testing.M, s *shared, kind string) int {
	if _, err := s.get(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := s.cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to cleanup shared %s container: %v\n", kind, err)
	}
	return code
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '.', '$':
			return '_'
		}
		return r
	}, testName)

	if len(sanitized) > 50 {
		sanitized = sanitized[:50]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}
