package querycache

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/querykey"
)

const defaultShards = 16

// MemoryStore is an in-process store. Entries are spread over shards to
// reduce lock contention; each shard is an LRU bounded by capacity with
// entries expiring after ttl.
type MemoryStore struct {
	shards    []*lruShard
	shardMask uint32
}

// NewMemoryStore creates a store with the given total capacity and entry ttl.
// numShards is rounded up to a power of 2.
func NewMemoryStore(capacity int, ttl time.Duration, numShards int) *MemoryStore {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n *= 2
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*lruShard, n)
	for i := range shards {
		shards[i] = newLRUShard(perShard, ttl)
	}
	return &MemoryStore{shards: shards, shardMask: uint32(n - 1)}
}

func (s *MemoryStore) shard(key string) *lruShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()&s.shardMask]
}

// Get returns the entry stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := s.shard(key).get(key)
	return e, ok, nil
}

// Set stores entry under key.
func (s *MemoryStore) Set(_ context.Context, key string, entry Entry) error {
	s.shard(key).set(key, entry)
	return nil
}

// DeletePrefix removes every key covered by prefix.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	removed := 0
	for _, sh := range s.shards {
		removed += sh.deletePrefix(prefix)
	}
	return removed, nil
}

// Clear removes all entries.
func (s *MemoryStore) Clear(_ context.Context) error {
	for _, sh := range s.shards {
		sh.clear()
	}
	return nil
}

// Stop shuts down the background cleanup of every shard.
func (s *MemoryStore) Stop() {
	for _, sh := range s.shards {
		sh.stop()
	}
}

// Metrics returns metrics aggregated over all shards.
func (s *MemoryStore) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		m := sh.metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}

type lruEntry struct {
	key       string
	value     Entry
	expiresAt time.Time
	prev      *lruEntry
	next      *lruEntry
}

type lruShard struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*lruEntry
	head      *lruEntry
	tail      *lruEntry
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newLRUShard(capacity int, ttl time.Duration) *lruShard {
	sh := &lruShard{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry, capacity),
		stopCh:   make(chan struct{}),
	}
	go sh.startCleanup()
	return sh
}

func (sh *lruShard) get(key string) (Entry, bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	entry, ok := sh.items[key]
	if !ok {
		sh.misses.Add(1)
		return Entry{}, false
	}
	if time.Now().After(entry.expiresAt) {
		sh.removeEntry(entry)
		sh.misses.Add(1)
		metrics.RecordQueryCacheOperation("store_get", "expired")
		return Entry{}, false
	}

	sh.moveToFront(entry)
	sh.hits.Add(1)
	return entry.value, true
}

func (sh *lruShard) set(key string, value Entry) {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	expiresAt := time.Now().Add(sh.ttl)
	if entry, ok := sh.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		sh.moveToFront(entry)
		return
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	sh.items[key] = entry
	sh.addToFront(entry)

	if len(sh.items) > sh.capacity {
		sh.removeEntry(sh.tail)
		sh.evictions.Add(1)
		metrics.RecordQueryCacheOperation("evict", "capacity")
	}
}

func (sh *lruShard) deletePrefix(prefix string) int {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	removed := 0
	for key, entry := range sh.items {
		if prefix == "" || querykey.Covers(prefix, key) {
			sh.removeEntry(entry)
			removed++
		}
	}
	return removed
}

func (sh *lruShard) clear() {
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.items = make(map[string]*lruEntry, sh.capacity)
	sh.head = nil
	sh.tail = nil
	sh.hits.Store(0)
	sh.misses.Store(0)
	sh.evictions.Store(0)
}

func (sh *lruShard) stop() {
	sh.stopOnce.Do(func() { close(sh.stopCh) })
}

func (sh *lruShard) metrics() Metrics {
	sh.mu.Lock()
	size := len(sh.items)
	sh.mu.Unlock()

	return Metrics{
		Hits:      sh.hits.Load(),
		Misses:    sh.misses.Load(),
		Evictions: sh.evictions.Load(),
		Size:      size,
		Capacity:  sh.capacity,
	}
}

// startCleanup drops expired entries once a minute while the shard is more
// than 80% full.
func (sh *lruShard) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sh.mu.Lock()
			if len(sh.items) > sh.capacity*80/100 {
				sh.removeExpired(time.Now())
			}
			sh.mu.Unlock()
		case <-sh.stopCh:
			return
		}
	}
}

func (sh *lruShard) removeExpired(now time.Time) {
	for _, entry := range sh.items {
		if now.After(entry.expiresAt) {
			sh.removeEntry(entry)
		}
	}
}

func (sh *lruShard) removeEntry(entry *lruEntry) {
	if entry == nil {
		return
	}
	delete(sh.items, entry.key)
	sh.unlink(entry)
}

func (sh *lruShard) moveToFront(entry *lruEntry) {
	if entry == sh.head {
		return
	}
	sh.unlink(entry)
	sh.addToFront(entry)
}

func (sh *lruShard) addToFront(entry *lruEntry) {
	entry.prev = nil
	entry.next = sh.head
	if sh.head != nil {
		sh.head.prev = entry
	}
	sh.head = entry
	if sh.tail == nil {
		sh.tail = entry
	}
}

func (sh *lruShard) unlink(entry *lruEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		sh.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		sh.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}
