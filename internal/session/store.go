// Package session keeps per-visitor state in a sharded LRU with idle expiry.
package session

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/guttosm/package-form/internal/metrics"
)

// Metrics describes store activity.
type Metrics struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// Config holds store settings.
type Config struct {
	// Capacity is the total number of live sessions.
	Capacity int
	// TTL is how long an untouched session lives.
	TTL time.Duration
	// Shards should be a power of two; it is rounded up otherwise.
	Shards int
	// CleanupInterval is how often expired sessions are swept.
	CleanupInterval time.Duration
}

// Store maps session ids to values. Values leave the store by LRU eviction,
// expiry or Delete; OnEvict is called for each, outside any lock.
type Store[V any] struct {
	shards    []*shard[V]
	shardMask uint32
	onEvict   func(key string, value V)
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// New creates a store and starts its background sweeper.
func New[V any](cfg Config, onEvict func(key string, value V)) *Store[V] {
	if cfg.Shards <= 0 {
		cfg.Shards = 16
	}
	n := 1
	for n < cfg.Shards {
		n *= 2
	}
	perShard := cfg.Capacity / n
	if perShard < 1 {
		perShard = 1
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	s := &Store[V]{
		shards:    make([]*shard[V], n),
		shardMask: uint32(n - 1),
		onEvict:   onEvict,
		stopCh:    make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i] = newShard[V](perShard, cfg.TTL)
	}
	go s.sweep(cfg.CleanupInterval)
	return s
}

func (s *Store[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return s.shards[h.Sum32()&s.shardMask]
}

// Get returns the live value for key and refreshes its expiry.
func (s *Store[V]) Get(key string) (V, bool) {
	v, ok, evicted := s.shardFor(key).get(key, time.Now())
	s.release(evicted, "expired")
	if ok {
		metrics.RecordSessionOperation("get", "hit")
	} else {
		metrics.RecordSessionOperation("get", "miss")
	}
	return v, ok
}

// GetOrCreate returns the live value for key, or stores and returns the
// result of create. created reports which happened. create runs under the
// shard lock and must not call back into the store.
func (s *Store[V]) GetOrCreate(key string, create func() V) (value V, created bool) {
	v, created, evicted := s.shardFor(key).getOrCreate(key, create, time.Now())
	s.release(evicted, "capacity")
	if created {
		metrics.RecordSessionOperation("create", "success")
		s.publishSize()
	} else {
		metrics.RecordSessionOperation("get", "hit")
	}
	return v, created
}

// Delete removes key, calling OnEvict if it was present.
func (s *Store[V]) Delete(key string) {
	if e := s.shardFor(key).remove(key); e != nil {
		s.release([]*entry[V]{e}, "delete")
	}
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *Store[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.len()
	}
	return n
}

// Metrics returns totals across shards.
func (s *Store[V]) Metrics() Metrics {
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

// Stop halts the sweeper and evicts every session. Later and concurrent
// calls return once the first one has finished.
func (s *Store[V]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		for _, sh := range s.shards {
			s.release(sh.clear(), "shutdown")
		}
	})
}

func (s *Store[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCh:
			return
		}
	}
}

// Sweep evicts every expired session now.
func (s *Store[V]) Sweep() {
	now := time.Now()
	for _, sh := range s.shards {
		s.release(sh.expire(now), "expired")
	}
}

func (s *Store[V]) release(evicted []*entry[V], reason string) {
	if len(evicted) == 0 {
		return
	}
	for _, e := range evicted {
		metrics.RecordSessionOperation("evict", reason)
		if s.onEvict != nil {
			s.onEvict(e.key, e.value)
		}
	}
	s.publishSize()
}

func (s *Store[V]) publishSize() {
	metrics.UpdateSessionCount(s.Len())
}
