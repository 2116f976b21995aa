//go:build !integration

package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evictLog struct {
	mu   sync.Mutex
	keys []string
}

func (l *evictLog) record(key string, _ int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
}

func (l *evictLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.keys...)
}

func newTestStore(t *testing.T, cfg Config) (*Store[int], *evictLog) {
	t.Helper()
	log := &evictLog{}
	s := New[int](cfg, log.record)
	t.Cleanup(s.Stop)
	return s, log
}

func TestNew_Shards(t *testing.T) {
	tests := []struct {
		name       string
		shards     int
		wantShards int
	}{
		{name: "default when zero", shards: 0, wantShards: 16},
		{name: "default when negative", shards: -1, wantShards: 16},
		{name: "rounds up to power of 2", shards: 3, wantShards: 4},
		{name: "exact power of 2", shards: 8, wantShards: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, Config{Capacity: 64, TTL: time.Minute, Shards: tt.shards})
			assert.Len(t, s.shards, tt.wantShards)
			assert.Equal(t, uint32(tt.wantShards-1), s.shardMask)
		})
	}
}

func TestStore_GetOrCreate(t *testing.T) {
	s, _ := newTestStore(t, Config{Capacity: 16, TTL: time.Minute, Shards: 1})

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	v, created := s.GetOrCreate("a", create)
	assert.True(t, created)
	assert.Equal(t, 42, v)

	v, created = s.GetOrCreate("a", create)
	assert.False(t, created)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStore_LRUEviction(t *testing.T) {
	s, log := newTestStore(t, Config{Capacity: 2, TTL: time.Minute, Shards: 1})

	s.GetOrCreate("a", func() int { return 1 })
	s.GetOrCreate("b", func() int { return 2 })
	_, ok := s.Get("a")
	require.True(t, ok)

	s.GetOrCreate("c", func() int { return 3 })

	assert.Equal(t, []string{"b"}, log.all(), "least recently used is evicted")
	_, ok = s.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	s, log := newTestStore(t, Config{Capacity: 8, TTL: 20 * time.Millisecond, Shards: 1, CleanupInterval: time.Hour})

	s.GetOrCreate("a", func() int { return 1 })
	s.GetOrCreate("b", func() int { return 2 })
	time.Sleep(40 * time.Millisecond)

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, log.all())

	s.Sweep()
	assert.ElementsMatch(t, []string{"a", "b"}, log.all())
	assert.Equal(t, 0, s.Len())
}

func TestStore_ExpiredKeyIsRecreated(t *testing.T) {
	s, log := newTestStore(t, Config{Capacity: 8, TTL: 20 * time.Millisecond, Shards: 1, CleanupInterval: time.Hour})

	s.GetOrCreate("a", func() int { return 1 })
	time.Sleep(40 * time.Millisecond)

	v, created := s.GetOrCreate("a", func() int { return 2 })
	assert.True(t, created)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"a"}, log.all())
}

func TestStore_Delete(t *testing.T) {
	s, log := newTestStore(t, Config{Capacity: 8, TTL: time.Minute})

	s.GetOrCreate("a", func() int { return 1 })
	s.Delete("a")
	s.Delete("a")

	assert.Equal(t, []string{"a"}, log.all())
	assert.Equal(t, 0, s.Len())
}

func TestStore_StopEvictsEverything(t *testing.T) {
	log := &evictLog{}
	s := New[int](Config{Capacity: 32, TTL: time.Minute, Shards: 4}, log.record)

	for i := 0; i < 5; i++ {
		s.GetOrCreate(fmt.Sprintf("k%d", i), func() int { return i })
	}
	s.Stop()
	s.Stop()

	assert.Len(t, log.all(), 5)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentStop(t *testing.T) {
	log := &evictLog{}
	s := New[int](Config{Capacity: 64, TTL: time.Minute, Shards: 4}, log.record)
	for i := 0; i < 10; i++ {
		s.GetOrCreate(fmt.Sprintf("k%d", i), func() int { return i })
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.NotPanics(t, s.Stop)
		}()
	}
	close(start)
	wg.Wait()

	assert.Len(t, log.all(), 10, "each session is evicted once")
	assert.Equal(t, 0, s.Len())
}

func TestStore_Metrics(t *testing.T) {
	s, _ := newTestStore(t, Config{Capacity: 4, TTL: time.Minute, Shards: 1})

	s.GetOrCreate("a", func() int { return 1 })
	s.Get("a")
	s.Get("b")

	m := s.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(2), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 4, m.Capacity)
}

func TestStore_Concurrency(t *testing.T) {
	s, _ := newTestStore(t, Config{Capacity: 1024, TTL: time.Minute, Shards: 8})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("session-%d", i%10)
			s.GetOrCreate(key, func() int { return i })
			s.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
}
