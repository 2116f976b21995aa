package session

import (
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

// shard is an LRU list with idle expiry. head is the most recently used.
type shard[V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*entry[V]
	head      *entry[V]
	tail      *entry[V]
	hits      int64
	misses    int64
	evictions int64
}

func newShard[V any](capacity int, ttl time.Duration) *shard[V] {
	return &shard[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry[V], capacity),
	}
}

func (s *shard[V]) get(key string, now time.Time) (V, bool, []*entry[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.items[key]
	if !ok {
		s.misses++
		return zero, false, nil
	}
	if now.After(e.expiresAt) {
		s.removeEntry(e)
		s.misses++
		s.evictions++
		return zero, false, []*entry[V]{e}
	}
	e.expiresAt = now.Add(s.ttl)
	s.moveToFront(e)
	s.hits++
	return e.value, true, nil
}

func (s *shard[V]) getOrCreate(key string, create func() V, now time.Time) (V, bool, []*entry[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []*entry[V]
	if e, ok := s.items[key]; ok {
		if !now.After(e.expiresAt) {
			e.expiresAt = now.Add(s.ttl)
			s.moveToFront(e)
			s.hits++
			return e.value, false, nil
		}
		s.removeEntry(e)
		s.evictions++
		evicted = append(evicted, e)
	}

	s.misses++
	e := &entry[V]{key: key, value: create(), expiresAt: now.Add(s.ttl)}
	s.items[key] = e
	s.addToFront(e)

	for len(s.items) > s.capacity && s.tail != nil {
		lru := s.tail
		s.removeEntry(lru)
		s.evictions++
		evicted = append(evicted, lru)
	}
	return e.value, true, evicted
}

func (s *shard[V]) remove(key string) *entry[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		return nil
	}
	s.removeEntry(e)
	return e
}

func (s *shard[V]) expire(now time.Time) []*entry[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []*entry[V]
	for e := s.tail; e != nil; {
		prev := e.prev
		if now.After(e.expiresAt) {
			s.removeEntry(e)
			s.evictions++
			evicted = append(evicted, e)
		}
		e = prev
	}
	return evicted
}

func (s *shard[V]) clear() []*entry[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := make([]*entry[V], 0, len(s.items))
	for e := s.head; e != nil; e = e.next {
		evicted = append(evicted, e)
	}
	s.items = make(map[string]*entry[V], s.capacity)
	s.head, s.tail = nil, nil
	return evicted
}

func (s *shard[V]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *shard[V]) metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Metrics{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      len(s.items),
		Capacity:  s.capacity,
	}
}

func (s *shard[V]) removeEntry(e *entry[V]) {
	delete(s.items, e.key)
	s.unlink(e)
}

func (s *shard[V]) moveToFront(e *entry[V]) {
	if e == s.head {
		return
	}
	s.unlink(e)
	s.addToFront(e)
}

func (s *shard[V]) addToFront(e *entry[V]) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *shard[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev, e.next = nil, nil
}
