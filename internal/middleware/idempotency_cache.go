package middleware

import (
	"sync"
	"time"
)

// cachedResponse is a response replayed for a repeated idempotency key.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        []byte
	Timestamp   time.Time
}

// idempotencyEntry is either a request still running or its stored response.
type idempotencyEntry struct {
	response *cachedResponse
	started  time.Time
}

// idempotencyCache stores responses by idempotency key and tracks keys whose
// first request is still being handled.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*idempotencyEntry
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:  make(map[string]*idempotencyEntry),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// reserve claims key. It returns the stored response for a finished request,
// or inFlight when another request holds the key.
func (c *idempotencyCache) reserve(key string) (resp *cachedResponse, inFlight bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if e, ok := c.items[key]; ok {
		switch {
		case e.response != nil && now.Sub(e.response.Timestamp) <= c.ttl:
			return e.response, false
		case e.response == nil && now.Sub(e.started) <= c.ttl:
			return nil, true
		}
	}

	c.items[key] = &idempotencyEntry{started: now}
	return nil, false
}

// complete stores the response for a reserved key.
func (c *idempotencyCache) complete(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp.Timestamp = time.Now()
	c.items[key] = &idempotencyEntry{response: resp}
}

// release drops a reservation so the key can be retried.
func (c *idempotencyCache) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *idempotencyCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes expired entries.
func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.items {
		ts := e.started
		if e.response != nil {
			ts = e.response.Timestamp
		}
		if now.Sub(ts) > c.ttl {
			delete(c.items, key)
		}
	}
}

// Stop halts the cleanup goroutine.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}
