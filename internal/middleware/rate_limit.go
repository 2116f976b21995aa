package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/i18n"
)

const defaultNumShards = 16

// visitor tracks the fixed window of one client.
type visitor struct {
	tokens    int
	lastReset time.Time
}

type rateLimiterShard struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// RateLimiter is a fixed-window limiter sharded by client key.
type RateLimiter struct {
	shards   []*rateLimiterShard
	rate     int
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewRateLimiter allows rate requests per window for each client.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with a custom shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{visitors: make(map[string]*visitor)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		stopCh: make(chan struct{}),
		now:    time.Now,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) getShard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// allow takes one token for key. retryAfter is the time left in the window.
func (rl *RateLimiter) allow(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	shard := rl.getShard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := rl.now()
	v, exists := shard.visitors[key]
	if !exists || now.Sub(v.lastReset) >= rl.window {
		shard.visitors[key] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true, rl.rate - 1, rl.window
	}

	retryAfter = rl.window - now.Sub(v.lastReset)
	if v.tokens <= 0 {
		return false, 0, retryAfter
	}

	v.tokens--
	return true, v.tokens, retryAfter
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// SessionRateLimit limits requests per form session, falling back to the
// client IP when no session is known. It must run after Session.
func (rl *RateLimiter) SessionRateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		if id := GetSessionID(c); id != "" {
			return "session:" + id
		}
		return "ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) limit(key func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, retryAfter := rl.allow(key(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired forgets clients idle for two windows.
func (rl *RateLimiter) cleanupExpired() {
	now := rl.now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for key, v := range shard.visitors {
			if now.Sub(v.lastReset) > threshold {
				delete(shard.visitors, key)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop halts the cleanup goroutine. It is safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked clients in total and per shard.
func (rl *RateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.visitors)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}
