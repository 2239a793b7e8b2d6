package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// bucketIdleTTL is how long a client bucket may sit unused before the store
// evicts it. Keeps the per-IP map bounded under churny traffic.
const bucketIdleTTL = 10 * time.Minute

// RateLimitConfig tunes the per-client token buckets.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig is sized for a single clinic's API traffic.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
	}
}

type tokenBucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(rate float64, burst int) *tokenBucket {
	return &tokenBucket{
		tokens:     float64(burst),
		maxTokens:  float64(burst),
		refillRate: rate,
		lastRefill: time.Now(),
	}
}

func (b *tokenBucket) refillLocked(now time.Time) {
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refillLocked(time.Now())
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// remaining reports the whole tokens left, for the X-RateLimit-Remaining
// header. Read-only: no refill, no spend.
func (b *tokenBucket) remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return int(math.Floor(b.tokens))
}

func (b *tokenBucket) retryAfter() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.refillRate <= 0 {
		return 1
	}
	return int((1-b.tokens)/b.refillRate) + 1
}

// idle reports whether the bucket is full and untouched long enough to drop.
func (b *tokenBucket) idle(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.lastRefill) > bucketIdleTTL
}

type rateLimiterStore struct {
	buckets   map[string]*tokenBucket
	mu        sync.RWMutex
	config    RateLimitConfig
	lastSweep time.Time
}

func newRateLimiterStore(cfg RateLimitConfig) *rateLimiterStore {
	return &rateLimiterStore{
		buckets:   make(map[string]*tokenBucket),
		config:    cfg,
		lastSweep: time.Now(),
	}
}

func (s *rateLimiterStore) getBucket(key string) *tokenBucket {
	s.mu.RLock()
	bucket, ok := s.buckets[key]
	s.mu.RUnlock()
	if ok {
		return bucket
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket, ok := s.buckets[key]; ok {
		return bucket
	}
	s.sweepLocked(time.Now())
	bucket = newTokenBucket(s.config.RequestsPerSecond, s.config.BurstSize)
	s.buckets[key] = bucket
	return bucket
}

// sweepLocked drops buckets idle past their TTL. Piggybacks on the write path
// that inserts new buckets, at most once per TTL.
func (s *rateLimiterStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < bucketIdleTTL {
		return
	}
	s.lastSweep = now
	for key, bucket := range s.buckets {
		if bucket.idle(now) {
			delete(s.buckets, key)
		}
	}
}

// RateLimit throttles requests per client IP. Rejections carry Retry-After;
// every response carries the X-RateLimit-Limit and X-RateLimit-Remaining pair.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	store := newRateLimiterStore(cfg)
	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bucket := store.getBucket(c.RealIP())

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", limit)
			if !bucket.allow() {
				header.Set("Retry-After", strconv.Itoa(bucket.retryAfter()))
				header.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			header.Set("X-RateLimit-Remaining", strconv.Itoa(bucket.remaining()))

			return next(c)
		}
	}
}
