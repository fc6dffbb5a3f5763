package limiter

import (
	"context"
	"sync"
	"time"
)

const idleBucketTTL = 5 * time.Minute

// tokenBucket allows bursts of up to capacity and refills continuously
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// MemoryLimiter keeps one token bucket per client in process memory.
// Suitable for single-instance deployments.
type MemoryLimiter struct {
	buckets  sync.Map // key -> *tokenBucket
	capacity float64
	rate     float64 // tokens per second
	now      func() time.Time

	cleanupMu   sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter allows limit requests per window for each key
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		capacity:    float64(limit),
		rate:        float64(limit) / window.Seconds(),
		now:         time.Now,
		lastCleanup: time.Now(),
	}
}

// Allow consumes one token from the key's bucket
func (rl *MemoryLimiter) Allow(_ context.Context, key string) bool {
	now := rl.now()
	bucket := rl.bucket(key, now)

	bucket.mu.Lock()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	if elapsed > 0 {
		bucket.tokens = min(rl.capacity, bucket.tokens+elapsed*rl.rate)
		bucket.lastRefill = now
	}
	allowed := bucket.tokens >= 1
	if allowed {
		bucket.tokens--
	}
	bucket.mu.Unlock()

	rl.maybeCleanup(now)
	return allowed
}

func (rl *MemoryLimiter) bucket(key string, now time.Time) *tokenBucket {
	if value, ok := rl.buckets.Load(key); ok {
		return value.(*tokenBucket)
	}
	actual, _ := rl.buckets.LoadOrStore(key, &tokenBucket{tokens: rl.capacity, lastRefill: now})
	return actual.(*tokenBucket)
}

// maybeCleanup drops buckets idle for longer than idleBucketTTL
func (rl *MemoryLimiter) maybeCleanup(now time.Time) {
	rl.cleanupMu.Lock()
	defer rl.cleanupMu.Unlock()

	if now.Sub(rl.lastCleanup) < idleBucketTTL {
		return
	}

	threshold := now.Add(-idleBucketTTL)
	rl.buckets.Range(func(key, value any) bool {
		bucket := value.(*tokenBucket)
		bucket.mu.Lock()
		idle := bucket.lastRefill.Before(threshold)
		bucket.mu.Unlock()

		if idle {
			rl.buckets.Delete(key)
		}
		return true
	})

	rl.lastCleanup = now
}

// Close is a no-op for the in-memory limiter
func (rl *MemoryLimiter) Close() error {
	return nil
}
