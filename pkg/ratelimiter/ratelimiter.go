// Package ratelimiter implements a token bucket rate limiter.
package ratelimiter

import (
	"sync"
	"time"
)

type RateLimiter interface {
	TakeToken() bool
	Wait()
}

// TokenBucket refills refillRate tokens per second up to capacity.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   int64
	tokens     int64
	refillRate int64
	lastRefill time.Time
}

func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) TakeToken() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	refilled := int64(now.Sub(tb.lastRefill).Seconds()) * tb.refillRate
	if tb.tokens+refilled < tb.capacity {
		tb.tokens += refilled
	} else {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available.
func (tb *TokenBucket) Wait() {
	interval := time.Second / time.Duration(tb.refillRate)
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}

	for !tb.TakeToken() {
		time.Sleep(interval)
	}
}
