// Package ratelimit holds the in-process login throttle used when no Redis
// server is configured. Counters are lost on restart and not shared between
// replicas.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginThrottle keeps a token bucket per key. Each failed login takes a
// token; the bucket refills at maxAttempts per window.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	now      func() time.Time
}

func NewLoginThrottle(maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &LoginThrottle{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(maxAttempts) / window.Seconds()),
		burst:    maxAttempts,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (t *LoginThrottle) WithClock(now func() time.Time) *LoginThrottle {
	t.now = now
	return t
}

func (t *LoginThrottle) Allow(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	limiter, ok := t.limiters[key]
	if !ok {
		return true, nil
	}
	return limiter.TokensAt(t.now()) >= 1, nil
}

func (t *LoginThrottle) Fail(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	limiter, ok := t.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(t.rate, t.burst)
		t.limiters[key] = limiter
	}
	limiter.AllowN(t.now(), 1)
	return nil
}

func (t *LoginThrottle) Reset(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.limiters, key)
	return nil
}

// Prune drops buckets that have fully refilled.
func (t *LoginThrottle) Prune() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, limiter := range t.limiters {
		if limiter.TokensAt(now) >= float64(t.burst) {
			delete(t.limiters, key)
		}
	}
}

// StartPruning prunes every interval until ctx is cancelled.
func (t *LoginThrottle) StartPruning(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Prune()
			}
		}
	}()
}
