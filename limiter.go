package portfolio

import (
	"sync"
	"time"
)

// RateLimiter is a per-key sliding-window limiter, used to cap contact form
// submissions per IP address.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter that allows max attempts per window.
// window must be positive.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	l := &RateLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for key, hits := range l.attempts {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.attempts, key)
			} else {
				l.attempts[key] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Stop ends the background cleanup goroutine.
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Allow checks if key has not exceeded the limit and records the attempt.
// The check and the record happen under one lock, so concurrent callers
// cannot both take the last slot.
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.attempts[key], now.Add(-l.window))
	if len(kept) >= l.max {
		l.attempts[key] = kept
		return false
	}
	l.attempts[key] = append(kept, now)
	return true
}

// Check returns true if key has not exceeded the limit.
// It does not record an attempt.
func (l *RateLimiter) Check(key string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.attempts[key], cutoff)
	l.attempts[key] = kept
	return len(kept) < l.max
}

// Record registers an attempt for key.
func (l *RateLimiter) Record(key string) {
	l.mu.Lock()
	l.attempts[key] = append(l.attempts[key], time.Now())
	l.mu.Unlock()
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
