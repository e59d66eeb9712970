package portfolio

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRateLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third attempt to be blocked")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRateLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first attempt to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second attempt to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected attempt after window to be allowed")
	}
}

func TestRateLimiterIsPerKey(t *testing.T) {
	limiter := NewRateLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestRateLimiterCheckDoesNotRecord(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.40"

	for i := 0; i < 3; i++ {
		if !limiter.Check(ip) {
			t.Fatalf("check %d: expected allowed", i)
		}
	}
	limiter.Record(ip)
	if limiter.Check(ip) {
		t.Fatalf("expected check to fail after record")
	}
}

func TestRateLimiterConcurrentAllowNeverExceedsMax(t *testing.T) {
	const max = 5
	limiter := NewRateLimiter(max, time.Minute)
	defer limiter.Stop()
	ip := "203.0.113.50"

	var allowed atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if limiter.Allow(ip) {
				allowed.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := allowed.Load(); got != max {
		t.Fatalf("allowed %d concurrent attempts, want %d", got, max)
	}
}
