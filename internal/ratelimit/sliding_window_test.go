package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAdmitRejectsAtCeiling(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSlidingWindow(5, 60*time.Second, func() time.Time { return now })

	for i := 0; i < 5; i++ {
		if d := limiter.Admit("user-1"); !d.Allowed {
			t.Fatalf("request %d expected admission", i+1)
		}
	}

	d := limiter.Admit("user-1")
	if d.Allowed {
		t.Fatalf("request 6 expected rejection")
	}
	if d.RetryAfterSeconds != 60 {
		t.Fatalf("expected retryAfter=60, got %d", d.RetryAfterSeconds)
	}
}

func TestAdmitWindowSlides(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSlidingWindow(2, 60*time.Second, func() time.Time { return now })

	if d := limiter.Admit("user-1"); !d.Allowed {
		t.Fatalf("first admission expected")
	}
	now = now.Add(30 * time.Second)
	if d := limiter.Admit("user-1"); !d.Allowed {
		t.Fatalf("second admission expected")
	}

	d := limiter.Admit("user-1")
	if d.Allowed {
		t.Fatalf("third admission expected rejection")
	}
	if d.RetryAfterSeconds != 30 {
		t.Fatalf("expected retryAfter=30, got %d", d.RetryAfterSeconds)
	}

	now = now.Add(31 * time.Second)
	if d := limiter.Admit("user-1"); !d.Allowed {
		t.Fatalf("admission expected after oldest stamp left the window")
	}
}

func TestAdmitIsolatesUsers(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSlidingWindow(1, 60*time.Second, func() time.Time { return now })

	if d := limiter.Admit("user-1"); !d.Allowed {
		t.Fatalf("user-1 admission expected")
	}
	if d := limiter.Admit("user-2"); !d.Allowed {
		t.Fatalf("user-2 admission expected despite user-1 being full")
	}
}

func TestAdmitConcurrentNeverExceedsCeiling(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewSlidingWindow(5, 60*time.Second, func() time.Time { return now })

	var admitted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := limiter.Admit("user-1"); d.Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got != 5 {
		t.Fatalf("expected exactly 5 concurrent admissions, got %d", got)
	}
}

func TestNilLimiterAllows(t *testing.T) {
	var limiter *SlidingWindow
	if d := limiter.Admit("user-1"); !d.Allowed {
		t.Fatalf("nil limiter must allow")
	}
}
