package ratelimit

import (
	"math"
	"sync"
	"time"
)

const (
	defaultCeiling = 5
	defaultWindow  = 60 * time.Second
)

// SlidingWindow admits up to Ceiling requests per user within a trailing
// window. Windows are created lazily on first admission and live only for
// the process lifetime.
type SlidingWindow struct {
	ceiling int
	window  time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*userWindow
}

type userWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

// NewSlidingWindow constructs a limiter. A nil now falls back to time.Now.
func NewSlidingWindow(ceiling int, window time.Duration, now func() time.Time) *SlidingWindow {
	if ceiling <= 0 {
		ceiling = defaultCeiling
	}
	if window <= 0 {
		window = defaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &SlidingWindow{
		ceiling: ceiling,
		window:  window,
		now:     now,
		entries: make(map[string]*userWindow),
	}
}

// Admit checks and records an admission for userID. Check-and-record is
// atomic per user key; different users never contend on the same lock.
func (l *SlidingWindow) Admit(userID string) Decision {
	if l == nil {
		return Decision{Allowed: true}
	}
	entry := l.entry(userID)
	now := l.now()
	cutoff := now.Add(-l.window)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	kept := entry.stamps[:0]
	for _, ts := range entry.stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	entry.stamps = kept

	if len(entry.stamps) < l.ceiling {
		entry.stamps = append(entry.stamps, now)
		return Decision{Allowed: true}
	}

	oldest := entry.stamps[0]
	wait := oldest.Add(l.window).Sub(now)
	retryAfter := int(math.Ceil(wait.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return Decision{Allowed: false, RetryAfterSeconds: retryAfter}
}

func (l *SlidingWindow) entry(userID string) *userWindow {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[userID]
	if !ok {
		entry = &userWindow{}
		l.entries[userID] = entry
	}
	return entry
}
