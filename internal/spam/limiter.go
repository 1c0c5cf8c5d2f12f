package spam

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing interval messages are counted in
	DefaultWindow = 10 * time.Second
	// DefaultLimit is the number of messages allowed inside the window
	DefaultLimit = 5
)

// Limiter is a per-user sliding-window message-rate counter. It keeps
// process-lifetime state only and never blocks future messages itself:
// every call recomputes the window.
type Limiter struct {
	window time.Duration
	limit  int

	mu    sync.Mutex
	times map[int64][]time.Time
}

// NewLimiter creates a limiter with the default window and limit
func NewLimiter() *Limiter {
	return NewLimiterWith(DefaultWindow, DefaultLimit)
}

// NewLimiterWith creates a limiter with an explicit window and limit
func NewLimiterWith(window time.Duration, limit int) *Limiter {
	return &Limiter{
		window: window,
		limit:  limit,
		times:  make(map[int64][]time.Time),
	}
}

// RegisterAndCheck records one message at now and reports whether the
// user is currently spamming: entries older than the window are purged,
// now is appended, and the user is flagged when the remaining count
// exceeds the limit.
func (l *Limiter) RegisterAndCheck(userID int64, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.times[userID][:0]
	for _, t := range l.times[userID] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}
	recent = append(recent, now)
	l.times[userID] = recent

	return len(recent) > l.limit
}

// PruneIdle evicts users whose last message is older than maxIdle,
// bounding memory over the process lifetime. Returns the number of
// users evicted.
func (l *Limiter) PruneIdle(now time.Time, maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for userID, ts := range l.times {
		if len(ts) == 0 || now.Sub(ts[len(ts)-1]) > maxIdle {
			delete(l.times, userID)
			evicted++
		}
	}
	return evicted
}
