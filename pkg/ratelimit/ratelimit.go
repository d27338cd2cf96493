// Package ratelimit bounds request volume per client key within fixed
// windows. Counters are process-local and reset when their window elapses.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"healthapp/pkg/apperr"
	"healthapp/pkg/envelope"
)

type window struct {
	start time.Time
	count int
}

// Limiter keeps one counter per client key. All mutation happens under the
// mutex so concurrent bursts from the same key never under- or over-count.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func New() *Limiter {
	l := &Limiter{windows: make(map[string]*window), now: time.Now}
	go l.cleanup()
	return l
}

// WithClock overrides the time source. Tests only.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
	return l
}

// Admit reports whether another request under key fits within the current
// window, counting it if so. The limit+1-th request of a window is denied.
func (l *Limiter) Admit(key string, limit int, windowDur time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= windowDur {
		l.windows[key] = &window{start: now, count: 1}
		return true
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// cleanup drops stale windows so idle keys do not accumulate.
func (l *Limiter) cleanup() {
	for {
		time.Sleep(10 * time.Minute)
		l.mu.Lock()
		cutoff := l.now().Add(-time.Hour)
		for k, w := range l.windows {
			if w.start.Before(cutoff) {
				delete(l.windows, k)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects with 429 before any handler logic runs. Keys combine
// the route name with the client IP so per-endpoint limits stay independent.
func Middleware(l *Limiter, name string, limit int, windowDur time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Admit(name+":"+c.IP(), limit, windowDur) {
			return envelope.Fail(c, apperr.RateLimited())
		}
		return c.Next()
	}
}
