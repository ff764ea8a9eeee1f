// Package ratelimit provides a best-effort, in-process keyed rate limiter
// for abuse throttling. State is not durable and not shared across
// instances; it resets on restart, which is acceptable because it guards
// no correctness invariant.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const sweepInterval = time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter tracks one token bucket per key (typically a client IP).
type Limiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

// New creates a limiter allowing perMinute requests per key with the given
// burst. Idle keys are evicted after a few minutes to bound memory.
func New(perMinute int, burst int) *Limiter {
	return &Limiter{
		entries:   make(map[string]*entry),
		limit:     rate.Limit(float64(perMinute) / 60.0),
		burst:     burst,
		idleTTL:   5 * time.Minute,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now

	return e.limiter.Allow()
}

// sweep evicts idle entries. Caller holds the lock.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now

	for key, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, key)
		}
	}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
