// Package ratelimit implements fixed-window request budgets tracked per
// caller identity. A single Limiter instance is shared by every request so
// concurrent calls from the same identity see one atomic counter.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Budget describes one request budget: at most Limit requests per Window.
// Scope namespaces the counter; budgets with the same scope share counters
// across endpoints (e.g. the global day/hour budgets), while per-endpoint
// budgets use the endpoint name as scope.
type Budget struct {
	Scope  string
	Name   string // human-readable window name: "day", "hour", "minute"
	Limit  int
	Window time.Duration
}

// String returns the human-readable form of the budget, e.g. "10 per minute".
func (b Budget) String() string {
	return fmt.Sprintf("%d per %s", b.Limit, b.Name)
}

// Decision is the outcome of a rate-limit check.
type Decision struct {
	Allowed bool
	// Budget is the budget that denied the request (zero-valued when allowed).
	Budget Budget
	// RetryAfter is how long until the denying window resets.
	RetryAfter time.Duration
}

type counter struct {
	windowStart time.Time
	count       int
}

// Limiter tracks fixed-window counters per (scope, identity).
type Limiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the limiter's clock. Used by tests to advance windows.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter and starts a background sweep of expired counters.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, o := range opts {
		o(l)
	}
	go l.sweep()
	return l
}

// Allow checks every budget for the identity, incrementing each counter that
// still has room. The first exhausted budget denies the request; counters
// are only charged when the request is allowed, so a denied request does not
// consume budget in other windows.
func (l *Limiter) Allow(identity string, budgets ...Budget) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	counters := make([]*counter, len(budgets))
	for i, b := range budgets {
		c := l.counterFor(b, identity, now)
		if c.count >= b.Limit {
			return Decision{
				Allowed:    false,
				Budget:     b,
				RetryAfter: c.windowStart.Add(b.Window).Sub(now),
			}
		}
		counters[i] = c
	}
	for _, c := range counters {
		c.count++
	}
	return Decision{Allowed: true}
}

// counterFor returns the live counter for a budget/identity pair, resetting
// it when its window has elapsed. Caller holds l.mu.
func (l *Limiter) counterFor(b Budget, identity string, now time.Time) *counter {
	key := b.Scope + "|" + b.Name + "|" + identity
	c, ok := l.counters[key]
	if !ok {
		c = &counter{windowStart: now}
		l.counters[key] = c
		return c
	}
	if now.Sub(c.windowStart) >= b.Window {
		c.windowStart = now
		c.count = 0
	}
	return c
}

// Close stops the background sweep.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// sweep periodically drops counters whose window start is older than the
// longest budget window, bounding memory under identity churn.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := l.now().Add(-25 * time.Hour)
			for key, c := range l.counters {
				if c.windowStart.Before(cutoff) {
					delete(l.counters, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
