package ratelimit

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func minuteBudget(limit int) Budget {
	return Budget{Scope: "test", Name: "minute", Limit: limit, Window: time.Minute}
}

func TestAllow_WithinBudget(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	defer l.Close()

	for i := 0; i < 5; i++ {
		if d := l.Allow("alice", minuteBudget(5)); !d.Allowed {
			t.Errorf("request %d should be allowed", i)
		}
	}
}

func TestAllow_DeniesOverBudget(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	defer l.Close()

	b := minuteBudget(3)
	for i := 0; i < 3; i++ {
		l.Allow("alice", b)
	}

	d := l.Allow("alice", b)
	if d.Allowed {
		t.Fatal("4th request should be denied")
	}
	if d.Budget.String() != "3 per minute" {
		t.Errorf("expected denying budget '3 per minute', got %q", d.Budget.String())
	}
	if d.RetryAfter <= 0 || d.RetryAfter > time.Minute {
		t.Errorf("expected retry-after within the window, got %s", d.RetryAfter)
	}
}

func TestAllow_WindowReset(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	defer l.Close()

	b := minuteBudget(1)
	if d := l.Allow("alice", b); !d.Allowed {
		t.Fatal("first request should be allowed")
	}
	if d := l.Allow("alice", b); d.Allowed {
		t.Fatal("second request in the window should be denied")
	}

	clock.Advance(61 * time.Second)
	if d := l.Allow("alice", b); !d.Allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestAllow_IdentitiesIndependent(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	defer l.Close()

	b := minuteBudget(1)
	l.Allow("alice", b)
	if d := l.Allow("alice", b); d.Allowed {
		t.Fatal("alice should be over budget")
	}
	if d := l.Allow("bob", b); !d.Allowed {
		t.Fatal("bob should have an independent counter")
	}
}

func TestAllow_DeniedRequestDoesNotCharge(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	defer l.Close()

	day := Budget{Scope: "global", Name: "day", Limit: 10, Window: 24 * time.Hour}
	minute := minuteBudget(1)

	l.Allow("alice", day, minute)
	// Denied by the minute budget; the day counter must not be charged.
	for i := 0; i < 5; i++ {
		if d := l.Allow("alice", day, minute); d.Allowed {
			t.Fatal("should be denied by minute budget")
		}
	}

	for i := 0; i < 9; i++ {
		if d := l.Allow("alice", day); !d.Allowed {
			t.Fatalf("day budget should have 9 requests left, denied at %d", i)
		}
	}
	if d := l.Allow("alice", day); d.Allowed {
		t.Fatal("day budget should now be exhausted")
	}
}

func TestAllow_ConcurrentCounts(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	defer l.Close()

	b := minuteBudget(50)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := l.Allow("alice", b); d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("expected exactly 50 allowed, got %d", allowed)
	}
}
