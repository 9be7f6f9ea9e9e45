package auth

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Policy names a rate-limit budget. Policies count independently: the same
// caller can be within budget on one policy and over budget on another.
type Policy string

const (
	PolicyPublic        Policy = "public"
	PolicyAuthenticated Policy = "authenticated"
	PolicyUpload        Policy = "upload"
)

// Budget is a fixed-window request allowance.
type Budget struct {
	Limit  int
	Window time.Duration
}

// DefaultBudgets are the per-policy allowances used unless configured
// otherwise.
func DefaultBudgets() map[Policy]Budget {
	return map[Policy]Budget{
		PolicyPublic:        {Limit: 60, Window: time.Minute},
		PolicyAuthenticated: {Limit: 120, Window: time.Minute},
		PolicyUpload:        {Limit: 10, Window: time.Minute},
	}
}

// Limiter decides whether a request identified by (policy, identifier) is
// allowed. Implementations must be safe for concurrent use; the check and
// the increment are a single atomic step.
type Limiter interface {
	Allow(ctx context.Context, policy Policy, identifier string) (bool, error)
}

// FixedWindowLimiter is an in-process Limiter using time-bucketed counters.
type FixedWindowLimiter struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	budgets  map[Policy]Budget
	now      func() time.Time
}

type windowCounter struct {
	count       int
	windowStart time.Time
}

// NewFixedWindowLimiter creates an in-process fixed-window limiter with the
// given per-policy budgets and starts a background sweep of stale counters.
func NewFixedWindowLimiter(budgets map[Policy]Budget) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		counters: make(map[string]*windowCounter),
		budgets:  budgets,
		now:      time.Now,
	}
	go l.cleanup()
	return l
}

// Allow atomically increments the counter for (policy, identifier) within
// the current window and reports whether the request fits the budget.
func (l *FixedWindowLimiter) Allow(ctx context.Context, policy Policy, identifier string) (bool, error) {
	budget, ok := l.budgets[policy]
	if !ok || budget.Limit <= 0 {
		return true, nil
	}

	now := l.now()
	windowStart := now.Truncate(budget.Window)
	key := string(policy) + "#" + identifier

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || c.windowStart.Before(windowStart) {
		c = &windowCounter{windowStart: windowStart}
		l.counters[key] = c
	}

	if c.count >= budget.Limit {
		return false, nil
	}
	c.count++
	return true, nil
}

// cleanup periodically drops counters whose window closed long ago.
func (l *FixedWindowLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := l.now().Add(-time.Hour)
		l.mu.Lock()
		for key, c := range l.counters {
			if c.windowStart.Before(cutoff) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIdentifier extracts the caller identity used for rate limiting:
// the first IP in the X-Forwarded-For header, else the literal "anonymous".
func ClientIdentifier(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return "anonymous"
	}
	if idx := strings.Index(forwarded, ","); idx >= 0 {
		forwarded = forwarded[:idx]
	}
	ip := strings.TrimSpace(forwarded)
	if ip == "" {
		return "anonymous"
	}
	return ip
}
