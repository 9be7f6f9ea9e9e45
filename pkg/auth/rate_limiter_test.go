package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(budgets map[Policy]Budget) (*FixedWindowLimiter, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := &FixedWindowLimiter{
		counters: make(map[string]*windowCounter),
		budgets:  budgets,
		now:      func() time.Time { return current },
	}
	return l, &current
}

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()
	budgets := map[Policy]Budget{
		PolicyUpload: {Limit: 3, Window: time.Minute},
	}

	t.Run("allows up to the limit then denies", func(t *testing.T) {
		l, _ := newTestLimiter(budgets)

		for i := 0; i < 3; i++ {
			allowed, err := l.Allow(ctx, PolicyUpload, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, allowed, "request %d", i+1)
		}

		allowed, err := l.Allow(ctx, PolicyUpload, "1.2.3.4")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("window reset restores the budget", func(t *testing.T) {
		l, clock := newTestLimiter(budgets)

		for i := 0; i < 3; i++ {
			l.Allow(ctx, PolicyUpload, "1.2.3.4")
		}
		allowed, _ := l.Allow(ctx, PolicyUpload, "1.2.3.4")
		require.False(t, allowed)

		*clock = clock.Add(time.Minute)

		allowed, err := l.Allow(ctx, PolicyUpload, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("identifiers count independently", func(t *testing.T) {
		l, _ := newTestLimiter(budgets)

		for i := 0; i < 3; i++ {
			l.Allow(ctx, PolicyUpload, "1.2.3.4")
		}
		allowed, _ := l.Allow(ctx, PolicyUpload, "1.2.3.4")
		require.False(t, allowed)

		allowed, err := l.Allow(ctx, PolicyUpload, "5.6.7.8")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("policies count independently", func(t *testing.T) {
		l, _ := newTestLimiter(map[Policy]Budget{
			PolicyUpload: {Limit: 1, Window: time.Minute},
			PolicyPublic: {Limit: 1, Window: time.Minute},
		})

		l.Allow(ctx, PolicyUpload, "1.2.3.4")
		allowed, _ := l.Allow(ctx, PolicyUpload, "1.2.3.4")
		require.False(t, allowed)

		allowed, err := l.Allow(ctx, PolicyPublic, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("unknown policy is never limited", func(t *testing.T) {
		l, _ := newTestLimiter(budgets)

		for i := 0; i < 100; i++ {
			allowed, err := l.Allow(ctx, Policy("other"), "1.2.3.4")
			require.NoError(t, err)
			require.True(t, allowed)
		}
	})
}

func TestClientIdentifier(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		want      string
	}{
		{"no header", "", "anonymous"},
		{"single ip", "203.0.113.9", "203.0.113.9"},
		{"proxy chain takes first", "203.0.113.9, 70.41.3.18, 150.172.238.178", "203.0.113.9"},
		{"whitespace trimmed", "  203.0.113.9 , 70.41.3.18", "203.0.113.9"},
		{"empty first entry", " , 70.41.3.18", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIdentifier(r))
		})
	}
}

func TestDefaultBudgets(t *testing.T) {
	budgets := DefaultBudgets()
	assert.Equal(t, Budget{Limit: 60, Window: time.Minute}, budgets[PolicyPublic])
	assert.Equal(t, Budget{Limit: 120, Window: time.Minute}, budgets[PolicyAuthenticated])
	assert.Equal(t, Budget{Limit: 10, Window: time.Minute}, budgets[PolicyUpload])
}
