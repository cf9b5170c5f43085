package ratelimit

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterFixedWindow(t *testing.T) {
	now := time.Now()
	store := NewMemoryStore(WithClock(func() time.Time { return now }))
	limiter := NewLimiter(store, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request should be rejected")

	// Other keys are unaffected.
	allowed, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, allowed)

	// Window expiry resets the budget.
	now = now.Add(2 * time.Minute)
	allowed, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMiddlewareRejectsOverBudget(t *testing.T) {
	store := NewMemoryStore()
	limiter := NewLimiter(store, 1, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := Middleware(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/jwt", nil)
	req.RemoteAddr = "203.0.113.7:9999"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, assert.AnError
}

func TestMiddlewareFailsOpen(t *testing.T) {
	limiter := NewLimiter(failingStore{}, 1, time.Minute)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := Middleware(limiter, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jwt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
