// Package ratelimit applies a fixed-window request limit to token issuance so
// an unauthenticated caller cannot mint tokens at line rate.
package ratelimit

import (
	"context"
	"time"
)

// WindowStore increments a counter for the current window of the given key and
// returns the post-increment count. Implementations own window expiry.
type WindowStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter is a fixed-window rate limiter over a WindowStore.
type Limiter struct {
	store  WindowStore
	limit  int64
	window time.Duration
}

func NewLimiter(store WindowStore, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: int64(limit), window: window}
}

// Allow reports whether the key is still inside its budget for this window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}
