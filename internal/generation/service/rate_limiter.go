package service

import (
	"context"
	"time"
)

// TemplateCounter reports how many private templates a user created within
// a window. Backed by the templates repository in production.
type TemplateCounter interface {
	CountPrivateCreatedSince(ctx context.Context, userID string, since time.Time) (int, error)
}

// RateLimiter enforces the per-user generation quota by counting the
// private templates created inside the sliding window. Creating templates
// through other paths also consumes quota; that is intentional, the limit
// guards total private-template churn, not just this endpoint.
type RateLimiter struct {
	counter TemplateCounter
	window  time.Duration
	max     int
}

func NewRateLimiter(counter TemplateCounter, window time.Duration, max int) *RateLimiter {
	return &RateLimiter{counter: counter, window: window, max: max}
}

// Allow reports whether the user has quota left. A counting failure is
// returned as an error, not silently treated as allowed or denied.
func (l *RateLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	since := time.Now().Add(-l.window)
	count, err := l.counter.CountPrivateCreatedSince(ctx, userID, since)
	if err != nil {
		return false, err
	}
	return count < l.max, nil
}
