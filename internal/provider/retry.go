package provider

import (
	"context"
	"time"
)

// DefaultRetryAttempts is the connection-retry budget per operation.
const DefaultRetryAttempts = 3

// LinearBackoff returns a backoff function producing step, 2*step, 3*step...
// With the default 2s step this yields the 2s/4s/6s retry schedule.
func LinearBackoff(step time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		return time.Duration(attempt+1) * step
	}
}

// WithRetry runs op up to attempts times, sleeping backoff(attempt) between
// tries. A non-retryable error, per isRetryable, aborts immediately. Context
// cancellation is honored during the backoff sleep.
func WithRetry(ctx context.Context, attempts int, backoff func(attempt int) time.Duration, isRetryable func(error) bool, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
	return lastErr
}

// FirstSuccess evaluates strategies in order and returns the result of the
// first one that yields at least one item. An error aborts the ladder; an
// empty result moves on to the next strategy. Returns the last (empty)
// result when every strategy comes up empty.
func FirstSuccess[T any](ctx context.Context, strategies []func(ctx context.Context) ([]T, error)) ([]T, error) {
	var last []T
	for _, strategy := range strategies {
		items, err := strategy(ctx)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			return items, nil
		}
		last = items
	}
	return last, nil
}
