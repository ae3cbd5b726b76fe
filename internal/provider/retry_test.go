package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, LinearBackoff(time.Millisecond), IsTransientError, func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("connection reset by peer")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryNonRetryableAbortsImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("invalid request payload")
	err := WithRetry(context.Background(), 3, LinearBackoff(time.Millisecond), IsTransientError, func(context.Context) error {
		calls++
		return fatal
	})
	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustsBudget(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, LinearBackoff(time.Millisecond), IsTransientError, func(context.Context) error {
		calls++
		return errors.New("connection refused")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(2 * time.Second)
	assert.Equal(t, 2*time.Second, backoff(0))
	assert.Equal(t, 4*time.Second, backoff(1))
	assert.Equal(t, 6*time.Second, backoff(2))
}

func TestFirstSuccess(t *testing.T) {
	var order []string
	strategies := []func(ctx context.Context) ([]string, error){
		func(context.Context) ([]string, error) { order = append(order, "a"); return nil, nil },
		func(context.Context) ([]string, error) { order = append(order, "b"); return []string{"hit"}, nil },
		func(context.Context) ([]string, error) { order = append(order, "c"); return []string{"never"}, nil },
	}

	items, err := FirstSuccess(context.Background(), strategies)
	require.NoError(t, err)
	assert.Equal(t, []string{"hit"}, items)
	assert.Equal(t, []string{"a", "b"}, order, "ladder stops at first non-empty result")
}

func TestFirstSuccessPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	strategies := []func(ctx context.Context) ([]int, error){
		func(context.Context) ([]int, error) { return nil, boom },
	}
	_, err := FirstSuccess(context.Background(), strategies)
	require.ErrorIs(t, err, boom)
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		quota bool
	}{
		{"quota text", errors.New("monthly quota exceeded"), true},
		{"run limit text", errors.New("actor run limit reached"), true},
		{"free tier text", errors.New("free tier limit hit"), true},
		{"status 429 text", errors.New("HTTP status 429"), true},
		{"plain failure", errors.New("something broke"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.quota, IsQuotaError(tt.err))
		})
	}
}

func TestIsTransientError(t *testing.T) {
	assert.True(t, IsTransientError(errors.New("read tcp: connection reset by peer")))
	assert.True(t, IsTransientError(errors.New("dial tcp: connection refused")))
	assert.True(t, IsTransientError(context.DeadlineExceeded))
	assert.False(t, IsTransientError(errors.New("schema mismatch")))
	assert.False(t, IsTransientError(nil))
}
