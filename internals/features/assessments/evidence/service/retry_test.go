package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberassess_backend/internals/helpers/errs"
	ossHelper "cyberassess_backend/internals/helpers/oss"
)

func testPolicy(sleeps *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    time.Second,
		MaxAttempts: 4,
		Sleep: func(ctx context.Context, d time.Duration) error {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
			return nil
		},
		Rand: func() float64 { return 0 }, // no jitter in assertions
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	var sleeps []time.Duration
	p := testPolicy(&sleeps)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return oss.ServiceError{StatusCode: 503}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	// Exponential: 100ms then 200ms.
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, sleeps)
}

func TestRetryDelayCapped(t *testing.T) {
	p := testPolicy(nil)
	assert.Equal(t, 100*time.Millisecond, p.DelayFor(0))
	assert.Equal(t, 800*time.Millisecond, p.DelayFor(3))
	assert.Equal(t, time.Second, p.DelayFor(10), "delay never exceeds MaxDelay")
}

func TestRetryJitterBounded(t *testing.T) {
	var sleeps []time.Duration
	p := testPolicy(&sleeps)
	p.Rand = func() float64 { return 1 } // max jitter

	_ = p.Do(context.Background(), func(ctx context.Context) error {
		return oss.ServiceError{StatusCode: 502}
	})
	require.NotEmpty(t, sleeps)
	// base 100ms + at most 50% extra
	assert.Equal(t, 150*time.Millisecond, sleeps[0])
}

func TestRetryNonRetriableReturnsImmediately(t *testing.T) {
	p := testPolicy(nil)
	terminal := errors.New("schema violation")

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return terminal
	})
	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls)
}

func TestRetryExhaustionWrapsTransient(t *testing.T) {
	p := testPolicy(nil)

	calls := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return oss.ServiceError{StatusCode: 504}
	})
	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, errs.ErrTransient)
}

func TestRetryRetriableSignalSet(t *testing.T) {
	assert.True(t, ossHelper.IsRetriable(oss.ServiceError{StatusCode: 502}))
	assert.True(t, ossHelper.IsRetriable(oss.ServiceError{StatusCode: 503}))
	assert.True(t, ossHelper.IsRetriable(oss.ServiceError{StatusCode: 504}))
	assert.True(t, ossHelper.IsRetriable(oss.ServiceError{Code: "ServiceUnavailable"}))
	assert.False(t, ossHelper.IsRetriable(oss.ServiceError{StatusCode: 403}))
	assert.False(t, ossHelper.IsRetriable(oss.ServiceError{StatusCode: 404}))
	assert.False(t, ossHelper.IsRetriable(errors.New("plain error")))
}

func TestRetryCancellation(t *testing.T) {
	p := testPolicy(nil)
	ctx, cancel := context.WithCancel(context.Background())
	p.Sleep = func(ctx context.Context, d time.Duration) error {
		cancel() // owner tears the context down mid-backoff
		return ctx.Err()
	}

	calls := 0
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		return oss.ServiceError{StatusCode: 503}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no attempt fires after cancellation")
}
