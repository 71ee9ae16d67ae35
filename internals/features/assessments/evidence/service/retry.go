// file: internals/features/assessments/evidence/service/retry.go
package service

import (
	"context"
	"math/rand"
	"time"

	ossHelper "cyberassess_backend/internals/helpers/oss"
	"cyberassess_backend/internals/helpers/errs"
)

// RetryPolicy is an explicit, cancellable retry object: exponential backoff
// from BaseDelay, doubling per attempt, capped at MaxDelay, with jitter to
// avoid thundering-herd retries. It is owned by the evidence service, not
// by any UI lifecycle; cancelling the context stops the timers.
type RetryPolicy struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxAttempts int

	// Retriable decides whether an error is worth another attempt.
	// Defaults to the blob-store transient signal set.
	Retriable func(error) bool

	// Injection points for tests.
	Sleep func(ctx context.Context, d time.Duration) error
	Rand  func() float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
		MaxAttempts: 4,
	}
}

func (p RetryPolicy) retriable(err error) bool {
	if p.Retriable != nil {
		return p.Retriable(err)
	}
	return ossHelper.IsRetriable(err) || errs.IsTransient(err)
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p RetryPolicy) jitter() float64 {
	if p.Rand != nil {
		return p.Rand()
	}
	return rand.Float64()
}

// DelayFor returns the pre-jitter backoff delay for a zero-based attempt.
func (p RetryPolicy) DelayFor(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d
}

// Do runs op up to MaxAttempts times. Non-retriable errors return
// immediately; exhausting attempts returns the last error wrapped as
// transient so callers can degrade to an empty-but-usable view.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !p.retriable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}
		// Up to 50% extra, so simultaneous clients fan out.
		d := p.DelayFor(attempt)
		d += time.Duration(p.jitter() * 0.5 * float64(d))
		if err := p.sleep(ctx, d); err != nil {
			return err
		}
	}
	return errs.Transientf("gave up after %d attempts: %v", attempts, lastErr)
}
