// file: internals/features/assessments/evidence/service/session.go
package service

import (
	"context"
	"time"
)

// SessionChecker revalidates the caller's session before a download hits
// the network. Downloads through a session that is about to expire fail
// halfway through large files, so near-expiry sessions are refreshed first.
type SessionChecker interface {
	EnsureFresh(ctx context.Context) error
}

// TokenSession wraps an expiry timestamp and a refresh callback.
type TokenSession struct {
	ExpiresAt time.Time
	Leeway    time.Duration
	Refresh   func(ctx context.Context) (newExpiry time.Time, err error)

	now func() time.Time
}

func NewTokenSession(expiresAt time.Time, leeway time.Duration, refresh func(ctx context.Context) (time.Time, error)) *TokenSession {
	return &TokenSession{ExpiresAt: expiresAt, Leeway: leeway, Refresh: refresh, now: time.Now}
}

func (s *TokenSession) EnsureFresh(ctx context.Context) error {
	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	if nowFn().Add(s.Leeway).Before(s.ExpiresAt) {
		return nil
	}
	if s.Refresh == nil {
		return context.DeadlineExceeded
	}
	newExpiry, err := s.Refresh(ctx)
	if err != nil {
		return err
	}
	s.ExpiresAt = newExpiry
	return nil
}

// NoopSession is used where the transport already guarantees freshness.
type NoopSession struct{}

func (NoopSession) EnsureFresh(context.Context) error { return nil }
