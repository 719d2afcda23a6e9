// Package sessionrate limits how fast a single configurator session may
// submit statements. Its Checker fits the evaluator's backpressure gate
// (eval.Evaluator.IsBlocked), where a session that bursts past its
// configured rate would be treated the same as a session still draining a
// blocking command; no package in this module assigns it there. Grounded on SPEC_FULL.md's session-rate-limiter
// component, which names github.com/joeycumines/go-catrate as its backing
// sliding-window limiter.
package sessionrate

import (
	"context"
	"time"

	"github.com/joeycumines/go-catrate"
)

// sessionKey is the context key a host stores the current session's
// identifier under, for Checker to read back.
type sessionKey struct{}

// WithSession returns a context carrying session as the current session
// identifier, for later retrieval by Checker.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// sessionFromContext returns the session stored by WithSession, or "" if
// none was stored.
func sessionFromContext(ctx context.Context) string {
	s, _ := ctx.Value(sessionKey{}).(string)
	return s
}

// Limiter gates per-session statement submission using a shared sliding
// window rate limit across every session category.
type Limiter struct {
	rates *catrate.Limiter
}

// New constructs a Limiter enforcing the given windows, e.g.
//
//	New(map[time.Duration]int{time.Second: 20, time.Minute: 400})
//
// A nil or empty rates map disables limiting entirely (every session is
// always allowed), matching catrate.Limiter's own zero-value behavior.
func New(rates map[time.Duration]int) *Limiter {
	if len(rates) == 0 {
		return &Limiter{}
	}
	return &Limiter{rates: catrate.NewLimiter(rates)}
}

// Allow registers one statement submission for session, returning whether
// it is within the configured rate and, if not, the time at which the
// session may submit again.
func (l *Limiter) Allow(session string) (retryAt time.Time, ok bool) {
	if l.rates == nil {
		return time.Time{}, true
	}
	return l.rates.Allow(session)
}

// IsBlocked registers one submission for session via Allow and reports
// whether it has burst past its rate limit. Checker wraps it in
// eval.BlockingSessionChecker's func(context.Context) bool shape.
func (l *Limiter) IsBlocked(session string) bool {
	_, ok := l.Allow(session)
	return !ok
}

// Checker returns a func(context.Context) bool suitable for assigning
// directly to eval.Evaluator.IsBlocked: it reads the session identifier
// stashed by WithSession and reports whether that session has burst past
// its rate limit. A context with no stored session is never blocked.
func (l *Limiter) Checker() func(ctx context.Context) bool {
	return func(ctx context.Context) bool {
		session := sessionFromContext(ctx)
		if session == "" {
			return false
		}
		return l.IsBlocked(session)
	}
}
