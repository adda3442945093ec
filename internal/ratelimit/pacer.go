// Package ratelimit provides the shared pacing policy for outbound provider
// calls. Multi-symbol operations are deliberately sequential; the token bucket
// keeps them under the provider's per-minute quota.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer allows perMinute calls per minute with a burst of one, so the first
// call of a batch goes out immediately and every subsequent call is spaced.
func NewPacer(perMinute int) *Pacer {
	if perMinute <= 0 {
		perMinute = 55
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
	}
}

// Wait blocks until the next call is allowed or ctx is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
