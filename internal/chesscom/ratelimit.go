package chesscom

import (
	"context"

	"golang.org/x/time/rate"
)

// pacer blocks until the next outbound request is allowed to start.
type pacer interface {
	Wait(ctx context.Context) error
}

type limiterAdapter struct {
	limiter *rate.Limiter
}

// newTokenBucketPacer builds a client-side request pacer. A non-positive
// rate disables pacing entirely.
func newTokenBucketPacer(ratePerSecond float64, burst int) pacer {
	if ratePerSecond <= 0 {
		return &limiterAdapter{}
	}
	if burst <= 0 {
		burst = 1
	}

	return &limiterAdapter{
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *limiterAdapter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
