package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound service calls across all workers. openFDA
// tolerates modest anonymous traffic; staying under it keeps batch runs
// from being blocked.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing rps requests per second with
// the given burst. Non-positive values disable limiting.
func NewLimiter(rps float64, burst int) *Limiter {
	if rps <= 0 || burst <= 0 {
		return &Limiter{}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Wait blocks until a request may proceed or the context is cancelled
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
