package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the fixed inter-page delay between processed frontier
// entries. The burst of one lets the first fetch proceed immediately;
// every later call waits out the configured delay.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer with the given inter-page delay.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Wait blocks until the next page may be processed or the context is
// cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
