package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer enforces the per-worker politeness delay between fetches. A nil
// limiter means no delay.
type pacer struct {
	lim *rate.Limiter
}

func newPacer(delay time.Duration) *pacer {
	if delay <= 0 {
		return &pacer{}
	}
	return &pacer{lim: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next fetch is allowed or ctx is canceled.
func (p *pacer) Wait(ctx context.Context) error {
	if p.lim == nil {
		return nil
	}
	return p.lim.Wait(ctx)
}
