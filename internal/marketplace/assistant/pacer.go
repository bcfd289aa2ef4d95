package assistant

import (
	"context"
	"math/rand/v2"
	"time"
)

// Pacer delays replies by a random duration in [min, max] so the chat feels
// conversational. It has no functional effect.
type Pacer struct {
	min, max time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewPacer creates a pacer. max below min is treated as min.
func NewPacer(minDelay, maxDelay time.Duration) *Pacer {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Pacer{min: minDelay, max: maxDelay, sleep: sleepContext}
}

// Delay returns the next pacing duration.
func (p *Pacer) Delay() time.Duration {
	if p.max == p.min {
		return p.min
	}
	return p.min + rand.N(p.max-p.min+1)
}

// Wait blocks for Delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	d := p.Delay()
	if d == 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
