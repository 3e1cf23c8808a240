package payload

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the politeness budget before each outbound submission:
// a random pause in [min, max] and an optional per-minute cap.
type Pacer struct {
	limiter *rate.Limiter
	jitter  func() float64
	sleep   func(ctx context.Context, d time.Duration) error
	min     time.Duration
	max     time.Duration
}

// PacerOption configures a Pacer.
type PacerOption func(*Pacer)

// WithJitter replaces the random source. f must return values in [0, 1).
func WithJitter(f func() float64) PacerOption {
	return func(p *Pacer) {
		p.jitter = f
	}
}

// WithSleep replaces the pause implementation.
func WithSleep(f func(ctx context.Context, d time.Duration) error) PacerOption {
	return func(p *Pacer) {
		p.sleep = f
	}
}

// NewPacer creates a pacer. maxPerMinute <= 0 disables the cap.
func NewPacer(minDelay, maxDelay time.Duration, maxPerMinute int, opts ...PacerOption) *Pacer {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	p := &Pacer{
		min:    minDelay,
		max:    maxDelay,
		jitter: rand.Float64,
		sleep:  sleepContext,
	}

	if maxPerMinute > 0 {
		p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Delay returns the next randomized pause.
func (p *Pacer) Delay() time.Duration {
	return p.min + time.Duration(p.jitter()*float64(p.max-p.min))
}

// Wait pauses before a submission. It returns early with ctx.Err() on cancellation.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}

	if err := p.sleep(ctx, p.Delay()); err != nil {
		return err
	}

	if p.limiter != nil {
		return p.limiter.Wait(ctx)
	}

	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
