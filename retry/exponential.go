package retry

import (
	"context"
	"math"
	"time"

	"github.com/teenjuna/pail/internal"
)

var _ internal.RetryPolicy = (*ExponentialPolicy)(nil)

// ExponentialPolicy multiplies the interval between retries by base, from minInterval up to
// maxInterval.
type ExponentialPolicy struct {
	budget
	jitter      float64
	base        float64
	minInterval time.Duration
	maxInterval time.Duration
}

// Exponential returns a policy making up to attempts attempts. Zero attempts means infinite
// attempts. Base defaults to 2 and jitter to 0.1.
func Exponential(attempts int, minInterval, maxInterval time.Duration) *ExponentialPolicy {
	b := newBudget(attempts)
	validateIntervals(minInterval, maxInterval)

	return &ExponentialPolicy{
		budget:      b,
		minInterval: minInterval,
		maxInterval: maxInterval,
		base:        2,
		jitter:      0.1,
	}
}

func (r *ExponentialPolicy) WithBase(base float64) *ExponentialPolicy {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	r.base = base
	return r
}

func (r *ExponentialPolicy) WithJitter(jitter float64) *ExponentialPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *ExponentialPolicy) WithCooldown(cooldown time.Duration) *ExponentialPolicy {
	r.setCooldown(cooldown)
	return r
}

func (r *ExponentialPolicy) Attempt(ctx context.Context) (ok bool) {
	defer func() {
		if ok {
			r.attempted += 1
		}
	}()

	if r.attempted == 0 {
		return ctx.Err() == nil
	}

	if r.exhausted() {
		return false
	}

	interval := r.maxInterval
	// Past the cap the multiplication only risks overflow.
	if f := float64(r.minInterval) * math.Pow(r.base, float64(r.attempted-1)); f < float64(r.maxInterval) {
		interval = time.Duration(f)
	}

	return wait(ctx, interval, r.jitter)
}

func (r *ExponentialPolicy) Derive() internal.RetryPolicy {
	return Exponential(r.attempts, r.minInterval, r.maxInterval).
		WithBase(r.base).
		WithJitter(r.jitter).
		WithCooldown(r.cooldown)
}
