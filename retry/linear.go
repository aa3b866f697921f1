package retry

import (
	"context"
	"time"

	"github.com/teenjuna/pail/internal"
)

var _ internal.RetryPolicy = (*LinearPolicy)(nil)

// LinearPolicy grows the interval between retries by a constant step, from minInterval up to
// maxInterval.
type LinearPolicy struct {
	budget
	jitter      float64
	step        time.Duration
	minInterval time.Duration
	maxInterval time.Duration
}

// Linear returns a policy making up to attempts attempts. Zero attempts means infinite
// attempts. With finite attempts the step is chosen so that the last retry waits maxInterval,
// with infinite attempts it equals minInterval.
func Linear(attempts int, minInterval, maxInterval time.Duration) *LinearPolicy {
	b := newBudget(attempts)
	validateIntervals(minInterval, maxInterval)

	var step time.Duration
	switch {
	case attempts == 0:
		step = minInterval
	case attempts > 2:
		step = (maxInterval - minInterval) / time.Duration(attempts-2)
	}

	return &LinearPolicy{
		budget:      b,
		minInterval: minInterval,
		maxInterval: maxInterval,
		step:        step,
		jitter:      0.1,
	}
}

func (r *LinearPolicy) WithStep(step time.Duration) *LinearPolicy {
	if step <= 0 {
		panic("step can't be <= 0")
	}
	r.step = step
	return r
}

func (r *LinearPolicy) WithJitter(jitter float64) *LinearPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *LinearPolicy) WithCooldown(cooldown time.Duration) *LinearPolicy {
	r.setCooldown(cooldown)
	return r
}

func (r *LinearPolicy) Attempt(ctx context.Context) (ok bool) {
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

	interval := min(r.minInterval+r.step*time.Duration(r.attempted-1), r.maxInterval)
	return wait(ctx, interval, r.jitter)
}

func (r *LinearPolicy) Derive() internal.RetryPolicy {
	p := Linear(r.attempts, r.minInterval, r.maxInterval).
		WithJitter(r.jitter).
		WithCooldown(r.cooldown)
	p.step = r.step
	return p
}
