package retry

import (
	"context"
	"time"

	"github.com/teenjuna/pail/internal"
)

var _ internal.RetryPolicy = (*FixedPolicy)(nil)

// FixedPolicy waits the same interval before every retry.
type FixedPolicy struct {
	budget
	jitter   float64
	interval time.Duration
}

// Fixed returns a policy making up to attempts attempts, interval apart. Zero attempts means
// infinite attempts. Jitter defaults to 0.1.
func Fixed(attempts int, interval time.Duration) *FixedPolicy {
	if interval < 0 {
		panic("interval can't be < 0")
	}
	return &FixedPolicy{
		budget:   newBudget(attempts),
		interval: interval,
		jitter:   0.1,
	}
}

func (r *FixedPolicy) WithJitter(jitter float64) *FixedPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *FixedPolicy) WithCooldown(cooldown time.Duration) *FixedPolicy {
	r.setCooldown(cooldown)
	return r
}

func (r *FixedPolicy) Attempt(ctx context.Context) (ok bool) {
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

	return wait(ctx, r.interval, r.jitter)
}

func (r *FixedPolicy) Derive() internal.RetryPolicy {
	return Fixed(r.attempts, r.interval).
		WithJitter(r.jitter).
		WithCooldown(r.cooldown)
}
