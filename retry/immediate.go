package retry

import (
	"context"
	"time"

	"github.com/teenjuna/pail/internal"
)

var _ internal.RetryPolicy = (*ImmediatePolicy)(nil)

// ImmediatePolicy retries right after a failure.
type ImmediatePolicy struct {
	budget
}

// Immediate returns a policy making up to attempts attempts without waiting. Zero attempts
// means infinite attempts.
func Immediate(attempts int) *ImmediatePolicy {
	return &ImmediatePolicy{budget: newBudget(attempts)}
}

func (r *ImmediatePolicy) WithCooldown(cooldown time.Duration) *ImmediatePolicy {
	r.setCooldown(cooldown)
	return r
}

func (r *ImmediatePolicy) Attempt(ctx context.Context) bool {
	if r.exhausted() || ctx.Err() != nil {
		return false
	}
	r.attempted += 1
	return true
}

func (r *ImmediatePolicy) Derive() internal.RetryPolicy {
	return Immediate(r.attempts).WithCooldown(r.cooldown)
}
