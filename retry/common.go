package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

// budget tracks the attempts made by a single flush. Zero attempts means infinite attempts.
type budget struct {
	attempted int
	attempts  int
	cooldown  time.Duration
}

func newBudget(attempts int) budget {
	if attempts < 0 {
		panic("attempts can't be < 0")
	}
	return budget{attempts: attempts}
}

func (b *budget) infinite() bool {
	return b.attempts == 0
}

func (b *budget) exhausted() bool {
	return !b.infinite() && b.attempted >= b.attempts
}

func (b *budget) setCooldown(cooldown time.Duration) {
	if b.infinite() && cooldown > 0 {
		panic("can't set cooldown with infinite attempts")
	}
	if cooldown < 0 {
		panic("cooldown can't be < 0")
	}
	b.cooldown = cooldown
}

// Cooldown returns the pause a worker makes after dropping a batch.
func (b *budget) Cooldown() time.Duration {
	return b.cooldown
}

func validateJitter(jitter float64) {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
}

func validateIntervals(minInterval, maxInterval time.Duration) {
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}
}

func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	m := (rand.Float64() * 2) - 1
	j := m * jitter * float64(interval)
	d := interval + time.Duration(j)

	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
