package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/teenjuna/pail"
	"github.com/teenjuna/pail/internal/testing/require"
	"github.com/teenjuna/pail/retry"
)

var _ pail.RetryPolicy = (*retry.ExponentialPolicy)(nil)

func TestExponential(t *testing.T) {
	p := retry.Exponential(5, time.Second, time.Minute).
		WithBase(3).
		WithJitter(0.1).
		WithCooldown(time.Second)
	require.NotNil(t, p)
	require.Equal(t, p.Cooldown(), time.Second)
	require.Equal(t, retry.Exponential(0, time.Second, time.Minute).Cooldown(), time.Duration(0))

	invalid := []struct {
		panic string
		build func()
	}{
		{"attempts can't be < 0", func() { retry.Exponential(-1, time.Second, time.Minute) }},
		{"minInterval can't be <= 0", func() { retry.Exponential(0, 0, time.Minute) }},
		{"minInterval can't be >= maxInterval", func() { retry.Exponential(0, time.Second, time.Second) }},
		{"base can't be <= 1", func() { retry.Exponential(0, time.Second, time.Minute).WithBase(1) }},
		{"jitter can't be < 0", func() { retry.Exponential(0, time.Second, time.Minute).WithJitter(-0.1) }},
		{"jitter can't be >= 1", func() { retry.Exponential(0, time.Second, time.Minute).WithJitter(1) }},
		{"cooldown can't be < 0", func() { retry.Exponential(5, time.Second, time.Minute).WithCooldown(-1) }},
	}
	for _, tc := range invalid {
		require.PanicWithError(t, tc.panic, tc.build)
	}
}

func TestExponentialBase(t *testing.T) {
	run(t, "Base 3 capped by max interval", func(t *testing.T) {
		p := retry.Exponential(0, time.Second, time.Second*20).WithBase(3).WithJitter(0)
		f := delayFunc(t, 0)
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*3, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*9, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*20, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*20, func() { require.Equal(t, p.Attempt(t.Context()), true) })
	})
}

func TestExponentialAttempt(t *testing.T) {
	run(t, "Finite attempts", func(t *testing.T) {
		p := retry.Exponential(5, time.Second, time.Second*8).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*2, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*4, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*8, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), false) })
	})

	run(t, "Infinite attempts", func(t *testing.T) {
		p := retry.Exponential(0, time.Second, time.Second*8).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*2, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*4, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		f(time.Second*8, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		for range 1000 {
			f(time.Second*8, func() { require.Equal(t, p.Attempt(t.Context()), true) })
		}
	})

	run(t, "Context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		p := retry.Exponential(0, time.Second, time.Second*8).WithJitter(0.1)
		f := delayFunc(t, 0.1)
		f(0, func() { require.Equal(t, p.Attempt(ctx), true) })
		f(time.Second, func() { require.Equal(t, p.Attempt(ctx), true) })
		f(time.Second*2, func() { require.Equal(t, p.Attempt(ctx), true) })
		f(time.Second*4, func() { require.Equal(t, p.Attempt(ctx), true) })
		cancel()
		f(0, func() { require.Equal(t, p.Attempt(ctx), false) })
	})
}

func TestExponentialDerive(t *testing.T) {
	const (
		attempts    = 3
		minInterval = time.Second
		maxInterval = time.Second * 2
		jitter      = 0.1
		cooldown    = time.Second
	)

	test := func(t *testing.T, p *retry.ExponentialPolicy) {
		for range attempts {
			require.Equal(t, p.Attempt(t.Context()), true)
		}
		require.Equal(t, p.Attempt(t.Context()), false)
		require.Equal(t, p.Cooldown(), cooldown)
	}

	run(t, "Derive before use", func(t *testing.T) {
		p1 := retry.Exponential(attempts, minInterval, maxInterval).WithCooldown(cooldown)
		p2 := p1.Derive().(*retry.ExponentialPolicy)
		test(t, p1)
		test(t, p2)
	})

	run(t, "Derive after use", func(t *testing.T) {
		p1 := retry.Exponential(attempts, minInterval, maxInterval).WithCooldown(cooldown)
		test(t, p1)
		p2 := p1.Derive().(*retry.ExponentialPolicy)
		test(t, p2)
	})
}
