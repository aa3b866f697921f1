package retry_test

import (
	"testing"
	"testing/synctest"
	"time"
)

// epsilon is the rounding applied to measured delays.
const epsilon = time.Microsecond * 10

// run runs fn as a parallel subtest inside its own synctest bubble, so waits take no real time.
func run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		synctest.Test(t, fn)
	})
}

// delayFunc returns a function which runs fn and fails the test unless fn took delay, give or
// take the jitter fraction of it.
func delayFunc(t *testing.T, jitter float64) func(delay time.Duration, fn func()) {
	t.Helper()
	return func(delay time.Duration, fn func()) {
		t.Helper()

		spread := time.Duration(float64(delay) * jitter)
		lo := (delay - spread).Truncate(epsilon)
		hi := (delay + spread + epsilon).Truncate(epsilon)

		started := time.Now()
		fn()
		took := time.Since(started).Truncate(epsilon)

		if took < lo || took > hi {
			t.Fatalf("took %s, want between %s and %s", took, lo, hi)
		}
	}
}
