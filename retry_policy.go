package pail

import (
	"context"
	"time"
)

// RetryPolicy decides how many times and how often a collector retries a failed flush.
//
// Policies are not considered thread-safe. Every flush works with its own instance.
type RetryPolicy interface {
	Attempt(ctx context.Context) bool
	Cooldown() time.Duration
}
