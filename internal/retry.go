package internal

import (
	"context"
	"time"
)

// RetryPolicy is shared by the root package options and the retry package, which can't import
// each other.
type RetryPolicy interface {
	Attempt(ctx context.Context) bool
	Cooldown() time.Duration
	Derive() RetryPolicy
}
