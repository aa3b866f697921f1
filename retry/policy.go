// This package contains the retry policies a collector applies to failed flushes.
package retry

import "github.com/teenjuna/pail/internal"

// Policy defines the retry behaviour of a collector's flushes.
//
// Attempt blocks until the next attempt may be made and reports whether it should be made at
// all. Cooldown is how long a worker pauses after it gave up on a batch. Derive returns a fresh
// instance for a single flush.
//
// Implementations are not considered thread-safe and each instance is used by a single flush.
type Policy = internal.RetryPolicy
