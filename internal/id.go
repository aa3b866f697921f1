package internal

import "math/rand/v2"

// NewBatchID returns a random identifier used to correlate log records of a drained batch.
func NewBatchID() string {
	const (
		charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
		n       = 10
	)
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.IntN(len(charset))]
	}
	return string(b)
}
