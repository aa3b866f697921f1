// Package pail provides shared buffers which accumulate items from many concurrent producers
// and are periodically drained by a consumer.
//
// The [Buffer] capability has two implementations in the buffer subpackage: an unbounded
// buffer which never drops items, and a bounded ring buffer which overwrites the oldest items
// when full. [Collector] drains any of them in the background and hands the drained batches to
// a flush function.
package pail

// Buffer is a thread-safe container shared by producers and a consumer.
//
// A buffer is a handle: copies of it refer to the same storage and observe each other's
// mutations. Append and GetAndClear are atomic with respect to each other.
type Buffer[Item any] interface {
	// Append adds items to the buffer in order and returns the number of stored items right
	// after the append.
	Append(items []Item) int
	// GetAndClear atomically removes and returns every stored item in append order. It
	// returns an empty slice if the buffer is empty.
	GetAndClear() []Item
}
