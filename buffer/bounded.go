package buffer

import (
	"sync"
	"sync/atomic"

	"github.com/teenjuna/pail/internal"
)

var _ internal.Buffer[any] = (*BoundedBuffer[any])(nil)

// BoundedBuffer is a fixed-capacity circular buffer. When an append doesn't fit, the oldest
// stored items are overwritten, so the buffer always keeps the most recent items and Append
// never blocks or fails.
type BoundedBuffer[Item any] struct {
	mu       sync.Mutex
	items    []Item
	head     int // index of the oldest item
	size     int
	capacity int
	evicted  atomic.Uint64
}

// Bounded returns a new empty [BoundedBuffer] which holds at most capacity items.
//
// A buffer with capacity 0 discards everything appended to it.
func Bounded[Item any](capacity int) *BoundedBuffer[Item] {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	return &BoundedBuffer[Item]{
		items:    make([]Item, capacity),
		capacity: capacity,
	}
}

// Append writes items into the buffer in order, evicting as many of the oldest items as
// needed to stay within capacity. If the batch alone exceeds capacity, only its last capacity
// items are kept. Returns the number of items stored after the append.
func (b *BoundedBuffer[Item]) Append(items []Item) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(items) == 0 {
		return b.size
	}

	if len(items) >= b.capacity {
		b.evict(b.size + len(items) - b.capacity)
		clear(b.items)
		copy(b.items, items[len(items)-b.capacity:])
		b.head = 0
		b.size = b.capacity
		return b.size
	}

	var evicted int
	for _, item := range items {
		b.items[(b.head+b.size)%b.capacity] = item
		if b.size == b.capacity {
			b.head = (b.head + 1) % b.capacity
			evicted++
		} else {
			b.size++
		}
	}
	b.evict(evicted)

	return b.size
}

// GetAndClear removes and returns all items in the order they were appended. It returns an
// empty slice if nothing was appended since the previous call.
func (b *BoundedBuffer[Item]) GetAndClear() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Item, b.size)
	if b.size == 0 {
		return out
	}

	n := copy(out, b.items[b.head:min(b.head+b.size, b.capacity)])
	copy(out[n:], b.items[:b.size-n])

	clear(b.items)
	b.head = 0
	b.size = 0

	return out
}

// Capacity returns the maximum number of items the buffer holds.
func (b *BoundedBuffer[Item]) Capacity() int {
	return b.capacity
}

// Evicted returns the total number of items that were overwritten or discarded since the
// buffer was created.
func (b *BoundedBuffer[Item]) Evicted() uint64 {
	return b.evicted.Load()
}

func (b *BoundedBuffer[Item]) evict(n int) {
	if n > 0 {
		b.evicted.Add(uint64(n))
	}
}
