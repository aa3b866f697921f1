package buffer

import (
	"sync"

	"github.com/teenjuna/pail/internal"
)

var _ internal.Buffer[any] = (*UnboundedBuffer[any])(nil)

// UnboundedBuffer is a growable buffer which never drops appended items.
//
// The zero value is ready to use.
type UnboundedBuffer[Item any] struct {
	mu    sync.Mutex
	items []Item
}

// Unbounded returns a new empty [UnboundedBuffer].
func Unbounded[Item any]() *UnboundedBuffer[Item] {
	return &UnboundedBuffer[Item]{
		items: make([]Item, 0),
	}
}

// Append adds items to the end of the buffer and returns the number of items stored after
// the append. An empty batch is valid and leaves the buffer as it is.
func (b *UnboundedBuffer[Item]) Append(items []Item) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(b.items, items...)
	return len(b.items)
}

// GetAndClear removes and returns all items in the order they were appended. It returns an
// empty slice if nothing was appended since the previous call.
func (b *UnboundedBuffer[Item]) GetAndClear() []Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.items
	if items == nil {
		items = make([]Item, 0)
	}
	// The drained slice now belongs to the caller. Appends start over from an empty slice.
	b.items = nil
	return items
}
