package internal

// Buffer mirrors pail.Buffer so that the buffer package can assert its implementations without
// importing the root package.
type Buffer[Item any] interface {
	Append(items []Item) int
	GetAndClear() []Item
}
