// This package contains the two storage strategies of the [pail.Buffer] capability.
//
// A buffer value is a handle: it is always used through a pointer, and copying the pointer
// shares the underlying storage with the original. Every method is safe for concurrent use.
// Each storage instance is guarded by exactly one mutex which is held for the full duration of
// [UnboundedBuffer.Append], [UnboundedBuffer.GetAndClear] and their bounded counterparts, so
// callers observe a total order of operations and a drain never sees a partial append.
//
// Go mutexes cannot be poisoned. The lock is released with defer on every exit path, so a
// panic raised while it is held (which can only be a runtime fault such as memory exhaustion)
// propagates to the caller and leaves the buffer usable.
package buffer
