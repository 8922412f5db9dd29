package weft

import "sync/atomic"

// globalIDCounter is the source of unique IDs for all reactive primitives.
// Using atomic operations ensures safe ID generation from any goroutine.
var globalIDCounter uint64

// nextID returns the next unique ID for a reactive primitive.
// IDs are monotonically increasing and never reused.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Caller is a subscription record: the callback a signal mutation must
// re-run, plus the label that decides when it runs. A nil Label means the
// caller runs inline, synchronously at write time. Callers are compared by
// identity, so the same *Caller enqueued twice in one flush runs once.
type Caller struct {
	id uint64

	// Fn is the callback to invoke.
	Fn func()

	// Label routes the invocation. Nil means synchronous.
	Label *Label
}

// NewCaller creates a caller with the given callback and label.
// Pass a nil label for synchronous invocation at write time.
func NewCaller(fn func(), label *Label) *Caller {
	return &Caller{
		id:    nextID(),
		Fn:    fn,
		Label: label,
	}
}

// ID returns the unique identifier for this caller.
// Used for deduplication during flushes.
func (c *Caller) ID() uint64 {
	return c.id
}
