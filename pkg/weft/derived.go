package weft

// Derived is a signal whose value is produced by re-running a tracked
// computation. It owns one internal subscriber set plus the tracking
// subscriptions to its sources.
//
// Derived values are lazy: a dependency change invalidates the cache and
// propagates downstream immediately, but the computation itself re-runs
// only on the next read, at most once per dependency-change batch.
type Derived[T any] struct {
	core core
	rt   *Runtime

	// compute produces the value. Runs inside a tracking frame so its
	// reads become source subscriptions.
	compute func() T

	// value is the cached result; valid marks it current.
	value T
	valid bool

	// sources are the subscriptions from the last computation, replaced
	// wholesale on each recompute and cancelled on Dispose.
	sources []Subscription

	// caller invalidates the cache. Unlabeled: invalidation propagates
	// synchronously at source-write time, like any signal write.
	caller *Caller

	// equal overrides the default equality check when non-nil.
	equal func(T, T) bool

	// computing guards against recursive self-reads.
	computing bool
}

// NewDerived creates a derived signal owned by the given runtime. The
// computation does not run until the first read.
func NewDerived[T any](rt *Runtime, compute func() T) *Derived[T] {
	d := &Derived[T]{
		core:    newCore(rt),
		rt:      rt,
		compute: compute,
	}
	d.caller = NewCaller(d.invalidate, nil)
	return d
}

// Get returns the derived value, recomputing first if a dependency has
// changed since the last read. Registers the active tracking frame, if
// any, as a subscriber.
func (d *Derived[T]) Get() T {
	d.core.markReferenced()
	d.rt.touch(d)
	if !d.valid {
		d.recompute()
	}
	return d.value
}

// Peek returns the value without registering a dependency. Still
// recomputes if the cache is stale.
func (d *Derived[T]) Peek() T {
	if !d.valid {
		d.recompute()
	}
	return d.value
}

// invalidate drops the cache and propagates to subscribers. Repeated
// invalidations within one batch collapse: only the first notifies.
func (d *Derived[T]) invalidate() {
	if !d.valid {
		return
	}
	d.valid = false
	d.core.notify()
}

// recompute re-runs the computation inside a fresh tracking frame,
// replacing the source subscriptions. When the new value equals the old
// one the cached value is kept, preserving identity for downstream reads.
func (d *Derived[T]) recompute() {
	if d.computing {
		// Circular read; return the current value rather than recurse.
		return
	}
	d.computing = true
	defer func() { d.computing = false }()

	for _, sub := range d.sources {
		sub.Cancel()
	}
	d.sources = nil

	var next T
	d.sources = d.rt.Track(d.caller, func() {
		next = d.compute()
	})

	if !d.equals(d.value, next) {
		d.value = next
	}
	d.valid = true
}

// WithEquals configures a custom equality function for change detection.
func (d *Derived[T]) WithEquals(fn func(T, T) bool) *Derived[T] {
	d.equal = fn
	return d
}

// OnReference registers a one-shot hook fired when the derived signal
// first gains a consumer.
func (d *Derived[T]) OnReference(fn func()) *Derived[T] {
	if d.core.referenced {
		fn()
		return d
	}
	d.core.onRef = fn
	return d
}

// OnReferenceAny is the type-erased form of OnReference.
func (d *Derived[T]) OnReferenceAny(fn func()) {
	d.OnReference(fn)
}

// Dispose cancels the source subscriptions. The derived signal will not
// recompute on further source changes; owners call this on teardown.
func (d *Derived[T]) Dispose() {
	for _, sub := range d.sources {
		sub.Cancel()
	}
	d.sources = nil
	d.valid = false
}

// ID returns the unique identifier for this derived signal.
func (d *Derived[T]) ID() uint64 {
	return d.core.id
}

// ReadAny implements Reactive.
func (d *Derived[T]) ReadAny() any {
	return d.Get()
}

// PeekAny implements Reactive.
func (d *Derived[T]) PeekAny() any {
	return d.Peek()
}

// Attach implements Reactive.
func (d *Derived[T]) Attach(c *Caller) bool {
	return d.core.attach(c)
}

// Detach implements Reactive.
func (d *Derived[T]) Detach(c *Caller) {
	d.core.detach(c)
}

// Runtime implements Reactive.
func (d *Derived[T]) Runtime() *Runtime {
	return d.rt
}

// SubscriberCount returns the number of attached callers.
func (d *Derived[T]) SubscriberCount() int {
	return len(d.core.order)
}

func (d *Derived[T]) equals(a, b T) bool {
	if d.equal != nil {
		return d.equal(a, b)
	}
	return defaultEquals(a, b)
}

var _ Reactive = (*Derived[int])(nil)
