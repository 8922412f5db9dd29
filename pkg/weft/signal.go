package weft

import (
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
)

// Reactive is the type-erased view of a signal or derived signal. The
// builder uses it to wire property values without knowing their element
// type: a blueprint property is reactive exactly when it implements this
// interface.
type Reactive interface {
	// ReadAny returns the current value, registering a dependency on the
	// active tracking frame if one exists.
	ReadAny() any

	// PeekAny returns the current value without registering anything.
	PeekAny() any

	// Attach adds a caller to the subscriber set. Reports whether the
	// caller was newly added (false when already subscribed).
	Attach(c *Caller) bool

	// Detach removes a caller from the subscriber set.
	Detach(c *Caller)

	// Runtime returns the runtime this signal belongs to.
	Runtime() *Runtime
}

// Subscription is an explicit teardown handle for one caller attached to
// one reactive source. Instances collect these during build and cancel
// them on removal; nothing is cleaned up implicitly.
type Subscription struct {
	src    Reactive
	caller *Caller
}

// Cancel detaches the caller from its source. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.src != nil {
		s.src.Detach(s.caller)
	}
}

// Source returns the reactive source this subscription is attached to.
func (s Subscription) Source() Reactive {
	return s.src
}

// core provides type-erased subscriber management. It is embedded in
// Signal[T] and Derived[T] to share subscription logic. Subscribers keep
// insertion order for deterministic notification; the set exists for O(1)
// dedup. No locking: a Runtime's reactive graph is single-threaded (see
// Runtime).
type core struct {
	id uint64
	rt *Runtime

	// order holds subscribers in attach order.
	order []*Caller

	// members mirrors order for O(1) membership checks.
	members mapset.Set[*Caller]

	// onRef is the one-shot "became referenced" hook. Fired the first
	// time the signal gains a consumer: a tracked read or an Attach.
	onRef      func()
	referenced bool
}

func newCore(rt *Runtime) core {
	return core{
		id:      nextID(),
		rt:      rt,
		members: mapset.NewThreadUnsafeSet[*Caller](),
	}
}

// attach adds a caller, deduplicating by identity.
// Reports whether the caller was newly added.
func (c *core) attach(ca *Caller) bool {
	if ca == nil {
		return false
	}
	c.markReferenced()
	if c.members.Contains(ca) {
		return false
	}
	c.members.Add(ca)
	c.order = append(c.order, ca)
	return true
}

// detach removes a caller. No-op when the caller is not subscribed.
func (c *core) detach(ca *Caller) {
	if ca == nil || !c.members.Contains(ca) {
		return
	}
	c.members.Remove(ca)
	for i, existing := range c.order {
		if existing == ca {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// notify hands every current subscriber to the runtime for routing.
// Copies the slice first so callers may subscribe/unsubscribe during
// notification without corrupting the iteration.
func (c *core) notify() {
	if len(c.order) == 0 {
		return
	}
	subs := make([]*Caller, len(c.order))
	copy(subs, c.order)
	c.rt.Update(subs...)
}

// markReferenced fires the one-shot reference hook on first consumption.
// The hook runs untracked so its own reads never leak into the frame that
// triggered it.
func (c *core) markReferenced() {
	if c.referenced {
		return
	}
	c.referenced = true
	if c.onRef != nil {
		fn := c.onRef
		c.onRef = nil
		c.rt.Untracked(fn)
	}
}

// Signal is a mutable reactive cell. Reading it inside a tracking frame
// (a derived computation, a watch, or a builder wiring pass) records the
// frame's caller as a subscriber; writing a different value notifies every
// subscriber through the runtime's label routing. Writing an equal value
// is a no-op.
type Signal[T any] struct {
	core core

	// value is the current signal value.
	value T

	// equal overrides the default equality check when non-nil.
	equal func(T, T) bool
}

// NewSignal creates a signal owned by the given runtime.
func NewSignal[T any](rt *Runtime, initial T) *Signal[T] {
	return &Signal[T]{
		core:  newCore(rt),
		value: initial,
	}
}

// Get returns the current value and registers the active tracking frame,
// if any, as a subscriber. Registration is deduplicated: a frame reading
// the same signal twice subscribes once.
func (s *Signal[T]) Get() T {
	s.core.markReferenced()
	s.core.rt.touch(s)
	return s.value
}

// Peek returns the current value without registering a dependency and
// without firing the reference hook.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set updates the value and notifies subscribers. Writing a value equal
// to the current one (per the signal's equality function) does nothing.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.core.notify()
}

// Update reads the current value, applies fn, and writes the result.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals configures a custom equality function. Useful for types
// where reflect.DeepEqual is too expensive or has the wrong semantics.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// OnReference registers a one-shot hook fired the first time the signal
// gains a consumer (a tracked read or an attached subscriber). Owners use
// it to defer expensive observation wiring for signals created
// speculatively. Registering after the signal is already referenced fires
// the hook immediately.
func (s *Signal[T]) OnReference(fn func()) *Signal[T] {
	if s.core.referenced {
		fn()
		return s
	}
	s.core.onRef = fn
	return s
}

// SetAny writes a type-erased value. Reports false when the value is
// not assignable to the signal's element type; the builder uses this for
// observation wiring where element types are unknown.
func (s *Signal[T]) SetAny(v any) bool {
	tv, ok := v.(T)
	if !ok {
		return false
	}
	s.Set(tv)
	return true
}

// OnReferenceAny is the type-erased form of OnReference.
func (s *Signal[T]) OnReferenceAny(fn func()) {
	s.OnReference(fn)
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.core.id
}

// ReadAny implements Reactive.
func (s *Signal[T]) ReadAny() any {
	return s.Get()
}

// PeekAny implements Reactive.
func (s *Signal[T]) PeekAny() any {
	return s.value
}

// Attach implements Reactive.
func (s *Signal[T]) Attach(c *Caller) bool {
	return s.core.attach(c)
}

// Detach implements Reactive.
func (s *Signal[T]) Detach(c *Caller) {
	s.core.detach(c)
}

// Runtime implements Reactive.
func (s *Signal[T]) Runtime() *Runtime {
	return s.core.rt
}

// SubscriberCount returns the number of attached callers.
func (s *Signal[T]) SubscriberCount() int {
	return len(s.core.order)
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int8:
		return av == any(b).(int8)
	case int16:
		return av == any(b).(int16)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint:
		return av == any(b).(uint)
	case uint8:
		return av == any(b).(uint8)
	case uint16:
		return av == any(b).(uint16)
	case uint32:
		return av == any(b).(uint32)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}

var _ Reactive = (*Signal[int])(nil)
