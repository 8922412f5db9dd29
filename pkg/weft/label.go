package weft

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// LabelKind selects a label's timing policy.
type LabelKind uint8

const (
	// LabelImmediate passes callers straight through: Update invokes
	// them on the spot. Exists so callers can be labeled uniformly while
	// opting out of deferral.
	LabelImmediate LabelKind = iota + 1

	// LabelTree coalesces callers until the tick's flush, then runs each
	// exactly once between the label's before/after hooks. Tree mutation
	// work uses this kind so the platform is touched once per tick no
	// matter how many signals changed.
	LabelTree

	// LabelEffect defers like LabelTree but runs each caller through a
	// guard, typically a component boundary's error wrapper.
	LabelEffect
)

// String returns the kind's name.
func (k LabelKind) String() string {
	switch k {
	case LabelImmediate:
		return "immediate"
	case LabelTree:
		return "tree"
	case LabelEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// Label accumulates pending callers under one timing policy. Update
// enqueues (or runs, for immediate labels); Proc flushes. The runtime
// flushes scheduled labels in first-enqueue order at the end of each
// tick, so distinct labels keep FIFO order while repeated callers within
// one label collapse to a single run.
type Label struct {
	rt   *Runtime
	kind LabelKind

	// before/after bracket each non-empty flush (tree labels).
	before func()
	after  func()

	// guard wraps each caller invocation (effect labels).
	guard func(fn func())

	order   []*Caller
	members mapset.Set[*Caller]
}

// NewImmediateLabel creates a passthrough label.
func NewImmediateLabel(rt *Runtime) *Label {
	return newLabel(rt, LabelImmediate)
}

// NewTreeLabel creates a coalescing label with optional before/after
// hooks bracketing each non-empty flush. Either hook may be nil.
func NewTreeLabel(rt *Runtime, before, after func()) *Label {
	l := newLabel(rt, LabelTree)
	l.before = before
	l.after = after
	return l
}

// NewEffectLabel creates a coalescing label whose callers run through
// guard. A nil guard runs callers directly.
func NewEffectLabel(rt *Runtime, guard func(fn func())) *Label {
	l := newLabel(rt, LabelEffect)
	l.guard = guard
	return l
}

func newLabel(rt *Runtime, kind LabelKind) *Label {
	return &Label{
		rt:      rt,
		kind:    kind,
		members: mapset.NewThreadUnsafeSet[*Caller](),
	}
}

// Kind returns the label's timing policy.
func (l *Label) Kind() LabelKind {
	return l.kind
}

// Update enqueues a caller. Immediate labels invoke it instead. Enqueued
// callers are deduplicated by identity; the first enqueue schedules the
// label with the runtime for the tick's flush.
func (l *Label) Update(c *Caller) {
	if c == nil {
		return
	}
	if l.kind == LabelImmediate {
		c.Fn()
		return
	}
	if l.members.Contains(c) {
		return
	}
	l.members.Add(c)
	l.order = append(l.order, c)
	l.rt.schedule(l)
}

// Pending returns the number of queued callers.
func (l *Label) Pending() int {
	return len(l.order)
}

// Proc flushes queued callers: before hook, each caller once, after
// hook. Empty labels do nothing, so the hooks never fire spuriously.
// Callers enqueued during the flush land in the next scheduling round.
func (l *Label) Proc() {
	if len(l.order) == 0 {
		return
	}
	batch := l.order
	l.order = nil
	l.members.Clear()

	if l.before != nil {
		l.before()
	}
	for _, c := range batch {
		if l.guard != nil {
			l.guard(c.Fn)
			continue
		}
		c.Fn()
	}
	if l.after != nil {
		l.after()
	}
}
