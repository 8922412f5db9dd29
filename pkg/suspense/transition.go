package suspense

import (
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

// NodeSet is the transition controller's view of an instance: the
// ordered platform nodes it currently occupies. build.Instance satisfies
// it.
type NodeSet interface {
	Nodes() []host.Node
}

// Effect runs an awaited side effect (an animation hook, typically)
// against an instance's nodes. It must call done exactly once when the
// effect completes; the transition's next stage waits for it.
type Effect func(nodes []host.Node, done func())

// Transition swaps instances in and out of the platform tree as one
// capturable sequence: before effect on the outgoing instance, awaited,
// then the swap, then after effect on the incoming instance. Because the
// whole sequence runs under one capture group, a rapid second transition
// request cancels the first's pending effect: the stale sequence stops
// before its swap or after effect.
type Transition struct {
	rt    *weft.Runtime
	h     host.Host
	group *Group

	before Effect
	after  Effect

	cancellable bool
}

// TransitionOption configures a Transition.
type TransitionOption func(*Transition)

// WithBefore sets the effect run on the outgoing instance before the
// platform swap.
func WithBefore(fn Effect) TransitionOption {
	return func(t *Transition) {
		t.before = fn
	}
}

// WithAfter sets the effect run on the incoming instance after the
// platform swap.
func WithAfter(fn Effect) TransitionOption {
	return func(t *Transition) {
		t.after = fn
	}
}

// WithGroup shares an existing capture group instead of owning a fresh
// one. Transitions sharing a group supersede each other.
func WithGroup(g *Group) TransitionOption {
	return func(t *Transition) {
		t.group = g
	}
}

// NonCancellable makes this transition's sequences block later captures
// instead of being superseded by them.
func NonCancellable() TransitionOption {
	return func(t *Transition) {
		t.cancellable = false
	}
}

// NewTransition creates a transition controller. By default it owns its
// own capture group and its sequences are cancellable.
func NewTransition(rt *weft.Runtime, h host.Host, opts ...TransitionOption) *Transition {
	t := &Transition{
		rt:          rt,
		h:           h,
		cancellable: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.group == nil {
		t.group = NewGroup(rt)
	}
	return t
}

// Group returns the transition's capture group.
func (t *Transition) Group() *Group {
	return t.group
}

// InsertBefore inserts the incoming instance's nodes under parent before
// ref (nil appends), then runs the after effect. Reports whether the
// sequence started immediately.
func (t *Transition) InsertBefore(parent host.Node, incoming NodeSet, ref host.Node) bool {
	return t.group.Capture(t.cancellable,
		func(tok Token, done func()) {
			for _, n := range incoming.Nodes() {
				t.h.InsertBefore(parent, n, ref)
			}
			done()
		},
		t.afterStep(incoming),
	)
}

// Switching replaces the outgoing instance's nodes with the incoming
// instance's, running the before effect on the outgoing nodes first and
// the after effect on the incoming nodes once swapped.
func (t *Transition) Switching(outgoing, incoming NodeSet) bool {
	return t.group.Capture(t.cancellable,
		t.beforeStep(outgoing),
		func(tok Token, done func()) {
			t.swap(outgoing, incoming)
			done()
		},
		t.afterStep(incoming),
	)
}

// Detach removes the outgoing instance's nodes from the platform tree,
// running the before effect first.
func (t *Transition) Detach(outgoing NodeSet) bool {
	return t.group.Capture(t.cancellable,
		t.beforeStep(outgoing),
		func(tok Token, done func()) {
			for _, n := range outgoing.Nodes() {
				t.h.Remove(n)
			}
			done()
		},
	)
}

// swap inserts incoming's nodes where outgoing's first node sits, then
// removes outgoing's nodes. The outgoing set anchors the position, so
// the swap works for multi-node groups.
func (t *Transition) swap(outgoing, incoming NodeSet) {
	out := outgoing.Nodes()
	var parent, ref host.Node
	if len(out) > 0 {
		ref = out[0]
		parent = ref.Parent()
	}
	if parent == nil {
		return
	}
	for _, n := range incoming.Nodes() {
		t.h.InsertBefore(parent, n, ref)
	}
	for _, n := range out {
		t.h.Remove(n)
	}
}

func (t *Transition) beforeStep(target NodeSet) Step {
	return func(tok Token, done func()) {
		if t.before == nil {
			done()
			return
		}
		t.before(target.Nodes(), done)
	}
}

func (t *Transition) afterStep(target NodeSet) Step {
	return func(tok Token, done func()) {
		if t.after == nil {
			done()
			return
		}
		t.after(target.Nodes(), done)
	}
}
