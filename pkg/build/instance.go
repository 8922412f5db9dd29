package build

import (
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/suspense"
	"github.com/weft-dev/weft/pkg/weft"

	"github.com/weft-dev/weft/pkg/blueprint"
)

// Kind discriminates instance variants.
type Kind uint8

const (
	// KindElement is a built platform element.
	KindElement Kind = iota + 1

	// KindText is a built text node.
	KindText

	// KindPlaceholder is a built anchor node (empty text).
	KindPlaceholder

	// KindComponent is a built component boundary wrapping its resolved
	// content.
	KindComponent

	// KindGroup is a keyed-list or conditional container owning an
	// ordered member list.
	KindGroup
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindPlaceholder:
		return "placeholder"
	case KindComponent:
		return "component"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Instance is the live, platform-bound counterpart of a blueprint. It
// owns its platform node(s), the subscription handles created while
// wiring it, and, for components and groups, its nested instances.
// Only the fields of its Kind are meaningful.
type Instance struct {
	kind Kind
	bp   *blueprint.Blueprint
	b    *Builder

	// node is the platform node of an atomic instance.
	node host.Node

	// children are an element's child instances, blueprint order.
	children []*Instance

	// subs are reactive teardown handles; offs remove listeners,
	// observers, and watches. Both are released exactly once, on Remove.
	subs []weft.Subscription
	offs []func()

	// boundary and content belong to a component instance.
	boundary *Boundary
	content  *Instance

	// asyncGroup tracks an async component's in-flight resolution.
	asyncGroup *suspense.Group

	// group is a list/conditional container's reconciler state.
	group *groupState

	// hydrated marks an element whose children were matched against
	// existing platform nodes; the wire phase skips attaching them.
	hydrated bool

	// pendingMounts holds boundaries awaiting OnMount on a detached
	// build; Mount and Hydrate fire them directly.
	pendingMounts []*Boundary

	removed bool
}

// Kind returns the instance's variant.
func (in *Instance) Kind() Kind { return in.kind }

// Boundary returns a component instance's boundary, nil otherwise.
func (in *Instance) Boundary() *Boundary { return in.boundary }

// Content returns a component instance's resolved content, nil
// otherwise. For an unresolved async component this is the placeholder.
func (in *Instance) Content() *Instance { return in.content }

// Node returns the atomic platform node, nil for components and groups.
func (in *Instance) Node() host.Node { return in.node }

// Nodes returns the ordered platform nodes this instance occupies.
// Atomic instances occupy one node; a component occupies its content's
// nodes; a group occupies its members' nodes (or its placeholder).
func (in *Instance) Nodes() []host.Node {
	switch in.kind {
	case KindElement, KindText, KindPlaceholder:
		return []host.Node{in.node}
	case KindComponent:
		if in.content != nil {
			return in.content.Nodes()
		}
	case KindGroup:
		var out []host.Node
		for _, m := range in.group.members {
			out = append(out, m.Nodes()...)
		}
		return out
	}
	return nil
}

// First returns the first platform node, nil when the instance occupies
// none.
func (in *Instance) First() host.Node {
	nodes := in.Nodes()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Remove unsubscribes the whole subtree and detaches its platform
// nodes. Unsubscription happens first so no stale callback can fire on
// a removed node. OnUnmount hooks fire bottom-up during teardown.
func (in *Instance) Remove() {
	nodes := in.Nodes()
	in.teardown()
	for _, n := range nodes {
		in.b.h.Remove(n)
	}
}

// Detach removes the instance's platform nodes without touching its
// subscriptions, so it can be reattached later with AttachTo.
func (in *Instance) Detach() {
	for _, n := range in.Nodes() {
		in.b.h.Remove(n)
	}
}

// AttachTo inserts the instance's platform nodes under parent before
// ref (nil appends).
func (in *Instance) AttachTo(parent, ref host.Node) {
	for _, n := range in.Nodes() {
		in.b.h.InsertBefore(parent, n, ref)
	}
}

// FireMounts fires the pending OnMount hooks of a detached Build once
// the caller has attached the instance. Mount and Hydrate call this
// internally. Returns the first unabsorbed hook error.
func (in *Instance) FireMounts() error {
	pending := in.pendingMounts
	in.pendingMounts = nil
	return in.b.fireMounts(&pass{mounts: pending})
}

// teardown releases subscriptions, listeners, and observers for the
// subtree, children before parents, and fires OnUnmount bottom-up. It
// never touches the platform tree.
func (in *Instance) teardown() {
	if in.removed {
		return
	}
	in.removed = true

	for _, c := range in.children {
		c.teardown()
	}
	if in.content != nil {
		in.content.teardown()
	}
	if in.group != nil {
		for _, m := range in.group.members {
			m.teardown()
		}
		for _, s := range in.group.subs {
			s.Cancel()
		}
		in.group.subs = nil
	}

	for _, s := range in.subs {
		s.Cancel()
	}
	in.subs = nil
	for _, off := range in.offs {
		off()
	}
	in.offs = nil

	if in.asyncGroup != nil {
		in.asyncGroup.Cancel()
	}
	if in.boundary != nil {
		in.boundary.fireUnmounts()
	}
}

var _ suspense.NodeSet = (*Instance)(nil)
