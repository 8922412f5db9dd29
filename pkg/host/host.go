// Package host defines the platform collaborator contract: the minimal
// node surface the runtime needs to create, mutate, and wire a live
// element tree. The in-memory implementation in this package backs tests
// and the bench harness; pkg/remote mirrors the same operations to a
// browser shell.
package host

// NodeKind discriminates the two atomic platform node types.
type NodeKind uint8

const (
	NodeElement NodeKind = iota + 1
	NodeText
)

// String returns the kind's name.
func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeText:
		return "text"
	default:
		return "unknown"
	}
}

// Event is a platform input event delivered to a listener.
type Event struct {
	// Type is the event name ("click", "input", "keydown", ...).
	Type string

	// Value carries the target's value for input-like events.
	Value string

	// Checked carries checkbox/radio state.
	Checked bool

	// Key is the key identifier for keyboard events.
	Key string

	// Data holds any additional event payload.
	Data map[string]any
}

// ObserverKind selects a pluggable observation primitive. The core
// treats observers opaquely: something changed, fire the callback with
// the new value.
type ObserverKind uint8

const (
	// ObserveInput fires when the node's user-editable value changes.
	ObserveInput ObserverKind = iota + 1

	// ObserveResize fires when the node's layout size changes.
	ObserveResize
)

// String returns the observer kind's name.
func (k ObserverKind) String() string {
	switch k {
	case ObserveInput:
		return "input"
	case ObserveResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Node is one platform node. Element nodes carry a tag, attributes,
// properties, styles, listeners, and children; text nodes carry text.
type Node interface {
	// Kind reports whether this is an element or a text node.
	Kind() NodeKind

	// Tag returns the element tag. Empty for text nodes.
	Tag() string

	// Text returns the text content. Empty for element nodes.
	Text() string

	// SetText replaces the text content of a text node.
	SetText(s string)

	// SetAttr sets a string attribute.
	SetAttr(key, value string)

	// RemoveAttr removes an attribute.
	RemoveAttr(key string)

	// SetProp sets a non-attribute property (value, checked, ...).
	SetProp(key string, value any)

	// Prop returns a property value, or nil when unset.
	Prop(key string) any

	// SetStyle sets one style declaration.
	SetStyle(key, value string)

	// On registers an event listener and returns its removal function.
	On(event string, fn func(Event)) (off func())

	// Observe registers an observation primitive and returns its
	// removal function.
	Observe(kind ObserverKind, fn func(value any)) (off func())

	// Parent returns the parent node, nil at a root.
	Parent() Node

	// Children returns the current child list, outermost order.
	Children() []Node
}

// Host creates nodes and mutates tree structure. Implementations are
// driven exclusively from the runtime's dispatch loop; they need no
// internal synchronization.
type Host interface {
	// CreateElement creates a detached element node.
	CreateElement(tag string) Node

	// CreateText creates a detached text node.
	CreateText(text string) Node

	// InsertBefore inserts child under parent before ref. A nil ref
	// appends. An already-parented child is moved.
	InsertBefore(parent, child, ref Node)

	// Remove detaches child from its parent. No-op for detached nodes.
	Remove(child Node)

	// Replace swaps new into old's position and detaches old.
	Replace(old, new Node)
}
