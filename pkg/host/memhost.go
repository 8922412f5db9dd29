package host

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// MemHost is the in-memory platform: a plain node tree with attribute,
// property, style, listener, and observer storage. It backs tests and
// the bench harness, and doubles as the reference implementation of the
// Host contract.
type MemHost struct{}

// NewMemHost creates an in-memory host.
func NewMemHost() *MemHost {
	return &MemHost{}
}

// CreateElement implements Host.
func (h *MemHost) CreateElement(tag string) Node {
	return &MemNode{
		kind: NodeElement,
		tag:  tag,
	}
}

// CreateText implements Host.
func (h *MemHost) CreateText(text string) Node {
	return &MemNode{
		kind: NodeText,
		text: text,
	}
}

// InsertBefore implements Host.
func (h *MemHost) InsertBefore(parent, child, ref Node) {
	p, ok := parent.(*MemNode)
	if !ok || child == nil {
		return
	}
	c := child.(*MemNode)

	// Moving: detach from the old parent first.
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = p

	if ref == nil {
		p.children = append(p.children, c)
		return
	}
	r := ref.(*MemNode)
	for i, existing := range p.children {
		if existing == r {
			p.children = append(p.children[:i], append([]*MemNode{c}, p.children[i:]...)...)
			return
		}
	}
	p.children = append(p.children, c)
}

// Remove implements Host.
func (h *MemHost) Remove(child Node) {
	c, ok := child.(*MemNode)
	if !ok || c.parent == nil {
		return
	}
	c.parent.removeChild(c)
	c.parent = nil
}

// Replace implements Host.
func (h *MemHost) Replace(old, new Node) {
	o, ok := old.(*MemNode)
	if !ok || o.parent == nil {
		return
	}
	n := new.(*MemNode)
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	p := o.parent
	for i, existing := range p.children {
		if existing == o {
			p.children[i] = n
			n.parent = p
			o.parent = nil
			return
		}
	}
}

// MemNode is the in-memory node.
type MemNode struct {
	kind     NodeKind
	tag      string
	text     string
	parent   *MemNode
	children []*MemNode

	attrs  map[string]string
	props  map[string]any
	styles map[string]string

	listeners map[string][]*listenerEntry
	observers map[ObserverKind][]*observerEntry

	nextListenerID int
}

type listenerEntry struct {
	id int
	fn func(Event)
}

type observerEntry struct {
	id int
	fn func(any)
}

// Kind implements Node.
func (n *MemNode) Kind() NodeKind { return n.kind }

// Tag implements Node.
func (n *MemNode) Tag() string { return n.tag }

// Text implements Node.
func (n *MemNode) Text() string { return n.text }

// SetText implements Node.
func (n *MemNode) SetText(s string) { n.text = s }

// SetAttr implements Node.
func (n *MemNode) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// RemoveAttr implements Node.
func (n *MemNode) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// Attr returns an attribute value and whether it is set.
func (n *MemNode) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// SetProp implements Node.
func (n *MemNode) SetProp(key string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = value
}

// Prop implements Node.
func (n *MemNode) Prop(key string) any {
	return n.props[key]
}

// SetStyle implements Node.
func (n *MemNode) SetStyle(key, value string) {
	if n.styles == nil {
		n.styles = make(map[string]string)
	}
	n.styles[key] = value
}

// On implements Node.
func (n *MemNode) On(event string, fn func(Event)) (off func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listenerEntry)
	}
	n.nextListenerID++
	entry := &listenerEntry{id: n.nextListenerID, fn: fn}
	n.listeners[event] = append(n.listeners[event], entry)
	return func() {
		entries := n.listeners[event]
		for i, e := range entries {
			if e.id == entry.id {
				n.listeners[event] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Observe implements Node.
func (n *MemNode) Observe(kind ObserverKind, fn func(any)) (off func()) {
	if n.observers == nil {
		n.observers = make(map[ObserverKind][]*observerEntry)
	}
	n.nextListenerID++
	entry := &observerEntry{id: n.nextListenerID, fn: fn}
	n.observers[kind] = append(n.observers[kind], entry)
	return func() {
		entries := n.observers[kind]
		for i, e := range entries {
			if e.id == entry.id {
				n.observers[kind] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Parent implements Node.
func (n *MemNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children implements Node.
func (n *MemNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// ListenerCount returns how many listeners are registered for event.
func (n *MemNode) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Fire delivers an event to this node's listeners for ev.Type.
// The listener list is copied first so handlers may unregister
// themselves mid-dispatch.
func (n *MemNode) Fire(ev Event) {
	entries := n.listeners[ev.Type]
	snapshot := make([]*listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// FireObserver delivers a value to this node's observers of the kind.
func (n *MemNode) FireObserver(kind ObserverKind, value any) {
	entries := n.observers[kind]
	snapshot := make([]*observerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(value)
	}
}

// Walk visits n and every descendant, depth-first.
func (n *MemNode) Walk(fn func(*MemNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// FindByTag returns the first descendant element with the given tag,
// including n itself.
func (n *MemNode) FindByTag(tag string) *MemNode {
	var found *MemNode
	n.Walk(func(m *MemNode) bool {
		if m.kind == NodeElement && m.tag == tag {
			found = m
			return false
		}
		return true
	})
	return found
}

// FindByAttr returns the first descendant element carrying attr=value.
func (n *MemNode) FindByAttr(attr, value string) *MemNode {
	var found *MemNode
	n.Walk(func(m *MemNode) bool {
		if v, ok := m.attrs[attr]; ok && v == value {
			found = m
			return false
		}
		return true
	})
	return found
}

func (n *MemNode) removeChild(c *MemNode) {
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// RenderToString serializes a subtree as HTML-ish markup, attributes in
// sorted order for stable assertions.
func RenderToString(node Node) string {
	n, ok := node.(*MemNode)
	if !ok {
		return ""
	}
	var sb strings.Builder
	renderNode(&sb, n)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *MemNode) {
	if n.kind == NodeText {
		sb.WriteString(html.EscapeString(n.text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.tag)

	keys := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, " %s=%q", k, n.attrs[k])
	}

	if len(n.styles) > 0 {
		styleKeys := make([]string, 0, len(n.styles))
		for k := range n.styles {
			styleKeys = append(styleKeys, k)
		}
		sort.Strings(styleKeys)
		var decl []string
		for _, k := range styleKeys {
			decl = append(decl, k+":"+n.styles[k])
		}
		fmt.Fprintf(sb, " style=%q", strings.Join(decl, ";"))
	}

	if isVoidTag(n.tag) && len(n.children) == 0 {
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	for _, c := range n.children {
		renderNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

// isVoidTag reports whether the tag is a void element.
func isVoidTag(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "source", "track", "wbr":
		return true
	}
	return false
}

var (
	_ Host = (*MemHost)(nil)
	_ Node = (*MemNode)(nil)
)
