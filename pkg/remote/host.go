package remote

import (
	"github.com/weft-dev/weft/pkg/host"
)

// TreeHost is the mirroring host.Host implementation. It keeps a full
// in-memory copy of the tree (the builder and reconcilers read parents,
// children, and props) and records every mutation into a pending batch
// the session drains after each flush.
//
// Like every host, it is driven only from the runtime's dispatch loop
// and needs no locking.
type TreeHost struct {
	nextID  uint32
	pending []Mutation
	seq     uint64
	nodes   map[uint32]*treeNode
}

// NewTreeHost creates an empty mirroring host.
func NewTreeHost() *TreeHost {
	return &TreeHost{nodes: make(map[uint32]*treeNode)}
}

func (h *TreeHost) record(m Mutation) {
	h.pending = append(h.pending, m)
}

func (h *TreeHost) newNode(kind host.NodeKind) *treeNode {
	h.nextID++
	n := &treeNode{id: h.nextID, kind: kind, host: h}
	h.nodes[n.id] = n
	return n
}

// CreateElement creates a detached element node.
func (h *TreeHost) CreateElement(tag string) host.Node {
	n := h.newNode(host.NodeElement)
	n.tag = tag
	h.record(Mutation{Op: OpCreateElement, Node: n.id, Str: tag})
	return n
}

// CreateText creates a detached text node.
func (h *TreeHost) CreateText(text string) host.Node {
	n := h.newNode(host.NodeText)
	n.text = text
	h.record(Mutation{Op: OpCreateText, Node: n.id, Str: text})
	return n
}

// InsertBefore inserts child under parent before ref. A nil ref appends;
// an already-parented child is moved.
func (h *TreeHost) InsertBefore(parent, child, ref host.Node) {
	p := parent.(*treeNode)
	c := child.(*treeNode)
	h.detach(c)

	idx := len(p.children)
	var refID uint32
	if ref != nil {
		r := ref.(*treeNode)
		refID = r.id
		for i, sib := range p.children {
			if sib == r {
				idx = i
				break
			}
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c
	c.parent = p

	h.record(Mutation{Op: OpInsertBefore, Node: c.id, Parent: p.id, Ref: refID})
}

// Remove detaches child from its parent. The node stays in the id
// index: removal may be a temporary detach with the subtree reinserted
// later, so its id must keep routing events.
func (h *TreeHost) Remove(child host.Node) {
	c := child.(*treeNode)
	if c.parent == nil {
		return
	}
	h.detach(c)
	h.record(Mutation{Op: OpRemove, Node: c.id})
}

// Replace swaps new into old's position and detaches old.
func (h *TreeHost) Replace(old, new host.Node) {
	o := old.(*treeNode)
	n := new.(*treeNode)
	if o.parent == nil {
		return
	}
	p := o.parent
	h.detach(n)
	for i, sib := range p.children {
		if sib == o {
			p.children[i] = n
			break
		}
	}
	n.parent = p
	o.parent = nil
	h.record(Mutation{Op: OpReplace, Node: o.id, Ref: n.id})
}

func (h *TreeHost) detach(n *treeNode) {
	p := n.parent
	if p == nil {
		return
	}
	for i, sib := range p.children {
		if sib == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Flush returns the accumulated mutations as a sequenced batch and
// resets the pending buffer. Returns nil when nothing changed.
func (h *TreeHost) Flush() *MutationBatch {
	if len(h.pending) == 0 {
		return nil
	}
	h.seq++
	batch := &MutationBatch{Seq: h.seq, Mutations: h.pending}
	h.pending = nil
	return batch
}

// Pending reports how many mutations await the next flush.
func (h *TreeHost) Pending() int {
	return len(h.pending)
}

// Seq returns the last flushed batch sequence.
func (h *TreeHost) Seq() uint64 {
	return h.seq
}

// DispatchEvent delivers a client input event to the addressed node's
// listeners. Unknown ids are dropped: a resyncing or misbehaving shell
// may address a node this session never created.
func (h *TreeHost) DispatchEvent(nodeID uint32, ev host.Event) {
	n, ok := h.nodes[nodeID]
	if !ok {
		return
	}
	n.fire(ev)
}

// DispatchObservation delivers a client-side observed value change.
func (h *TreeHost) DispatchObservation(nodeID uint32, kind host.ObserverKind, value any) {
	n, ok := h.nodes[nodeID]
	if !ok {
		return
	}
	entries := n.observers[kind]
	snapshot := make([]*observerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(value)
	}
}

// treeNode is one mirrored node.
type treeNode struct {
	id   uint32
	kind host.NodeKind
	host *TreeHost

	tag   string
	text  string
	props map[string]any

	parent   *treeNode
	children []*treeNode

	listeners map[string][]*listenerEntry
	observers map[host.ObserverKind][]*observerEntry

	nextListenerID int
}

type listenerEntry struct {
	id int
	fn func(host.Event)
}

type observerEntry struct {
	id int
	fn func(any)
}

// ID returns the node's wire id.
func (n *treeNode) ID() uint32 {
	return n.id
}

func (n *treeNode) Kind() host.NodeKind { return n.kind }
func (n *treeNode) Tag() string         { return n.tag }
func (n *treeNode) Text() string        { return n.text }

func (n *treeNode) SetText(s string) {
	n.text = s
	n.host.record(Mutation{Op: OpSetText, Node: n.id, Str: s})
}

func (n *treeNode) SetAttr(key, value string) {
	n.setLocal(key, value)
	n.host.record(Mutation{Op: OpSetAttr, Node: n.id, Key: key, Str: value})
}

func (n *treeNode) RemoveAttr(key string) {
	if n.props != nil {
		delete(n.props, key)
	}
	n.host.record(Mutation{Op: OpRemoveAttr, Node: n.id, Key: key})
}

func (n *treeNode) SetProp(key string, value any) {
	n.setLocal(key, value)
	n.host.record(Mutation{Op: OpSetProp, Node: n.id, Key: key, Value: value})
}

func (n *treeNode) Prop(key string) any {
	if n.props == nil {
		return nil
	}
	return n.props[key]
}

func (n *treeNode) SetStyle(key, value string) {
	n.setLocal("style:"+key, value)
	n.host.record(Mutation{Op: OpSetStyle, Node: n.id, Key: key, Str: value})
}

func (n *treeNode) setLocal(key string, value any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = value
}

// On registers a listener. The shell learns about it through an "@event"
// prop so it attaches the matching DOM listener, and is told again when
// the last listener goes away.
func (n *treeNode) On(event string, fn func(host.Event)) (off func()) {
	if n.listeners == nil {
		n.listeners = make(map[string][]*listenerEntry)
	}
	if len(n.listeners[event]) == 0 {
		n.SetProp("@"+event, true)
	}
	n.nextListenerID++
	entry := &listenerEntry{id: n.nextListenerID, fn: fn}
	n.listeners[event] = append(n.listeners[event], entry)
	return func() {
		entries := n.listeners[event]
		for i, e := range entries {
			if e.id == entry.id {
				n.listeners[event] = append(entries[:i], entries[i+1:]...)
				if len(n.listeners[event]) == 0 {
					n.SetProp("@"+event, false)
				}
				return
			}
		}
	}
}

// fire copies the listener list first so handlers may unregister
// themselves mid-dispatch.
func (n *treeNode) fire(ev host.Event) {
	entries := n.listeners[ev.Type]
	snapshot := make([]*listenerEntry, len(entries))
	copy(snapshot, entries)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// Observe registers an observation primitive; the shell learns about it
// through an "@observe.<kind>" prop.
func (n *treeNode) Observe(kind host.ObserverKind, fn func(value any)) (off func()) {
	if n.observers == nil {
		n.observers = make(map[host.ObserverKind][]*observerEntry)
	}
	if len(n.observers[kind]) == 0 {
		n.SetProp("@observe."+kind.String(), true)
	}
	n.nextListenerID++
	entry := &observerEntry{id: n.nextListenerID, fn: fn}
	n.observers[kind] = append(n.observers[kind], entry)
	return func() {
		entries := n.observers[kind]
		for i, e := range entries {
			if e.id == entry.id {
				n.observers[kind] = append(entries[:i], entries[i+1:]...)
				if len(n.observers[kind]) == 0 {
					n.SetProp("@observe."+kind.String(), false)
				}
				return
			}
		}
	}
}

func (n *treeNode) Parent() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *treeNode) Children() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
