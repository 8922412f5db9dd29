// Package build turns blueprint trees into live instance trees bound to
// a host platform. The build is two-phase: a generate pass produces
// instances, unwrapping component boundaries until every branch reaches
// an atomic blueprint, then a breadth-first wire pass attaches the
// generated platform nodes in blueprint order. Mount hooks fire
// bottom-up once the whole subtree is wired. Supplying an existing
// platform subtree switches the builder into hydration, which must match
// node-by-node or fail.
package build

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

// Builder builds blueprint trees against one runtime and one host.
type Builder struct {
	rt     *weft.Runtime
	h      host.Host
	logger *slog.Logger

	// root is the implicit outermost boundary: content built outside
	// any component hangs off it, and unabsorbed errors surface there.
	root *Boundary
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the builder's logger. Defaults to the runtime's.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a builder for the given runtime and host.
func New(rt *weft.Runtime, h host.Host, opts ...Option) *Builder {
	b := &Builder{
		rt:     rt,
		h:      h,
		logger: rt.Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.root = newBoundary(b, nil, "root")
	return b
}

// Runtime returns the builder's runtime.
func (b *Builder) Runtime() *weft.Runtime { return b.rt }

// Host returns the builder's host.
func (b *Builder) Host() host.Host { return b.h }

// Root returns the builder's implicit root boundary.
func (b *Builder) Root() *Boundary { return b.root }

// pass accumulates per-build state: the boundaries whose OnMount must
// fire once the subtree is wired, in bottom-up order.
type pass struct {
	mounts []*Boundary
}

// cursor walks a hydration sibling list. Atomic instances consume one
// node each; groups consume one per member.
type cursor struct {
	nodes []host.Node
	pos   int
}

func (c *cursor) take() (host.Node, bool) {
	if c.pos >= len(c.nodes) {
		return nil, false
	}
	n := c.nodes[c.pos]
	c.pos++
	return n, true
}

// Build generates and wires a detached instance. The caller attaches it
// (AttachTo) and then fires the pending mount hooks with FireMounts;
// Mount does all three.
func (b *Builder) Build(bp *blueprint.Blueprint) (*Instance, error) {
	p := &pass{}
	in, err := b.generate(p, bp, b.root, nil)
	if err != nil {
		return nil, err
	}
	b.wire(in)
	in.pendingMounts = p.mounts
	return in, nil
}

// Mount builds bp, appends its nodes under container, and fires mount
// hooks bottom-up.
func (b *Builder) Mount(bp *blueprint.Blueprint, container host.Node) (*Instance, error) {
	in, err := b.Build(bp)
	if err != nil {
		return nil, err
	}
	in.AttachTo(container, nil)
	if err := in.FireMounts(); err != nil {
		return nil, err
	}
	return in, nil
}

// Hydrate builds bp against an existing platform subtree rooted at
// node. Matching is structurally exact: a kind or tag mismatch, or a
// child-count mismatch under a node that already has children, fails
// the build. Freshly generated parts (subtrees under childless existing
// nodes) are wired as in a normal build.
func (b *Builder) Hydrate(bp *blueprint.Blueprint, node host.Node) (*Instance, error) {
	p := &pass{}
	cur := &cursor{nodes: []host.Node{node}}
	in, err := b.generate(p, bp, b.root, cur)
	if err != nil {
		return nil, err
	}
	b.wire(in)
	if err := b.fireMounts(p); err != nil {
		return nil, err
	}
	return in, nil
}

// generate is phase 1: produce the instance for bp, recursively
// unwrapping component boundaries until an atomic blueprint is reached.
// With a non-nil cursor the instance hydrates against existing nodes
// instead of creating fresh ones.
func (b *Builder) generate(p *pass, bp *blueprint.Blueprint, bd *Boundary, cur *cursor) (*Instance, error) {
	if bp == nil {
		return nil, ErrNilBlueprint
	}
	switch bp.Kind {
	case blueprint.KindElement:
		return b.generateElement(p, bp, bd, cur)
	case blueprint.KindText:
		return b.generateText(bp, bd, cur)
	case blueprint.KindPlaceholder:
		return b.generatePlaceholder(bp, cur)
	case blueprint.KindComponent:
		return b.generateComponent(p, bp, bd, cur)
	case blueprint.KindList, blueprint.KindSwitch, blueprint.KindWhen:
		return b.generateGroup(p, bp, bd, cur)
	}
	return nil, fmt.Errorf("build: unknown blueprint kind %d", bp.Kind)
}

func (b *Builder) generateElement(p *pass, bp *blueprint.Blueprint, bd *Boundary, cur *cursor) (*Instance, error) {
	var node host.Node
	if cur != nil {
		n, ok := cur.take()
		if !ok {
			return nil, fmt.Errorf("%w: no node for <%s>", ErrInsufficientNodes, bp.Tag)
		}
		if n.Kind() != host.NodeElement || n.Tag() != bp.Tag {
			return nil, fmt.Errorf("%w: want <%s>, have %s %q", ErrTagMismatch, bp.Tag, n.Kind(), n.Tag())
		}
		node = n
	} else {
		node = b.h.CreateElement(bp.Tag)
	}

	in := &Instance{kind: KindElement, bp: bp, b: b, node: node}

	if bp.Obs != nil {
		if !bp.Obs.MarkBuilt() {
			return nil, fmt.Errorf("%w: <%s>", ErrDoubleObserve, bp.Tag)
		}
		b.wireElementObservation(in, bp.Obs, bd)
	}
	b.wireProps(in, bp.Props, bd)

	existing := node.Children()
	if cur != nil && len(existing) > 0 {
		kids := &cursor{nodes: existing}
		for _, cb := range bp.Children {
			ci, err := b.generate(p, cb, bd, kids)
			if err != nil {
				return nil, err
			}
			in.children = append(in.children, ci)
		}
		if kids.pos < len(kids.nodes) {
			return nil, fmt.Errorf("%w: %d extra under <%s>", ErrExcessiveNodes, len(kids.nodes)-kids.pos, bp.Tag)
		}
		in.hydrated = true
		return in, nil
	}

	for _, cb := range bp.Children {
		ci, err := b.generate(p, cb, bd, nil)
		if err != nil {
			return nil, err
		}
		in.children = append(in.children, ci)
	}
	return in, nil
}

func (b *Builder) generateText(bp *blueprint.Blueprint, bd *Boundary, cur *cursor) (*Instance, error) {
	var node host.Node
	if cur != nil {
		n, ok := cur.take()
		if !ok {
			return nil, fmt.Errorf("%w: no node for text", ErrInsufficientNodes)
		}
		if n.Kind() != host.NodeText {
			return nil, fmt.Errorf("%w: want text, have <%s>", ErrTagMismatch, n.Tag())
		}
		node = n
	} else {
		node = b.h.CreateText("")
	}

	in := &Instance{kind: KindText, bp: bp, b: b, node: node}

	switch t := bp.Text.(type) {
	case string:
		node.SetText(t)
	case weft.Reactive:
		stop := weft.Watch(b.rt, func() {
			node.SetText(fmt.Sprint(t.ReadAny()))
		}, weft.WithWatchLabel(bd.treeLabel))
		in.offs = append(in.offs, stop)
	default:
		node.SetText(fmt.Sprint(t))
	}
	return in, nil
}

func (b *Builder) generatePlaceholder(bp *blueprint.Blueprint, cur *cursor) (*Instance, error) {
	var node host.Node
	if cur != nil {
		n, ok := cur.take()
		if !ok {
			return nil, fmt.Errorf("%w: no node for placeholder", ErrInsufficientNodes)
		}
		if n.Kind() != host.NodeText {
			return nil, fmt.Errorf("%w: want placeholder text, have <%s>", ErrTagMismatch, n.Tag())
		}
		node = n
	} else {
		node = b.h.CreateText("")
	}
	return &Instance{kind: KindPlaceholder, bp: bp, b: b, node: node}, nil
}

func (b *Builder) generateComponent(p *pass, bp *blueprint.Blueprint, bd *Boundary, cur *cursor) (*Instance, error) {
	comp := bp.Component
	child := newBoundary(b, bd, comp.Name)
	props := comp.ResolveProps(bp.CompProps)

	if comp.RenderAsync != nil {
		return b.generateAsync(p, bp, child, props, cur)
	}

	out, err := child.construct(func() blueprint.Output {
		return comp.Render(child, props, bp.Children)
	})
	if err != nil {
		// Runtime failure during construction: the boundary chain may
		// absorb it, in which case a placeholder stands in.
		if !child.HandleError(err) {
			return nil, err
		}
		out = blueprint.Output{Node: blueprint.Placeholder()}
	}
	if out.Node == nil {
		out.Node = blueprint.Placeholder()
	}

	in := &Instance{kind: KindComponent, bp: bp, b: b, boundary: child}

	if bp.Obs != nil && !bp.Obs.MarkBuilt() {
		return nil, fmt.Errorf("%w: component %s", ErrDoubleObserve, comp.Name)
	}

	content, err := b.generate(p, out.Node, child, cur)
	if err != nil {
		return nil, err
	}
	in.content = content

	if bp.Obs != nil {
		b.wireComponentObservation(in, bp.Obs, out, child)
	}

	// Post-order append: the content's boundaries are already queued,
	// so mounts fire bottom-up.
	p.mounts = append(p.mounts, child)
	return in, nil
}

// wire is phase 2: breadth-first, attach generated child platform nodes
// under their parents in blueprint order. Hydrated elements keep the
// attachment they already have.
func (b *Builder) wire(root *Instance) {
	queue := []*Instance{root}
	for len(queue) > 0 {
		in := queue[0]
		queue = queue[1:]
		switch in.kind {
		case KindElement:
			if !in.hydrated {
				for _, c := range in.children {
					for _, n := range c.Nodes() {
						b.h.InsertBefore(in.node, n, nil)
					}
				}
			}
			queue = append(queue, in.children...)
		case KindComponent:
			if in.content != nil {
				queue = append(queue, in.content)
			}
		case KindGroup:
			queue = append(queue, in.group.members...)
		}
	}
}

func (b *Builder) fireMounts(p *pass) error {
	for _, bd := range p.mounts {
		if err := bd.fireMount(); err != nil {
			return err
		}
	}
	return nil
}

// wireProps applies each property once and keeps reactive ones
// synchronized through the owning boundary's tree label.
func (b *Builder) wireProps(in *Instance, props blueprint.Props, bd *Boundary) {
	for key, value := range props {
		switch v := value.(type) {
		case blueprint.EventHandler:
			b.wireEvent(in, v, bd)
		case weft.Reactive:
			key := key
			stop := weft.Watch(b.rt, func() {
				applyProp(in.node, key, v.ReadAny())
			}, weft.WithWatchLabel(bd.treeLabel))
			in.offs = append(in.offs, stop)
		default:
			applyProp(in.node, key, v)
		}
	}
}

// applyProp routes a property value to the right node surface:
// "style:x" keys set styles, observable props set properties, booleans
// toggle attribute presence, everything else sets a string attribute.
func applyProp(node host.Node, key string, v any) {
	if name, ok := strings.CutPrefix(key, "style:"); ok {
		node.SetStyle(name, fmt.Sprint(v))
		return
	}
	if _, observable := blueprint.ElementObservableDefault(key); observable {
		node.SetProp(key, v)
		return
	}
	switch t := v.(type) {
	case bool:
		if t {
			node.SetAttr(key, "")
		} else {
			node.RemoveAttr(key)
		}
	default:
		node.SetAttr(key, fmt.Sprint(t))
	}
}

// wireEvent registers the handler so it runs on the runtime loop inside
// the boundary's error guard. Debounce is implemented here; the other
// modifiers are recorded as node properties for the host to honor
// opaquely.
func (b *Builder) wireEvent(in *Instance, h blueprint.EventHandler, bd *Boundary) {
	deliver := func(ev host.Event) {
		b.rt.Do(func() {
			bd.guard(func() { h.Handler(ev) })
		})
	}

	fn := deliver
	if h.Debounce > 0 {
		var timer *time.Timer
		fn = func(ev host.Event) {
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.Debounce, func() { deliver(ev) })
		}
	}

	off := in.node.On(h.Event, fn)
	in.offs = append(in.offs, off)

	if h.Stop {
		in.node.SetProp("@"+h.Event+".stop", true)
	}
	if h.Prevent {
		in.node.SetProp("@"+h.Event+".prevent", true)
	}
}

// settable is a reactive cell accepting type-erased writes.
type settable interface {
	weft.Reactive
	SetAny(v any) bool
}

// referencer exposes the one-shot became-referenced hook.
type referencer interface {
	OnReferenceAny(fn func())
}

// wireElementObservation binds output-facing signals to an element
// bidirectionally. Input-like props sync both ways; resize props only
// report, and their observer attaches lazily, the first time the bound
// signal is genuinely consumed.
func (b *Builder) wireElementObservation(in *Instance, obs *blueprint.Observation, bd *Boundary) {
	for name, sig := range obs.Bindings {
		def, ok := blueprint.ElementObservableDefault(name)
		if !ok {
			b.logger.Warn("prop is not observable",
				"prop", name,
				"suggestion", blueprint.SuggestProp(name, blueprint.ElementObservableNames()))
			continue
		}

		kind := host.ObserveInput
		reportOnly := false
		if name == "width" || name == "height" {
			kind = host.ObserveResize
			reportOnly = true
		}

		set, canSet := sig.(settable)
		if canSet {
			set.SetAny(def)
		}

		name := name
		attach := func() {
			if !canSet {
				return
			}
			off := in.node.Observe(kind, func(v any) {
				b.rt.Do(func() {
					set.SetAny(v)
				})
			})
			in.offs = append(in.offs, off)
		}

		if reportOnly {
			// Speculative until read: defer the observer wiring.
			if ref, ok := sig.(referencer); ok {
				ref.OnReferenceAny(attach)
			} else {
				attach()
			}
			continue
		}

		attach()
		sig := sig
		stop := weft.Watch(b.rt, func() {
			in.node.SetProp(name, sig.ReadAny())
		}, weft.WithWatchLabel(bd.treeLabel))
		in.offs = append(in.offs, stop)
	}
}

// wireComponentObservation binds the author's signals to a component's
// exposed signals, both ways where the cells allow writing. Equality
// short-circuiting in the signal store stops the echo.
func (b *Builder) wireComponentObservation(in *Instance, obs *blueprint.Observation, out blueprint.Output, bd *Boundary) {
	declared := make([]string, 0, len(out.Exposed)+len(in.bp.Component.Defaults))
	for name := range out.Exposed {
		declared = append(declared, name)
	}
	for name := range in.bp.Component.Defaults {
		declared = append(declared, name)
	}

	for name, sig := range obs.Bindings {
		exp, ok := out.Exposed[name]
		if !ok {
			if def, has := in.bp.Component.Defaults[name]; has {
				if set, canSet := sig.(settable); canSet {
					set.SetAny(def)
				}
				continue
			}
			b.logger.Warn("component exposes no such signal",
				"component", bd.name,
				"prop", name,
				"suggestion", blueprint.SuggestProp(name, declared))
			continue
		}

		if set, canSet := sig.(settable); canSet {
			stop := weft.Watch(b.rt, func() {
				set.SetAny(exp.ReadAny())
			})
			in.offs = append(in.offs, stop)
		}
		if expSet, canSet := exp.(settable); canSet {
			sig := sig
			stop := weft.Watch(b.rt, func() {
				expSet.SetAny(sig.ReadAny())
			})
			in.offs = append(in.offs, stop)
		}
	}
}
