package build

import (
	"fmt"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/weft"
)

// unsetIndex marks a conditional group that has not selected yet.
const unsetIndex = -2

// groupState is the reconciler behind a keyed-list or conditional
// instance. The source read (Items or Index) runs inside the group's
// tracking frame, so a source change re-runs the reconciler through the
// boundary's tree label; member subtrees build untracked and own their
// subscriptions.
type groupState struct {
	inst *Instance
	bd   *Boundary
	bp   *blueprint.Blueprint

	members []*Instance

	// keyed maps list keys to their instances across updates.
	keyed map[any]*Instance

	// placeholder is the member standing in for an empty result set,
	// keeping a stable anchor for later insertions.
	placeholder *Instance

	// index is a conditional's current branch; rebuildAlways marks the
	// standalone (when-like) form that rebuilds on every notification.
	index         int
	rebuildAlways bool

	caller *weft.Caller
	subs   []weft.Subscription
}

func (b *Builder) generateGroup(p *pass, bp *blueprint.Blueprint, bd *Boundary, cur *cursor) (*Instance, error) {
	in := &Instance{kind: KindGroup, bp: bp, b: b}
	g := &groupState{inst: in, bd: bd, bp: bp, index: unsetIndex}
	in.group = g
	if bp.Kind == blueprint.KindList {
		g.keyed = make(map[any]*Instance)
	}
	g.rebuildAlways = bp.Kind == blueprint.KindWhen
	g.caller = weft.NewCaller(g.refreshEntry, bd.treeLabel)

	var err error
	g.subs = b.rt.Track(g.caller, func() {
		err = g.initial(p, cur)
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

// initial builds the group's first member set, consuming hydration
// nodes when a cursor is supplied.
func (g *groupState) initial(p *pass, cur *cursor) error {
	b := g.inst.b
	if g.bp.Kind == blueprint.KindList {
		items := g.bp.List.Items()
		keys, err := g.listKeys(items)
		if err != nil {
			return err
		}
		for i, item := range items {
			var mi *Instance
			var genErr error
			item := item
			b.rt.Untracked(func() {
				mi, genErr = b.generate(p, g.bp.List.Render(item), g.bd, cur)
			})
			if genErr != nil {
				return genErr
			}
			g.members = append(g.members, mi)
			g.keyed[keys[i]] = mi
		}
		if len(g.members) == 0 {
			return g.insertPlaceholder(cur, nil, nil)
		}
		return nil
	}

	idx := g.bp.Cond.Index()
	g.index = idx
	mi, err := g.buildBranch(p, idx, cur)
	if err != nil {
		return err
	}
	g.members = []*Instance{mi}
	return nil
}

// refreshEntry is the group's caller body. Runtime errors raised while
// rebuilding members route through the boundary chain; build-structure
// errors (duplicate keys) stay fatal and leave through the flush.
func (g *groupState) refreshEntry() {
	if g.inst.removed {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				e := asError(r)
				if !g.bd.HandleError(e) {
					err = e
				}
			}
		}()
		return g.refresh()
	}()
	if err != nil {
		panic(err)
	}
}

func (g *groupState) refresh() error {
	for _, s := range g.subs {
		s.Cancel()
	}
	var err error
	g.subs = g.inst.b.rt.Track(g.caller, func() {
		if g.bp.Kind == blueprint.KindList {
			err = g.refreshList()
		} else {
			err = g.refreshCond()
		}
	})
	return err
}

// refreshList reconciles the member set against the new item sequence:
// existing keys are reused (moved into place), new keys build fresh
// instances, departed keys are removed. The duplicate-key check runs
// before any instance mutation.
func (g *groupState) refreshList() error {
	b := g.inst.b
	items := g.bp.List.Items()
	keys, err := g.listKeys(items)
	if err != nil {
		return err
	}

	parent, tailRef := g.position()

	newMembers := make([]*Instance, 0, len(items))
	newKeyed := make(map[any]*Instance, len(items))
	var builtPasses []*pass

	for i, item := range items {
		k := keys[i]
		if exist, ok := g.keyed[k]; ok {
			newMembers = append(newMembers, exist)
			newKeyed[k] = exist
			continue
		}
		p2 := &pass{}
		var mi *Instance
		var genErr error
		item := item
		b.rt.Untracked(func() {
			mi, genErr = b.generate(p2, g.bp.List.Render(item), g.bd, nil)
		})
		if genErr != nil {
			return genErr
		}
		b.wire(mi)
		newMembers = append(newMembers, mi)
		newKeyed[k] = mi
		builtPasses = append(builtPasses, p2)
	}

	for k, inst := range g.keyed {
		if _, keep := newKeyed[k]; !keep {
			inst.Remove()
		}
	}

	if len(newMembers) == 0 {
		g.keyed = newKeyed
		if g.placeholder == nil {
			if err := g.insertPlaceholder(nil, parent, tailRef); err != nil {
				return err
			}
		}
		return nil
	}

	if g.placeholder != nil {
		g.placeholder.Remove()
		g.placeholder = nil
	}

	// Walk the new order back to front, inserting each member before
	// the one after it. InsertBefore moves parented nodes, so reuse,
	// move, and insert are one operation.
	if parent != nil {
		ref := tailRef
		for i := len(newMembers) - 1; i >= 0; i-- {
			nodes := newMembers[i].Nodes()
			for _, n := range nodes {
				b.h.InsertBefore(parent, n, ref)
			}
			if len(nodes) > 0 {
				ref = nodes[0]
			}
		}
	}

	g.members = newMembers
	g.keyed = newKeyed

	for _, p2 := range builtPasses {
		if err := b.fireMounts(p2); err != nil {
			return err
		}
	}
	return nil
}

// refreshCond re-selects the active branch. The multi-branch form
// treats a same-index notification as a no-op; the standalone form
// rebuilds unconditionally.
func (g *groupState) refreshCond() error {
	b := g.inst.b
	idx := g.bp.Cond.Index()
	if idx == g.index && !g.rebuildAlways {
		return nil
	}

	parent, _ := g.position()
	old := g.members

	p2 := &pass{}
	mi, err := g.buildBranch(p2, idx, nil)
	if err != nil {
		return err
	}
	b.wire(mi)
	g.index = idx

	if parent != nil {
		var ref host.Node
		if len(old) > 0 {
			ref = old[0].First()
		}
		for _, n := range mi.Nodes() {
			b.h.InsertBefore(parent, n, ref)
		}
		for _, m := range old {
			m.Remove()
		}
	} else {
		for _, m := range old {
			m.teardown()
		}
	}

	g.members = []*Instance{mi}
	return b.fireMounts(p2)
}

// buildBranch builds the branch at idx, or a placeholder when idx
// selects nothing. Branch subtrees build untracked.
func (g *groupState) buildBranch(p *pass, idx int, cur *cursor) (*Instance, error) {
	b := g.inst.b
	if idx < 0 || idx >= len(g.bp.Cond.Branches) {
		return b.generatePlaceholder(blueprint.Placeholder(), cur)
	}
	var mi *Instance
	var err error
	b.rt.Untracked(func() {
		mi, err = b.generate(p, g.bp.Cond.Branches[idx], g.bd, cur)
	})
	return mi, err
}

// listKeys extracts and validates the keys for one update. A repeated
// key fails before anything is touched.
func (g *groupState) listKeys(items []any) ([]any, error) {
	keys := make([]any, len(items))
	seen := make(map[any]struct{}, len(items))
	for i, item := range items {
		k := g.bp.List.KeyOf(item)
		if _, dup := seen[k]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateKey, k)
		}
		seen[k] = struct{}{}
		keys[i] = k
	}
	return keys, nil
}

// insertPlaceholder makes the placeholder the group's sole member. With
// a cursor it hydrates; with a parent it attaches immediately.
func (g *groupState) insertPlaceholder(cur *cursor, parent, ref host.Node) error {
	ph, err := g.inst.b.generatePlaceholder(blueprint.Placeholder(), cur)
	if err != nil {
		return err
	}
	g.placeholder = ph
	g.members = []*Instance{ph}
	if parent != nil {
		g.inst.b.h.InsertBefore(parent, ph.node, ref)
	}
	return nil
}

// position locates the group in the platform tree: its parent node and
// the sibling immediately after its last node. Nil results mean the
// group is detached; reconciliation then only updates bookkeeping.
func (g *groupState) position() (host.Node, host.Node) {
	nodes := g.inst.Nodes()
	if len(nodes) == 0 {
		return nil, nil
	}
	parent := nodes[0].Parent()
	if parent == nil {
		return nil, nil
	}
	last := nodes[len(nodes)-1]
	siblings := parent.Children()
	for i, s := range siblings {
		if s == last {
			if i+1 < len(siblings) {
				return parent, siblings[i+1]
			}
			return parent, nil
		}
	}
	return parent, nil
}
