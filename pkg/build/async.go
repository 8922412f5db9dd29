package build

import (
	"fmt"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/suspense"
)

// generateAsync builds an asynchronous component: a placeholder stands
// in immediately, and the real subtree is spliced in when the
// component's channel delivers. The resolution runs as a cancellable
// capture, so removing the instance abandons a splice still in flight.
// Mount hooks, the boundary's own included, fire only once spliced.
func (b *Builder) generateAsync(p *pass, bp *blueprint.Blueprint, bd *Boundary, props blueprint.Props, cur *cursor) (*Instance, error) {
	var ch <-chan blueprint.AsyncResult
	_, err := bd.construct(func() blueprint.Output {
		ch = bp.Component.RenderAsync(bd, props, bp.Children)
		return blueprint.Output{}
	})
	if err != nil {
		if !bd.HandleError(err) {
			return nil, err
		}
		ch = nil
	}

	ph, err := b.generatePlaceholder(blueprint.Placeholder(), cur)
	if err != nil {
		return nil, err
	}
	in := &Instance{kind: KindComponent, bp: bp, b: b, boundary: bd, content: ph}

	if bp.Obs != nil && !bp.Obs.MarkBuilt() {
		return nil, fmt.Errorf("%w: component %s", ErrDoubleObserve, bp.Component.Name)
	}

	if ch == nil {
		return in, nil
	}

	grp := suspense.NewGroup(b.rt)
	in.asyncGroup = grp

	var res blueprint.AsyncResult
	grp.Capture(true,
		func(t suspense.Token, done func()) {
			// The await point: resolution arrives on its own goroutine
			// and advancement is posted back to the runtime loop.
			go func() {
				if r, ok := <-ch; ok {
					res = r
				}
				done()
			}()
		},
		func(t suspense.Token, done func()) {
			b.resolveAsync(in, res)
			done()
		},
	)
	return in, nil
}

// resolveAsync splices the resolved subtree over the placeholder. A
// failed resolution discards the in-progress instance and routes the
// error through the boundary chain.
func (b *Builder) resolveAsync(in *Instance, res blueprint.AsyncResult) {
	bd := in.boundary
	if in.removed {
		return
	}
	if res.Err != nil {
		err := fmt.Errorf("async component %s: %w", bd.name, res.Err)
		if !bd.HandleError(err) {
			bd.logger.Error("unhandled async component failure", "error", res.Err)
		}
		return
	}

	node := res.Output.Node
	if node == nil {
		node = blueprint.Placeholder()
	}

	p := &pass{}
	content, err := b.generate(p, node, bd, nil)
	if err != nil {
		if !bd.HandleError(err) {
			bd.logger.Error("async component build failed", "error", err)
		}
		return
	}
	b.wire(content)

	old := in.content
	oldNodes := old.Nodes()
	if len(oldNodes) > 0 {
		if parent := oldNodes[0].Parent(); parent != nil {
			for _, n := range content.Nodes() {
				b.h.InsertBefore(parent, n, oldNodes[0])
			}
		}
	}
	old.teardown()
	for _, n := range oldNodes {
		b.h.Remove(n)
	}
	in.content = content

	if in.bp.Obs != nil {
		b.wireComponentObservation(in, in.bp.Obs, res.Output, bd)
	}

	p.mounts = append(p.mounts, bd)
	if err := b.fireMounts(p); err != nil {
		bd.logger.Error("mount hook failed after async splice", "error", err)
	}
}
