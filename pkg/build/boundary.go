package build

import (
	"fmt"
	"log/slog"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/weft"
)

// Boundary is a component's runtime scope: its lifecycle hooks, its
// error handlers, and its own scheduler labels. Boundaries form a tree
// mirroring the UI tree but coarser-grained; errors bubble along the
// parent links. A Boundary is the blueprint.Ctx handed to the component
// function during construction.
type Boundary struct {
	rt     *weft.Runtime
	b      *Builder
	parent *Boundary
	name   string
	logger *slog.Logger

	// constructing is true only while the component function runs;
	// lifecycle registration outside that window is a build error.
	constructing bool

	mounts       []func()
	unmounts     []func()
	beforeUpdate []func()
	afterUpdate  []func()
	errHandlers  []blueprint.ErrorHandler

	// treeLabel coalesces this component's tree mutations per tick and
	// brackets them with the update hooks; effectLabel defers side
	// effects and runs them under the error guard.
	treeLabel   *weft.Label
	effectLabel *weft.Label

	mounted   bool
	unmounted bool
}

func newBoundary(b *Builder, parent *Boundary, name string) *Boundary {
	bd := &Boundary{
		rt:     b.rt,
		b:      b,
		parent: parent,
		name:   name,
		logger: b.logger.With("component", name),
	}
	bd.treeLabel = weft.NewTreeLabel(b.rt, bd.fireBeforeUpdate, bd.fireAfterUpdate)
	bd.effectLabel = weft.NewEffectLabel(b.rt, bd.guard)
	return bd
}

// Runtime implements blueprint.Ctx.
func (bd *Boundary) Runtime() *weft.Runtime { return bd.rt }

// Name returns the component name.
func (bd *Boundary) Name() string { return bd.name }

// Parent returns the parent boundary, nil at the builder root.
func (bd *Boundary) Parent() *Boundary { return bd.parent }

// TreeLabel returns the label batching this component's tree updates.
func (bd *Boundary) TreeLabel() *weft.Label { return bd.treeLabel }

// EffectLabel returns the label running this component's deferred side
// effects under its error guard.
func (bd *Boundary) EffectLabel() *weft.Label { return bd.effectLabel }

// OnMount implements blueprint.Ctx.
func (bd *Boundary) OnMount(fn func()) {
	bd.register("OnMount", &bd.mounts, fn)
}

// OnUnmount implements blueprint.Ctx.
func (bd *Boundary) OnUnmount(fn func()) {
	bd.register("OnUnmount", &bd.unmounts, fn)
}

// OnBeforeUpdate implements blueprint.Ctx.
func (bd *Boundary) OnBeforeUpdate(fn func()) {
	bd.register("OnBeforeUpdate", &bd.beforeUpdate, fn)
}

// OnAfterUpdate implements blueprint.Ctx.
func (bd *Boundary) OnAfterUpdate(fn func()) {
	bd.register("OnAfterUpdate", &bd.afterUpdate, fn)
}

// OnErrorCaptured implements blueprint.Ctx.
func (bd *Boundary) OnErrorCaptured(fn blueprint.ErrorHandler) {
	if !bd.constructing {
		panic(fmt.Errorf("%w: OnErrorCaptured on %s", ErrLifecycle, bd.name))
	}
	bd.errHandlers = append(bd.errHandlers, fn)
}

func (bd *Boundary) register(what string, slot *[]func(), fn func()) {
	if !bd.constructing {
		panic(fmt.Errorf("%w: %s on %s", ErrLifecycle, what, bd.name))
	}
	*slot = append(*slot, fn)
}

// construct runs the component function with the registration window
// open, converting a panic into an error.
func (bd *Boundary) construct(fn func() blueprint.Output) (out blueprint.Output, err error) {
	bd.constructing = true
	defer func() {
		bd.constructing = false
		if r := recover(); r != nil {
			err = fmt.Errorf("component %s: %w", bd.name, asError(r))
		}
	}()
	out = fn()
	return out, nil
}

// HandleError routes err through the boundary chain starting here:
// each boundary's handlers run in registration order, immediately. A
// handler returning false absorbs the error and stops the walk; any
// other result passes it on to the parent. Reports whether some handler
// absorbed the error.
func (bd *Boundary) HandleError(err error) bool {
	origin := bd
	for cur := bd; cur != nil; cur = cur.parent {
		for _, h := range cur.errHandlers {
			if !h(err, origin) {
				return true
			}
		}
	}
	return false
}

// Invoke runs fn with panics captured and routed through the error
// chain. An unabsorbed error is returned so the invoking host call can
// terminate.
func (bd *Boundary) Invoke(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e := asError(r)
			if bd.HandleError(e) {
				bd.logger.Debug("error absorbed by boundary", "error", e)
				return
			}
			err = e
		}
	}()
	fn()
	return nil
}

// guard adapts Invoke for label use: an unabsorbed error is rethrown to
// whatever drove the flush.
func (bd *Boundary) guard(fn func()) {
	if err := bd.Invoke(fn); err != nil {
		panic(err)
	}
}

func (bd *Boundary) fireMount() error {
	if bd.mounted || bd.unmounted {
		return nil
	}
	bd.mounted = true
	for _, fn := range bd.mounts {
		if err := bd.Invoke(fn); err != nil {
			return err
		}
	}
	return nil
}

func (bd *Boundary) fireUnmounts() {
	if bd.unmounted {
		return
	}
	bd.unmounted = true
	for _, fn := range bd.unmounts {
		bd.guard(fn)
	}
}

func (bd *Boundary) fireBeforeUpdate() {
	for _, fn := range bd.beforeUpdate {
		bd.guard(fn)
	}
}

func (bd *Boundary) fireAfterUpdate() {
	for _, fn := range bd.afterUpdate {
		bd.guard(fn)
	}
}

var _ blueprint.Ctx = (*Boundary)(nil)
