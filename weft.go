// Package weft provides the public API for the Weft UI runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/weft-dev/weft"
//
// Usage:
//
//	rt := weft.NewRuntime()
//	count := weft.NewSignal(rt, 0)
//	b := weft.NewBuilder(rt, weft.NewMemHost())
package weft

import (
	"log/slog"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/suspense"
	coreweft "github.com/weft-dev/weft/pkg/weft"
)

// =============================================================================
// Reactive primitives (re-export from pkg/weft)
// =============================================================================

// Runtime owns the signal graph, the dispatch loop, and the label
// scheduler. Every reactive value belongs to exactly one runtime.
type Runtime = coreweft.Runtime
type RuntimeOption = coreweft.RuntimeOption

// Reactive is the type-erased face shared by signals and derived values.
type Reactive = coreweft.Reactive
type Subscription = coreweft.Subscription
type Caller = coreweft.Caller
type Label = coreweft.Label
type WatchOption = coreweft.WatchOption

// NewRuntime creates a runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	return coreweft.NewRuntime(opts...)
}

// WithRuntimeLogger routes the runtime's diagnostics to logger.
func WithRuntimeLogger(logger *slog.Logger) RuntimeOption {
	return coreweft.WithLogger(logger)
}

// WithQueueSize sizes the runtime loop's work queue.
func WithQueueSize(n int) RuntimeOption {
	return coreweft.WithQueueSize(n)
}

// NewSignal creates a writable reactive value on rt.
//
//	count := weft.NewSignal(rt, 0)
//	count.Set(1)
func NewSignal[T any](rt *Runtime, initial T) *coreweft.Signal[T] {
	return coreweft.NewSignal(rt, initial)
}

// NewDerived creates a computed value that tracks its dependencies.
//
//	doubled := weft.NewDerived(rt, func() int { return count.Get() * 2 })
func NewDerived[T any](rt *Runtime, compute func() T) *coreweft.Derived[T] {
	return coreweft.NewDerived(rt, compute)
}

// Watch runs fn now and again whenever a dependency changes. The
// returned stop tears the watcher down.
func Watch(rt *Runtime, fn func(), opts ...WatchOption) (stop func()) {
	return coreweft.Watch(rt, fn, opts...)
}

// =============================================================================
// Blueprint DSL (re-export from pkg/blueprint)
// =============================================================================

type Blueprint = blueprint.Blueprint
type Props = blueprint.Props
type PropTypes = blueprint.PropTypes
type Attr = blueprint.Attr
type EventHandler = blueprint.EventHandler
type EventOption = blueprint.EventOption
type Ctx = blueprint.Ctx
type Output = blueprint.Output
type Component = blueprint.Component
type ComponentOption = blueprint.ComponentOption
type ErrorHandler = blueprint.ErrorHandler
type AsyncResult = blueprint.AsyncResult

// Node is the hyperscript constructor; see blueprint.Node for the
// argument conventions.
var Node = blueprint.Node

var Text = blueprint.Text
var Textf = blueprint.Textf
var Tmpl = blueprint.Tmpl
var TextSignal = blueprint.TextSignal
var Placeholder = blueprint.Placeholder
var Switch = blueprint.Switch
var When = blueprint.When
var IfElse = blueprint.IfElse
var On = blueprint.On
var Stop = blueprint.Stop
var Prevent = blueprint.Prevent
var Debounce = blueprint.Debounce
var Define = blueprint.Define
var DefineAsync = blueprint.DefineAsync
var WithDefaults = blueprint.WithDefaults

// ForEach renders a reactive slice as a keyed list.
func ForEach[T any](src interface{ Get() []T }, keyOf func(T) any, render func(T) *Blueprint) *Blueprint {
	return blueprint.ForEach(src, keyOf, render)
}

// =============================================================================
// Hosts (re-export from pkg/host)
// =============================================================================

// Host is the platform-tree contract the builder drives.
type Host = host.Host

// HostNode is one node of the platform tree.
type HostNode = host.Node
type Event = host.Event

// NewMemHost creates the in-memory host used for tests and server-side
// rendering.
func NewMemHost() *host.MemHost {
	return host.NewMemHost()
}

// RenderToString serializes a host subtree as HTML.
var RenderToString = host.RenderToString

// =============================================================================
// Building (re-export from pkg/build)
// =============================================================================

type Builder = build.Builder
type BuilderOption = build.Option
type Instance = build.Instance

// NewBuilder creates a builder that materializes blueprints on h.
func NewBuilder(rt *Runtime, h Host, opts ...BuilderOption) *Builder {
	return build.New(rt, h, opts...)
}

// WithBuilderLogger routes the builder's diagnostics to logger.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return build.WithLogger(logger)
}

// UseSignal creates a signal owned by the constructing component.
func UseSignal[T any](ctx Ctx, initial T) *coreweft.Signal[T] {
	return build.UseSignal(ctx, initial)
}

// UseDerived creates a derived value owned by the constructing component.
func UseDerived[T any](ctx Ctx, compute func() T) *coreweft.Derived[T] {
	return build.UseDerived(ctx, compute)
}

// UseWatch registers a watcher torn down with the component.
func UseWatch(ctx Ctx, fn func(), opts ...WatchOption) {
	build.UseWatch(ctx, fn, opts...)
}

// =============================================================================
// Suspense (re-export from pkg/suspense)
// =============================================================================

type SuspenseGroup = suspense.Group
type Transition = suspense.Transition
type TransitionOption = suspense.TransitionOption

// NewSuspenseGroup creates a capture group for cancellable async work.
func NewSuspenseGroup(rt *Runtime, opts ...suspense.GroupOption) *SuspenseGroup {
	return suspense.NewGroup(rt, opts...)
}

// NewTransition creates an animated attach/detach coordinator.
func NewTransition(rt *Runtime, h Host, opts ...TransitionOption) *Transition {
	return suspense.NewTransition(rt, h, opts...)
}

var WithBefore = suspense.WithBefore
var WithAfter = suspense.WithAfter
var NonCancellable = suspense.NonCancellable
