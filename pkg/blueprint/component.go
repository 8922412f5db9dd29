package blueprint

import (
	"github.com/weft-dev/weft/pkg/weft"
)

// PropTypes declares a component's accepted props with their default
// values. The defaults also drive bidirectional observation: Observe
// infers a binding's initial value from here.
type PropTypes map[string]any

// Ctx is the construction context handed to a component function. The
// lifecycle registrations are valid only while the component's own
// construction runs; calling them later is a build error.
type Ctx interface {
	// Runtime returns the runtime the component is being built on.
	Runtime() *weft.Runtime

	// OnMount registers a hook fired after the component's entire
	// subtree, nested components included, is wired into the platform
	// tree.
	OnMount(fn func())

	// OnUnmount registers a hook fired when the component's instance
	// is removed.
	OnUnmount(fn func())

	// OnBeforeUpdate registers a hook fired before each batch of the
	// component's tree updates.
	OnBeforeUpdate(fn func())

	// OnAfterUpdate registers a hook fired after each batch of the
	// component's tree updates.
	OnAfterUpdate(fn func())

	// OnErrorCaptured registers an error-boundary handler. Handlers
	// run in registration order; returning false stops propagation,
	// anything else passes the error to the parent boundary.
	OnErrorCaptured(fn ErrorHandler)
}

// ErrorHandler inspects an error captured by a boundary. origin is the
// boundary whose subtree raised the error. Return false to absorb the
// error; return true to let it continue to the parent boundary.
type ErrorHandler func(err error, origin Ctx) bool

// Output is what a component function produces: the subtree to build
// plus any output-facing signals it exposes for observation.
type Output struct {
	Node    *Blueprint
	Exposed map[string]weft.Reactive
}

// Func is the synchronous component contract.
type Func func(ctx Ctx, props Props, children []*Blueprint) Output

// AsyncResult is one asynchronous component resolution.
type AsyncResult struct {
	Output Output
	Err    error
}

// AsyncFunc is the asynchronous component contract: the boundary builds
// to a placeholder immediately and splices the resolved subtree in when
// the channel delivers.
type AsyncFunc func(ctx Ctx, props Props, children []*Blueprint) <-chan AsyncResult

// Component is a reusable component definition.
type Component struct {
	// Name identifies the component in logs and errors.
	Name string

	// Defaults declares accepted props and their defaults.
	Defaults PropTypes

	// Render is the synchronous contract. Exactly one of Render and
	// RenderAsync is set.
	Render Func

	// RenderAsync is the asynchronous contract.
	RenderAsync AsyncFunc
}

// ComponentOption configures a component definition.
type ComponentOption func(*Component)

// WithDefaults declares the component's prop defaults.
func WithDefaults(defaults PropTypes) ComponentOption {
	return func(c *Component) {
		c.Defaults = defaults
	}
}

// Define creates a synchronous component.
func Define(name string, render Func, opts ...ComponentOption) *Component {
	c := &Component{
		Name:   name,
		Render: render,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefineAsync creates an asynchronous component.
func DefineAsync(name string, render AsyncFunc, opts ...ComponentOption) *Component {
	c := &Component{
		Name:        name,
		RenderAsync: render,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New creates a use of the component. Args follow the Node conventions:
// Attr/[]Attr/Props become the use's props, blueprints become children.
func (c *Component) New(args ...any) *Blueprint {
	b := &Blueprint{
		Kind:      KindComponent,
		Component: c,
		CompProps: make(Props),
	}
	// Reuse the element arg processing, then move props over.
	tmp := &Blueprint{Kind: KindElement, Props: b.CompProps}
	applyArgs(tmp, args)
	b.Key = tmp.Key
	b.Children = tmp.Children
	return b
}

// ResolveProps merges the component's defaults under the use's props.
func (c *Component) ResolveProps(given Props) Props {
	merged := make(Props, len(c.Defaults)+len(given))
	for k, v := range c.Defaults {
		merged[k] = v
	}
	for k, v := range given {
		merged[k] = v
	}
	return merged
}
