package build

import (
	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/weft"
)

// UseSignal creates a signal owned by the component being constructed.
func UseSignal[T any](ctx blueprint.Ctx, initial T) *weft.Signal[T] {
	return weft.NewSignal(ctx.Runtime(), initial)
}

// UseDerived creates a derived signal owned by the component being
// constructed.
func UseDerived[T any](ctx blueprint.Ctx, compute func() T) *weft.Derived[T] {
	return weft.NewDerived(ctx.Runtime(), compute)
}

// UseWatch runs fn reactively for the component's lifetime; the watch
// stops when the component unmounts. Callable only during construction,
// like the lifecycle registrations it relies on.
func UseWatch(ctx blueprint.Ctx, fn func(), opts ...weft.WatchOption) {
	stop := weft.Watch(ctx.Runtime(), fn, opts...)
	ctx.OnUnmount(stop)
}
