// This file provides blueprint helper functions for the el package.
package el

import (
	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/weft"
)

func Text(content string) *Blueprint {
	return blueprint.Text(content)
}
func Textf(format string, args ...any) *Blueprint {
	return blueprint.Textf(format, args...)
}

// Tmpl substitutes positional {0}, {1}, ... placeholders; reactive
// arguments keep the text live.
func Tmpl(format string, args ...any) *Blueprint {
	return blueprint.Tmpl(format, args...)
}

// Bind renders a reactive source as live text.
func Bind(src weft.Reactive) *Blueprint {
	return blueprint.TextSignal(src)
}

// Nothing is an explicit empty slot: a placeholder node that keeps its
// position in the sibling order.
func Nothing() *Blueprint {
	return blueprint.Placeholder()
}

// If includes node when the static condition holds. For reactive
// conditions use When or IfElse.
func If(condition bool, node *Blueprint) *Blueprint {
	if condition {
		return node
	}
	return nil
}

// Unless is the negated form of If.
func Unless(condition bool, node *Blueprint) *Blueprint {
	if condition {
		return nil
	}
	return node
}

// Range builds one blueprint per item of a static slice. For reactive
// sequences use ForEach.
func Range[T any](items []T, fn func(item T, index int) *Blueprint) []*Blueprint {
	out := make([]*Blueprint, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Repeat builds n blueprints by index.
func Repeat(n int, fn func(i int) *Blueprint) []*Blueprint {
	out := make([]*Blueprint, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// ForEach renders a reactive slice as a keyed list.
func ForEach[T any](src interface{ Get() []T }, keyOf func(T) any, render func(T) *Blueprint) *Blueprint {
	return blueprint.ForEach(src, keyOf, render)
}

// Switch selects one branch by a reactive index; a same-index
// notification is a no-op.
func Switch(index interface{ Get() int }, branches ...*Blueprint) *Blueprint {
	return blueprint.Switch(index, branches...)
}

// When shows content while the reactive condition is truthy, rebuilding
// on every notification.
func When(cond weft.Reactive, content *Blueprint) *Blueprint {
	return blueprint.When(cond, content)
}

// IfElse picks between two branches on a reactive condition.
func IfElse(cond weft.Reactive, then, otherwise *Blueprint) *Blueprint {
	return blueprint.IfElse(cond, then, otherwise)
}

// Define creates a synchronous component.
func Define(name string, render blueprint.Func, opts ...ComponentOption) *Component {
	return blueprint.Define(name, render, opts...)
}

// DefineAsync creates an asynchronous component.
func DefineAsync(name string, render blueprint.AsyncFunc, opts ...ComponentOption) *Component {
	return blueprint.DefineAsync(name, render, opts...)
}

// WithDefaults declares a component's prop defaults.
func WithDefaults(defaults PropTypes) ComponentOption {
	return blueprint.WithDefaults(defaults)
}
