// Package blueprint defines the immutable node descriptors UI authors
// construct and the builder consumes: elements, text, placeholders,
// component uses, keyed lists, and conditional branches. A blueprint is
// pure data; building it produces live instances bound to signals.
package blueprint

import (
	"github.com/weft-dev/weft/pkg/weft"
)

// Kind discriminates blueprint variants. Every consumer switches on it;
// there is no interface dispatch between variants.
type Kind uint8

const (
	// KindElement is an atomic platform element ("div", "input", ...).
	KindElement Kind = iota + 1

	// KindText is an atomic text node; its content may be reactive.
	KindText

	// KindPlaceholder is an empty text-like atomic node used as a
	// stable anchor where content is absent.
	KindPlaceholder

	// KindComponent is a component use, unwrapped during build.
	KindComponent

	// KindList is a keyed-list container.
	KindList

	// KindSwitch is a multi-branch conditional, re-selected only when
	// the branch index changes.
	KindSwitch

	// KindWhen is a single-branch conditional, rebuilt on every
	// selector notification.
	KindWhen
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindPlaceholder:
		return "placeholder"
	case KindComponent:
		return "component"
	case KindList:
		return "list"
	case KindSwitch:
		return "switch"
	case KindWhen:
		return "when"
	default:
		return "unknown"
	}
}

// Blueprint is an immutable node descriptor. Only the fields of its Kind
// are meaningful. Blueprints may be reused to build multiple instances,
// except when an observation is attached (see Observe): an observing
// blueprint is single-use per physical build.
type Blueprint struct {
	Kind Kind

	// Tag, Props, Children describe a KindElement.
	Tag      string
	Props    Props
	Children []*Blueprint

	// Text holds a KindText's content: a string or a weft.Reactive
	// yielding the current text.
	Text any

	// Component and CompProps describe a KindComponent use; Children
	// carries the use's child blueprints.
	Component *Component
	CompProps Props

	// List describes a KindList.
	List *ListSpec

	// Cond describes a KindSwitch or KindWhen.
	Cond *CondSpec

	// Key identifies this blueprint within a keyed sibling set.
	Key any

	// Obs is the attached observation, when any. Marks the blueprint
	// single-use.
	Obs *Observation
}

// ListSpec describes a keyed-list container. Items is read inside the
// reconciler's tracking frame so the list re-runs when its source
// changes.
type ListSpec struct {
	// Items produces the current item sequence.
	Items func() []any

	// KeyOf extracts the identity key for one item.
	KeyOf func(item any) any

	// Render builds the blueprint for one item.
	Render func(item any) *Blueprint
}

// CondSpec describes a conditional container. Index is read inside the
// conditional's tracking frame; a negative index selects no branch.
type CondSpec struct {
	// Index selects the active branch.
	Index func() int

	// Branches are the candidate blueprints, by index.
	Branches []*Blueprint
}

// Text creates a static text blueprint.
func Text(content string) *Blueprint {
	return &Blueprint{
		Kind: KindText,
		Text: content,
	}
}

// TextSignal creates a text blueprint whose content follows a reactive
// source. The source's value is rendered with fmt-style defaults.
func TextSignal(src weft.Reactive) *Blueprint {
	return &Blueprint{
		Kind: KindText,
		Text: src,
	}
}

// Placeholder creates an explicit placeholder blueprint.
func Placeholder() *Blueprint {
	return &Blueprint{Kind: KindPlaceholder}
}

// ForEach creates a keyed-list blueprint over a reactive slice. keyOf
// must be injective within one update; render builds each item's
// subtree.
func ForEach[T any](src interface{ Get() []T }, keyOf func(T) any, render func(T) *Blueprint) *Blueprint {
	return &Blueprint{
		Kind: KindList,
		List: &ListSpec{
			Items: func() []any {
				items := src.Get()
				out := make([]any, len(items))
				for i, item := range items {
					out[i] = item
				}
				return out
			},
			KeyOf: func(item any) any {
				return keyOf(item.(T))
			},
			Render: func(item any) *Blueprint {
				return render(item.(T))
			},
		},
	}
}

// Switch creates a multi-branch conditional selected by a reactive
// index. The active branch changes only when the index changes; a
// same-index notification is a no-op. Out-of-range and negative indexes
// select no branch (a placeholder stands in).
func Switch(index interface{ Get() int }, branches ...*Blueprint) *Blueprint {
	return &Blueprint{
		Kind: KindSwitch,
		Cond: &CondSpec{
			Index:    index.Get,
			Branches: branches,
		},
	}
}

// When creates a single-branch conditional: content is shown while the
// condition reads truthy. Unlike Switch, the branch is rebuilt on every
// selector notification, even when the selection itself is unchanged.
func When(cond weft.Reactive, content *Blueprint) *Blueprint {
	return &Blueprint{
		Kind: KindWhen,
		Cond: &CondSpec{
			Index: func() int {
				if Truthy(cond.ReadAny()) {
					return 0
				}
				return -1
			},
			Branches: []*Blueprint{content},
		},
	}
}

// IfElse creates a two-branch conditional on a reactive condition.
func IfElse(cond weft.Reactive, then, otherwise *Blueprint) *Blueprint {
	return &Blueprint{
		Kind: KindSwitch,
		Cond: &CondSpec{
			Index: func() int {
				if Truthy(cond.ReadAny()) {
					return 0
				}
				return 1
			},
			Branches: []*Blueprint{then, otherwise},
		},
	}
}

// Truthy reports whether a value selects content: nil, false, zero
// numbers, and empty strings do not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case uint:
		return t != 0
	default:
		return true
	}
}

// Clone deep-copies the blueprint with fresh observation state, so a
// single-use (observing) blueprint can be built again. Children are
// cloned recursively; props and specs are shared (they are read-only
// during build).
func (b *Blueprint) Clone() *Blueprint {
	if b == nil {
		return nil
	}
	dup := *b
	if b.Obs != nil {
		dup.Obs = b.Obs.clone()
	}
	if len(b.Children) > 0 {
		dup.Children = make([]*Blueprint, len(b.Children))
		for i, c := range b.Children {
			dup.Children[i] = c.Clone()
		}
	}
	return &dup
}
