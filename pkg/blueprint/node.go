package blueprint

import (
	"github.com/weft-dev/weft/pkg/weft"
)

// Node is the hyperscript constructor. The first argument is a tag name
// or a *Component; the rest are interpreted by type:
//
//	nil           ignored (conditional attributes)
//	Attr          one property
//	[]Attr        several properties
//	Props         merged property map
//	EventHandler  event wiring
//	*Blueprint    child
//	[]*Blueprint  children
//	*Component    child component use without props
//	string        text child
//	weft.Reactive reactive text child
//
// A property with key "key" becomes the blueprint's reconciliation key.
// Unrecognized argument types are ignored.
func Node(tagOrComponent any, args ...any) *Blueprint {
	switch t := tagOrComponent.(type) {
	case string:
		b := &Blueprint{
			Kind:  KindElement,
			Tag:   t,
			Props: make(Props),
		}
		applyArgs(b, args)
		return b
	case *Component:
		return t.New(args...)
	default:
		// A usable tree beats a nil panic deep in build.
		return Placeholder()
	}
}

func applyArgs(b *Blueprint, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue

		case Attr:
			setProp(b, v.Key, v.Value)

		case []Attr:
			for _, attr := range v {
				setProp(b, attr.Key, attr.Value)
			}

		case Props:
			for k, val := range v {
				setProp(b, k, val)
			}

		case EventHandler:
			b.Props[v.Event] = v

		case *Blueprint:
			if v != nil {
				b.Children = append(b.Children, v)
			}

		case []*Blueprint:
			for _, child := range v {
				if child != nil {
					b.Children = append(b.Children, child)
				}
			}

		case *Component:
			b.Children = append(b.Children, v.New())

		case string:
			b.Children = append(b.Children, Text(v))

		case weft.Reactive:
			b.Children = append(b.Children, TextSignal(v))
		}
	}
}

func setProp(b *Blueprint, key string, value any) {
	if key == "" {
		return
	}
	if key == "key" {
		b.Key = value
		return
	}
	b.Props[key] = value
}
