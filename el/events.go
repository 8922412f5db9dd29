// This file provides event helpers for the el package.
package el

import (
	"time"

	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/host"
)

// Handler is the event callback shape shared by every helper.
type Handler = func(host.Event)

func OnClick(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("click", handler, opts...)
}
func OnDblClick(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("dblclick", handler, opts...)
}
func OnMouseDown(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("mousedown", handler, opts...)
}
func OnMouseUp(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("mouseup", handler, opts...)
}
func OnMouseMove(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("mousemove", handler, opts...)
}
func OnMouseEnter(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("mouseenter", handler, opts...)
}
func OnMouseLeave(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("mouseleave", handler, opts...)
}
func OnContextMenu(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("contextmenu", handler, opts...)
}
func OnWheel(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("wheel", handler, opts...)
}
func OnKeyDown(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("keydown", handler, opts...)
}
func OnKeyUp(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("keyup", handler, opts...)
}
func OnInput(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("input", handler, opts...)
}
func OnChange(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("change", handler, opts...)
}
func OnSubmit(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("submit", handler, opts...)
}
func OnFocus(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("focus", handler, opts...)
}
func OnBlur(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("blur", handler, opts...)
}
func OnScroll(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("scroll", handler, opts...)
}
func OnDragStart(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("dragstart", handler, opts...)
}
func OnDragEnd(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("dragend", handler, opts...)
}
func OnDragOver(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("dragover", handler, opts...)
}
func OnDrop(handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On("drop", handler, opts...)
}

// On attaches a handler for an arbitrary event name.
func On(event string, handler Handler, opts ...EventOption) EventHandler {
	return blueprint.On(event, handler, opts...)
}

// Delivery modifiers, re-exported for dot-import use.
func Stop() EventOption {
	return blueprint.Stop()
}
func Prevent() EventOption {
	return blueprint.Prevent()
}
func Debounce(d time.Duration) EventOption {
	return blueprint.Debounce(d)
}
