package blueprint

import (
	"time"

	"github.com/weft-dev/weft/pkg/host"
)

// Props is a blueprint's property map. Each value is a literal, a
// weft.Reactive (the builder keeps it synchronized), or an EventHandler.
type Props map[string]any

// Attr is a single key/value pair for the hyperscript constructor.
type Attr struct {
	Key   string
	Value any
}

// EventHandler wires a platform event to a callback, with optional
// delivery modifiers the host honors opaquely.
type EventHandler struct {
	// Event is the platform event name ("click", "input", ...).
	Event string

	// Handler receives the event on the runtime's dispatch loop.
	Handler func(host.Event)

	// Stop stops event propagation at the target.
	Stop bool

	// Prevent suppresses the platform's default action.
	Prevent bool

	// Debounce delays delivery until the event stream pauses.
	Debounce time.Duration
}

// EventOption modifies handler delivery.
type EventOption func(*EventHandler)

// Stop stops propagation at the target.
func Stop() EventOption {
	return func(h *EventHandler) { h.Stop = true }
}

// Prevent suppresses the default action.
func Prevent() EventOption {
	return func(h *EventHandler) { h.Prevent = true }
}

// Debounce delays delivery until d has passed without a new event.
func Debounce(d time.Duration) EventOption {
	return func(h *EventHandler) { h.Debounce = d }
}

// On creates an event handler property.
func On(event string, handler func(host.Event), opts ...EventOption) EventHandler {
	h := EventHandler{
		Event:   event,
		Handler: handler,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}
