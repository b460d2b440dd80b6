package engine

import (
	"github.com/slgem/slgem/events"
)

// Handler processes specific event types drained by the game loop.
// Collaborators (sinks, domain subsystems, views) implement this interface
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during the loop's drain phase; an error aborts the run
	HandleEvent(pe events.PrioritizedEvent) error

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []events.EventType
}

// Router dispatches drained events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch from the game loop goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Priority never reorders dispatch; events arrive in queue order
type Router struct {
	handlers map[events.EventType][]Handler
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		handlers: make(map[events.EventType][]Handler),
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes one event to every handler registered for its type.
// The first handler error stops dispatch and is returned
func (r *Router) Dispatch(pe events.PrioritizedEvent) error {
	for _, h := range r.handlers[pe.Event.Type] {
		if err := h.HandleEvent(pe); err != nil {
			return err
		}
	}
	return nil
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router) HasHandlers(t events.EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t events.EventType) int {
	return len(r.handlers[t])
}
