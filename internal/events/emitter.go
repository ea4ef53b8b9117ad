package events

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

type registration struct {
	handler Handler
	types   []Type
}

func (r registration) wants(t Type) bool {
	return len(r.types) == 0 || slices.Contains(r.types, t)
}

// InMemoryEmitter stores registered handlers in memory and dispatches events
// to them synchronously, in registration order.
type InMemoryEmitter struct {
	handlers []registration
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewInMemoryEmitter creates a new instance of InMemoryEmitter.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	return &InMemoryEmitter{
		handlers: make([]registration, 0),
		logger:   logger.With("component", "in_memory_event_emitter"),
	}
}

// RegisterHandler adds a handler. When types is non-empty the handler only
// receives events of those types.
func (e *InMemoryEmitter) RegisterHandler(handler Handler, types ...Type) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, registration{handler: handler, types: types})
	e.logger.Debug("registered new event handler", "handler_count", len(e.handlers))
}

// EmitEvent publishes the given event to all interested handlers.
// If any handler returns an error, the event will still be sent to all other handlers,
// and the first error encountered will be returned.
func (e *InMemoryEmitter) EmitEvent(ctx context.Context, event *Event) error {
	e.mu.RLock()
	handlers := make([]registration, 0, len(e.handlers))
	for _, r := range e.handlers {
		if r.wants(event.Type) {
			handlers = append(handlers, r)
		}
	}
	e.mu.RUnlock()

	e.logger.Debug("emitting event",
		"event_id", event.ID,
		"event_type", event.Type,
		"learner_id", event.LearnerID,
		"handler_count", len(handlers))

	var firstErr error
	for i, r := range handlers {
		if err := r.handler.HandleEvent(ctx, event); err != nil {
			e.logger.Error("handler failed to process event",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_type", event.Type)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
