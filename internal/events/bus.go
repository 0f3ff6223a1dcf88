package events

import (
	"context"
	"sync"
)

// Handler processes a single event. Handlers must not block; long running
// work should be dispatched to a goroutine by the handler itself.
type Handler func(ctx context.Context, event Event)

// Bus delivers domain events to subscribers.
type Bus interface {
	// Publish delivers the event to every subscriber of its name.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for the given event name.
	Subscribe(eventName string, handler Handler)
}

// memoryBus is a simple synchronous in-process bus. Delivery happens on the
// publisher's goroutine so ordering is preserved per publisher.
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an in-process event bus.
func NewBus() Bus {
	return &memoryBus{
		handlers: make(map[string][]Handler),
	}
}

func (b *memoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	subscribers := b.handlers[event.EventName()]
	b.mu.RUnlock()

	for _, handler := range subscribers {
		handler(ctx, event)
	}
}

func (b *memoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}
