// Package host provides the dashboard-side collaborators of a panel: the
// event bus, the alert stream, variable substitution, the location accessor
// and query snapshot loading.
package host

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// Bus is an in-process event bus. Handlers are called synchronously by Publish.
type Bus struct {
	mu     sync.Mutex
	logger *slog.Logger
	subs   map[string]map[string]func(any)
}

// NewBus creates an empty bus.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[string]map[string]func(any)),
	}
}

// Subscribe registers handler for eventType. A nil handler is accepted and
// never called, so scripts can hold a subscription without a callback.
func (b *Bus) Subscribe(eventType string, handler func(payload any)) panel.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	if b.subs[eventType] == nil {
		b.subs[eventType] = make(map[string]func(any))
	}
	b.subs[eventType][id] = handler

	b.logger.Debug("bus subscription added", "event", eventType, "subscription", id)
	return &Subscription{bus: b, eventType: eventType, id: id}
}

// Publish delivers payload to the handlers of eventType and returns how many
// handlers were called. A panicking handler is logged and skipped.
func (b *Bus) Publish(eventType string, payload any) int {
	b.mu.Lock()
	handlers := make([]func(any), 0, len(b.subs[eventType]))
	for _, handler := range b.subs[eventType] {
		if handler != nil {
			handlers = append(handlers, handler)
		}
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		b.deliver(eventType, handler, payload)
	}
	return len(handlers)
}

// deliver calls handler, containing panics so one failing subscriber does
// not stop the others. Script handlers panic when they throw.
func (b *Bus) deliver(eventType string, handler func(any), payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("bus handler panicked", "event", eventType, "panic", r)
		}
	}()

	handler(payload)
}

// Subscribers returns the number of live subscriptions across all events.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}

func (b *Bus) remove(eventType, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs[eventType], id)
	if len(b.subs[eventType]) == 0 {
		delete(b.subs, eventType)
	}
}

// Subscription is returned by Bus.Subscribe.
type Subscription struct {
	bus       *Bus
	eventType string
	id        string
	once      sync.Once
}

// Unsubscribe removes the subscription. Repeated calls are no-ops.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.eventType, s.id)
		s.bus.logger.Debug("bus subscription removed", "event", s.eventType, "subscription", s.id)
	})
}
