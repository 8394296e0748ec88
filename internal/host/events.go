package host

import (
	"slices"
	"sync"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// AppEvents is the global alert stream of the host. It keeps every
// published event and forwards it to listeners.
type AppEvents struct {
	mu        sync.Mutex
	events    []panel.Event
	listeners []func(panel.Event)
}

// NewAppEvents creates an empty alert stream.
func NewAppEvents() *AppEvents {
	return &AppEvents{}
}

// Publish records event and forwards it to the listeners.
func (a *AppEvents) Publish(event panel.Event) {
	a.mu.Lock()
	a.events = append(a.events, event)
	listeners := slices.Clone(a.listeners)
	a.mu.Unlock()

	for _, listen := range listeners {
		listen(event)
	}
}

// Listen registers fn for every future event.
func (a *AppEvents) Listen(fn func(panel.Event)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, fn)
}

// Events returns the published events in order.
func (a *AppEvents) Events() []panel.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]panel.Event(nil), a.events...)
}
