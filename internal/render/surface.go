package render

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// ErrSurfaceDisposed is returned when a disposed surface is used.
var ErrSurfaceDisposed = errors.New("surface is disposed")

// Surface is an in-memory drawing surface.
type Surface struct {
	mu       sync.Mutex
	id       string
	engine   *Engine
	theme    string
	renderer panel.Renderer
	width    int
	height   int
	option   panel.Option
	config   panel.ApplyConfig
	handlers map[string][]func()
	disposed bool
}

// ID returns the surface ID.
func (s *Surface) ID() string {
	return s.id
}

// Theme returns the theme the surface was created with.
func (s *Surface) Theme() string {
	return s.theme
}

// Renderer returns the rendering back-end of the surface.
func (s *Surface) Renderer() panel.Renderer {
	return s.renderer
}

// Size returns the current surface size.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetOption applies option. With NotMerge the current option is replaced,
// otherwise the option is merged into it, replacing the components named in
// ReplaceMerge wholesale.
func (s *Surface) SetOption(option panel.Option, cfg panel.ApplyConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrSurfaceDisposed
	}

	if cfg.NotMerge {
		s.option = panel.Option(copyMap(option))
	} else {
		for key, value := range option {
			if slices.Contains(cfg.ReplaceMerge, key) {
				s.option[key] = copyValue(value)
				continue
			}
			s.option[key] = mergeValue(s.option[key], value)
		}
	}
	s.config = cfg
	return nil
}

// Option returns a copy of the current option.
func (s *Surface) Option() panel.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return panel.Option(copyMap(s.option))
}

// LastConfig returns the config of the last SetOption call.
func (s *Surface) LastConfig() panel.ApplyConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Clear removes the current option.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.option = panel.Option{}
}

// Resize records the new size.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.width = width
	s.height = height
}

// Dispose releases the surface. Later calls are no-ops.
func (s *Surface) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.handlers = make(map[string][]func())
	s.mu.Unlock()

	s.engine.release(s.id)
}

// IsDisposed reports whether Dispose was called.
func (s *Surface) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// On registers handler for event.
func (s *Surface) On(event string, handler func()) {
	if handler == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.handlers[event] = append(s.handlers[event], handler)
}

// Off removes all handlers of event.
func (s *Surface) Off(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handlers, event)
}

// Handlers returns the number of handlers registered for event.
func (s *Surface) Handlers(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers[event])
}

// Emit invokes the handlers of event. Handlers run without the surface lock
// held, so they may dispose the surface.
func (s *Surface) Emit(event string) {
	s.mu.Lock()
	handlers := slices.Clone(s.handlers[event])
	s.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}

// JSON encodes the current option, dropping function values.
func (s *Surface) JSON() ([]byte, error) {
	return json.Marshal(panel.Sanitize(s.Option()))
}
