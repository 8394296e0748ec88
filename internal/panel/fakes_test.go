package panel

import (
	"fmt"
	"maps"
	"testing"
)

// callLog records engine and surface calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) index(call string) int {
	for i, c := range l.calls {
		if c == call {
			return i
		}
	}
	return -1
}

type fakeEngine struct {
	log      *callLog
	surfaces []*fakeSurface
	err      error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{log: &callLog{}}
}

func (e *fakeEngine) Init(container *Container, theme string, opts InitOptions) (Surface, error) {
	if e.err != nil {
		return nil, e.err
	}
	s := &fakeSurface{
		id:        fmt.Sprintf("surface-%d", len(e.surfaces)+1),
		log:       e.log,
		container: *container,
		theme:     theme,
		renderer:  opts.Renderer,
		handlers:  make(map[string][]func()),
	}
	e.log.add("init %s", s.id)
	e.surfaces = append(e.surfaces, s)
	return s, nil
}

func (e *fakeEngine) last() *fakeSurface {
	if len(e.surfaces) == 0 {
		return nil
	}
	return e.surfaces[len(e.surfaces)-1]
}

type fakeSurface struct {
	id        string
	log       *callLog
	container Container
	theme     string
	renderer  Renderer

	option   Option
	applied  []Option
	configs  []ApplyConfig
	resizes  [][2]int
	handlers map[string][]func()
	cleared  int
	disposed int
	setErr   error
}

func (s *fakeSurface) ID() string { return s.id }

func (s *fakeSurface) SetOption(option Option, cfg ApplyConfig) error {
	s.log.add("setOption %s", s.id)
	if s.setErr != nil {
		return s.setErr
	}
	s.option = maps.Clone(option)
	s.applied = append(s.applied, maps.Clone(option))
	s.configs = append(s.configs, cfg)
	return nil
}

func (s *fakeSurface) Option() Option { return s.option }

func (s *fakeSurface) Clear() {
	s.log.add("clear %s", s.id)
	s.cleared++
	s.option = nil
}

func (s *fakeSurface) Resize(width, height int) {
	s.log.add("resize %s", s.id)
	s.resizes = append(s.resizes, [2]int{width, height})
}

func (s *fakeSurface) Dispose() {
	s.log.add("dispose %s", s.id)
	s.disposed++
}

func (s *fakeSurface) On(event string, handler func()) {
	s.handlers[event] = append(s.handlers[event], handler)
}

func (s *fakeSurface) Off(event string) {
	delete(s.handlers, event)
}

func (s *fakeSurface) emit(event string) {
	for _, handler := range s.handlers[event] {
		handler()
	}
}

type fakePublisher struct {
	events []Event
}

func (p *fakePublisher) Publish(event Event) {
	p.events = append(p.events, event)
}

type fakeBus struct {
	calls []string
}

func (b *fakeBus) Subscribe(eventType string, handler func(payload any)) Subscription {
	b.calls = append(b.calls, "subscribe")
	return &fakeSubscription{bus: b}
}

type fakeSubscription struct {
	bus *fakeBus
}

func (s *fakeSubscription) Unsubscribe() {
	s.bus.calls = append(s.bus.calls, "unsubscribe")
}

func newTestPanel(t *testing.T, engine *fakeEngine, publisher Publisher) *Panel {
	t.Helper()
	p, err := New(Deps{Engine: engine, Publisher: publisher})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return p
}

func doneData() *QuerySnapshot {
	return &QuerySnapshot{
		State: LoadingDone,
		Series: []DataFrame{
			{Name: "data", Fields: []Field{}},
		},
	}
}
