// Package render provides an in-memory rendering engine. It keeps the option
// tree each surface would draw, applying the same replace and merge rules as
// ECharts setOption, and exports it as JSON for a front end to draw.
package render

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// Version is reported to scripts as echarts.version.
const Version = "5.6.0"

// Engine creates in-memory surfaces. Scripts receive it as echarts.
type Engine struct {
	// Version is the engine version, a string property as in ECharts
	Version string `json:"version"`

	mu       sync.Mutex
	logger   *slog.Logger
	surfaces map[string]*Surface
	themes   map[string]panel.Option
}

// NewEngine creates an engine with no live surfaces.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Version:  Version,
		logger:   logger,
		surfaces: make(map[string]*Surface),
		themes:   map[string]panel.Option{panel.ThemeDark: {"backgroundColor": "#100C2A"}},
	}
}

// Init creates a surface bound to container.
func (e *Engine) Init(container *panel.Container, theme string, opts panel.InitOptions) (panel.Surface, error) {
	if container == nil {
		return nil, panel.ErrNoContainer
	}
	renderer, err := panel.ValidateRenderer(string(opts.Renderer))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if theme != "" {
		if _, ok := e.themes[theme]; !ok {
			return nil, fmt.Errorf("theme %q is not registered", theme)
		}
	}

	s := &Surface{
		id:       uuid.New().String(),
		engine:   e,
		theme:    theme,
		renderer: renderer,
		width:    container.Width,
		height:   container.Height,
		option:   panel.Option{},
		handlers: make(map[string][]func()),
	}
	e.surfaces[s.id] = s

	e.logger.Debug("surface initialized", "surface", s.id, "renderer", renderer, "theme", theme)
	return s, nil
}

// RegisterTheme makes theme available to Init.
func (e *Engine) RegisterTheme(name string, theme map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.themes[name] = panel.Option(theme)
}

// Live returns the number of surfaces that are not disposed.
func (e *Engine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.surfaces)
}

func (e *Engine) release(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.surfaces, id)
}
