package panel

import (
	"fmt"
	"log/slog"

	"github.com/itsmostafa/chartpanel/internal/metrics"
)

// SurfaceManager owns the single live surface of a panel.
type SurfaceManager struct {
	engine Engine
	logger *slog.Logger

	surface   Surface
	container *Container
	mode      RenderMode

	// hooked is the ID of the surface carrying the restore handler
	hooked string

	// onRecreate is called after a restore event recreated the surface, or
	// failed to with the live surface already gone
	onRecreate func(Surface, error)
}

// NewSurfaceManager creates a manager creating surfaces with engine.
func NewSurfaceManager(engine Engine, logger *slog.Logger) *SurfaceManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SurfaceManager{engine: engine, logger: logger}
}

// OnRecreate sets the callback run after a restore-driven recreation. It
// receives the init error when no surface could be created.
func (m *SurfaceManager) OnRecreate(fn func(Surface, error)) {
	m.onRecreate = fn
}

// Current returns the live surface or nil.
func (m *SurfaceManager) Current() Surface {
	return m.surface
}

// Ensure replaces the live surface with a new one bound to container. The old
// surface is cleared and disposed before the new one is created.
func (m *SurfaceManager) Ensure(container *Container, mode RenderMode) (Surface, error) {
	m.Dispose()

	var theme string
	if mode.Dark {
		theme = ThemeDark
	}

	surface, err := m.engine.Init(container, theme, InitOptions{Renderer: mode.Renderer})
	if err != nil {
		return nil, fmt.Errorf("failed to init surface: %w", err)
	}
	metrics.SurfacesCreated.WithLabelValues(string(mode.Renderer)).Inc()

	m.surface = surface
	m.container = container
	m.mode = mode
	m.BindRestore()

	m.logger.Debug("surface created", "surface", surface.ID(), "renderer", mode.Renderer, "theme", theme)
	return surface, nil
}

// BindRestore registers the restore handler on the live surface. Calling it
// again for the same surface does nothing.
func (m *SurfaceManager) BindRestore() {
	if m.surface == nil || m.hooked == m.surface.ID() {
		return
	}

	m.surface.Off(EventRestore)
	m.surface.On(EventRestore, m.restore)
	m.hooked = m.surface.ID()
}

func (m *SurfaceManager) restore() {
	if m.surface == nil {
		return
	}

	surface, err := m.Ensure(m.container, m.mode)
	if err != nil {
		m.logger.Error("failed to recreate surface on restore", "error", err)
	}
	if m.onRecreate != nil {
		m.onRecreate(surface, err)
	}
}

// Resize forwards the new size to the live surface.
func (m *SurfaceManager) Resize(width, height int) {
	if m.surface == nil {
		return
	}
	m.surface.Resize(width, height)
}

// Dispose clears and disposes the live surface, if any.
func (m *SurfaceManager) Dispose() {
	if m.surface == nil {
		return
	}

	old := m.surface
	m.surface = nil
	m.hooked = ""

	old.Clear()
	old.Dispose()
	metrics.SurfacesDisposed.Inc()
	m.logger.Debug("surface disposed", "surface", old.ID())
}
