package panel

// EventRestore is emitted by a surface when the user resets the chart from
// its toolbox. The panel answers by recreating the surface.
const EventRestore = "restore"

// InitOptions are passed to Engine.Init.
type InitOptions struct {
	Renderer Renderer
}

// Engine is the external rendering engine that creates drawing surfaces.
type Engine interface {
	// Init creates a new surface bound to container. theme is ThemeDark or empty.
	Init(container *Container, theme string, opts InitOptions) (Surface, error)
}

// Surface is one live renderer instance bound to a container.
type Surface interface {
	// ID returns a value that is unique for each created surface.
	ID() string

	// SetOption applies option according to cfg.
	SetOption(option Option, cfg ApplyConfig) error

	// Option returns the option currently held by the surface.
	Option() Option

	// Clear removes the current option.
	Clear()

	// Resize adapts the surface to a new container size.
	Resize(width, height int)

	// Dispose releases the surface. A disposed surface must not be used again.
	Dispose()

	// On registers handler for event.
	On(event string, handler func())

	// Off removes every handler registered for event.
	Off(event string)
}
