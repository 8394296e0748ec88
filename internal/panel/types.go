// Package panel implements the chart panel lifecycle: it owns the drawing
// surface, runs the user-authored getOption script whenever the panel inputs
// change, and applies the resulting chart option to the surface.
package panel

import "fmt"

// LoadingState is the query state reported by the data source.
type LoadingState string

const (
	LoadingNotStarted LoadingState = "NotStarted"
	LoadingLoading    LoadingState = "Loading"
	LoadingStreaming  LoadingState = "Streaming"
	LoadingDone       LoadingState = "Done"
	LoadingError      LoadingState = "Error"
)

// Field is a single column of a data frame.
type Field struct {
	Name   string         `json:"name" yaml:"name"`
	Type   string         `json:"type,omitempty" yaml:"type,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Values []any          `json:"values" yaml:"values"`
}

// DataFrame is one series returned by a query.
type DataFrame struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	RefID  string  `json:"refId,omitempty" yaml:"refId,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// QuerySnapshot is the latest query result handed to the panel by the host.
// The panel compares snapshots by pointer, so hosts must allocate a new
// snapshot for every new result.
type QuerySnapshot struct {
	State  LoadingState `json:"state,omitempty" yaml:"state,omitempty"`
	Series []DataFrame  `json:"series" yaml:"series"`
}

// Ready reports whether the snapshot may be used to run the script.
// A nil snapshot or one without a state tag counts as ready.
func (s *QuerySnapshot) Ready() bool {
	if s == nil {
		return true
	}
	switch s.State {
	case "", LoadingDone, LoadingStreaming:
		return true
	default:
		return false
	}
}

// Renderer selects the rendering back-end of the drawing surface.
type Renderer string

const (
	RendererCanvas Renderer = "canvas"
	RendererSVG    Renderer = "svg"
)

// ValidateRenderer checks if the given renderer string is valid and returns the Renderer
func ValidateRenderer(renderer string) (Renderer, error) {
	switch Renderer(renderer) {
	case RendererCanvas:
		return RendererCanvas, nil
	case RendererSVG:
		return RendererSVG, nil
	default:
		return "", fmt.Errorf("unknown renderer: %q (valid options: canvas, svg)", renderer)
	}
}

// RenderMode is the composite key that decides when the surface has to be
// recreated. Both fields are compared together.
type RenderMode struct {
	Renderer Renderer
	Dark     bool
}

// ThemeDark is the engine theme name used when the host theme is dark.
const ThemeDark = "dark"

// Theme describes the host theme. It is passed to scripts as `theme`.
type Theme struct {
	Name   string `json:"name"`
	IsDark bool   `json:"isDark"`
}

// Option is a chart option tree as understood by the rendering engine.
type Option map[string]any

// ApplyConfig controls how SetOption combines a new option with the current one.
type ApplyConfig struct {
	NotMerge     bool     `json:"notMerge,omitempty"`
	ReplaceMerge []string `json:"replaceMerge,omitempty"`
	LazyUpdate   bool     `json:"lazyUpdate,omitempty"`
	Silent       bool     `json:"silent,omitempty"`
}

// DefaultApplyConfig replaces the whole option on every apply.
func DefaultApplyConfig() ApplyConfig {
	return ApplyConfig{NotMerge: true}
}

// Options are the panel options the host stores for the panel.
type Options struct {
	Renderer  Renderer
	GetOption string
}

// Subscription is a handle returned by EventBus.Subscribe.
type Subscription interface {
	Unsubscribe()
}

// EventBus is the host event bus scripts may subscribe to. Scripts must
// return the resulting unsubscribe through the version 2 result.
type EventBus interface {
	Subscribe(eventType string, handler func(payload any)) Subscription
}

// Props are the inputs supplied by the host on every render pass.
type Props struct {
	Options          Options
	Data             *QuerySnapshot
	Width            int
	Height           int
	Theme            Theme
	ReplaceVariables func(string) string
	EventBus         EventBus
}

// Container is the visual region a surface is bound to.
type Container struct {
	TestID string
	Width  int
	Height int
}

// Discovery tags of the regions produced by the panel.
const (
	TestIDChart = "data-testid echarts chart"
	TestIDError = "data-testid echarts error"
)
