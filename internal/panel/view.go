package panel

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/charmbracelet/lipgloss"
)

var (
	// labelStyle for muted header labels
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// valueStyle for header values
	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// headerBoxStyle for the panel header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(0, 1)
)

// View is the rendered region of a panel.
type View struct {
	// Container is the chart region
	Container Container

	// ErrorTestID tags the warning region; empty without an error
	ErrorTestID string

	// Error is the error of the last execution attempt
	Error *ExecutionError

	// Option is the option held by the live surface
	Option Option
}

// View returns the currently rendered region.
func (p *Panel) View() View {
	v := View{Container: *p.container, Error: p.errors.Current()}
	if v.Error != nil {
		v.ErrorTestID = TestIDError
	}
	if s := p.surfaces.Current(); s != nil {
		v.Option = s.Option()
	}
	return v
}

// Render writes a header, the error banner if any, and the option JSON.
func (p *Panel) Render(w io.Writer) error {
	theme := "light"
	if p.mode.Dark {
		theme = ThemeDark
	}
	content := fmt.Sprintf("%s %s  %s %s  %s %dx%d\n%s %s",
		labelStyle.Render("Renderer:"), valueStyle.Render(string(p.mode.Renderer)),
		labelStyle.Render("Theme:"), valueStyle.Render(theme),
		labelStyle.Render("Size:"), p.container.Width, p.container.Height,
		labelStyle.Render("State:"), valueStyle.Render(string(p.state)),
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))

	p.errors.Render(w)

	view := p.View()
	if view.Option == nil {
		return nil
	}
	data, err := json.MarshalIndent(Sanitize(view.Option), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal option: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// Sanitize returns a copy of v that can be encoded as JSON. Map entries
// holding functions are dropped and functions inside slices become nil.
// NaN and infinite numbers, which charts treat as gaps, become nil.
func Sanitize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Option:
		return sanitizeMap(t)
	case map[string]any:
		return sanitizeMap(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return nil
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			if isFunc(item) {
				continue
			}
			out[i] = Sanitize(item)
		}
		return out
	default:
		if isFunc(v) {
			return nil
		}
		return v
	}
}

func sanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if isFunc(value) {
			continue
		}
		out[key] = Sanitize(value)
	}
	return out
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
