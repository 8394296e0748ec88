package panel

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// ErrDisposed is returned when a closed panel is updated.
	ErrDisposed = errors.New("panel is disposed")

	// ErrNoContainer is returned by engines asked to bind a surface to nothing.
	ErrNoContainer = errors.New("container is required")
)

// ErrorKind classifies execution failures.
type ErrorKind string

const (
	// ErrorKindConstruction means the source did not compile.
	ErrorKindConstruction ErrorKind = "construction"
	// ErrorKindRuntime means the script threw while running.
	ErrorKindRuntime ErrorKind = "runtime"
	// ErrorKindApply means the surface rejected the resulting option.
	ErrorKindApply ErrorKind = "apply"
)

// ExecutionError is a failure of one execution attempt.
type ExecutionError struct {
	Kind    ErrorKind
	Message string
	Stack   string
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ErrorTitle is the title of the warning banner.
const ErrorTitle = "ECharts Execution Error"

var (
	warningTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	warningBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)

	stackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// ErrorSurface holds the error of the last execution attempt.
type ErrorSurface struct {
	current *ExecutionError
}

// Clear forgets the current error.
func (s *ErrorSurface) Clear() {
	s.current = nil
}

// Set records err as the current error.
func (s *ErrorSurface) Set(err *ExecutionError) {
	s.current = err
}

// Current returns the current error or nil.
func (s *ErrorSurface) Current() *ExecutionError {
	return s.current
}

// Render writes the warning banner and the stack trace. Nothing is written
// when there is no error.
func (s *ErrorSurface) Render(w io.Writer) {
	err := s.current
	if err == nil {
		return
	}

	if err.Message != "" {
		content := warningTitleStyle.Render(ErrorTitle) + "\n" + err.Message
		fmt.Fprintln(w, warningBoxStyle.Render(content))
	}
	if err.Stack != "" {
		fmt.Fprintln(w, stackStyle.Render(err.Stack))
	}
}
