package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsmostafa/chartpanel/internal/panel"
)

var (
	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success alerts
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error alerts
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// changeBannerStyle for the watch reload banner
	changeBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("160")).
				Padding(0, 2)
)

// formatAlert writes one alert published by a script
func formatAlert(w io.Writer, event panel.Event) {
	var indicator string
	switch event.Type {
	case panel.EventAlertSuccess:
		indicator = successStyle.Render("✓ success")
	case panel.EventAlertError:
		indicator = errorStyle.Render("✗ error")
	default:
		indicator = dimStyle.Render(event.Type)
	}
	fmt.Fprintf(w, "%s %v\n", indicator, event.Payload)
}

// formatReloadBanner writes the banner shown before a re-render in watch mode
func formatReloadBanner(w io.Writer, reason string) {
	banner := fmt.Sprintf(" %s ", reason)
	fmt.Fprintln(w)
	fmt.Fprintln(w, changeBannerStyle.Render(banner), dimStyle.Render(time.Now().Format(time.TimeOnly)))
	fmt.Fprintln(w)
}
