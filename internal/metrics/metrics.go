// Package metrics exposes prometheus counters for the chart panel lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Execution results used as the "result" label of Executions.
const (
	ResultApplied = "applied"
	ResultErrored = "errored"
	ResultSkipped = "skipped"
)

var (
	// Executions counts getOption execution attempts by outcome
	Executions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chartpanel_executions_total",
			Help: "Total number of getOption execution attempts",
		},
		[]string{"result"},
	)

	// ExecutionDuration tracks how long getOption scripts run
	ExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chartpanel_execution_duration_seconds",
			Help:    "getOption execution duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// SurfacesCreated counts drawing surfaces created
	SurfacesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chartpanel_surfaces_created_total",
			Help: "Total number of drawing surfaces created",
		},
		[]string{"renderer"},
	)

	// SurfacesDisposed counts drawing surfaces disposed
	SurfacesDisposed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chartpanel_surfaces_disposed_total",
			Help: "Total number of drawing surfaces disposed",
		},
	)

	// Releases counts release callbacks fired
	Releases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chartpanel_releases_total",
			Help: "Total number of script release callbacks invoked",
		},
	)

	// Notifications counts alerts published by scripts
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chartpanel_notifications_total",
			Help: "Total number of alerts published by scripts",
		},
		[]string{"type"},
	)
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
