package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestExecutionsByResult(t *testing.T) {
	before := testutil.ToFloat64(Executions.WithLabelValues(ResultSkipped))

	Executions.WithLabelValues(ResultSkipped).Inc()

	if got := testutil.ToFloat64(Executions.WithLabelValues(ResultSkipped)); got != before+1 {
		t.Errorf("skipped = %v, want %v", got, before+1)
	}
}

func TestHandler(t *testing.T) {
	SurfacesCreated.WithLabelValues("canvas").Inc()
	Releases.Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	for _, want := range []string{
		`chartpanel_surfaces_created_total{renderer="canvas"}`,
		"chartpanel_releases_total",
		"chartpanel_execution_duration_seconds",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}
