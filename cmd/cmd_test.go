package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "text", level: "info", format: "text"},
		{name: "json upper level", level: "DEBUG", format: "json"},
		{name: "bad level", level: "loud", format: "text", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := newLogger(&buf, tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			l.Info("hello", "panel", "p1")
			if !strings.Contains(buf.String(), "hello") {
				t.Errorf("expected log output, got: %s", buf.String())
			}
		})
	}
}

func TestFormatAlert(t *testing.T) {
	var buf bytes.Buffer
	formatAlert(&buf, panel.Event{Type: panel.EventAlertSuccess, Payload: []any{"saved"}})
	formatAlert(&buf, panel.Event{Type: panel.EventAlertError, Payload: "failed"})

	out := buf.String()
	for _, want := range []string{"success", "[saved]", "error", "failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "panel.yaml")
	if err := os.WriteFile(cfg, []byte(`getOption: |
  notifySuccess('rendered ' + data.series.length);
  return { title: { text: replaceVariables('cpu on $host') } };
`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	data := filepath.Join(dir, "data.yaml")
	if err := os.WriteFile(data, []byte("state: Done\nseries:\n  - name: cpu\n    fields: []\n"), 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--config", cfg, "render", "--data", data, "--var", "host=web-1", "--fail-on-error"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgFile = ""
		renderFlags = sessionFlags{}
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render failed: %v\n%s", err, errOut.String())
	}

	got := out.String()
	for _, want := range []string{"rendered 1", `"text": "cpu on web-1"`, `"backgroundColor": "transparent"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got: %s", want, got)
		}
	}
}
