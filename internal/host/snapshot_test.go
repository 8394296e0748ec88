package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

func TestParseSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantState  panel.LoadingState
		wantSeries int
		wantErr    bool
	}{
		{
			name: "yaml",
			input: `state: Done
series:
  - name: cpu
    fields:
      - name: time
        type: time
        values: [1, 2]
      - name: value
        type: number
        values: [0.5, 0.7]
`,
			wantState:  panel.LoadingDone,
			wantSeries: 1,
		},
		{
			name:       "json",
			input:      `{"state": "Streaming", "series": [{"name": "a", "fields": []}, {"name": "b", "fields": []}]}`,
			wantState:  panel.LoadingStreaming,
			wantSeries: 2,
		},
		{
			name:       "no state and no series",
			input:      `{}`,
			wantState:  "",
			wantSeries: 0,
		},
		{
			name:    "unknown state",
			input:   `state: Pending`,
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   `series: [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := ParseSnapshot([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSnapshot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if snapshot.State != tt.wantState {
				t.Errorf("State = %q, want %q", snapshot.State, tt.wantState)
			}
			if snapshot.Series == nil {
				t.Error("Series must not be nil")
			}
			if len(snapshot.Series) != tt.wantSeries {
				t.Errorf("len(Series) = %d, want %d", len(snapshot.Series), tt.wantSeries)
			}
		})
	}
}

func TestParseSnapshot_Fields(t *testing.T) {
	snapshot, err := ParseSnapshot([]byte(`series:
  - name: cpu
    refId: A
    fields:
      - name: value
        type: number
        values: [1.5]
`))
	if err != nil {
		t.Fatalf("ParseSnapshot() unexpected error: %v", err)
	}

	frame := snapshot.Series[0]
	if frame.Name != "cpu" || frame.RefID != "A" {
		t.Errorf("frame = %+v", frame)
	}
	field := frame.Fields[0]
	if field.Name != "value" || field.Type != "number" || len(field.Values) != 1 || field.Values[0] != 1.5 {
		t.Errorf("field = %+v", field)
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	if err := os.WriteFile(path, []byte("state: Done\n"), 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}

	first, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() unexpected error: %v", err)
	}
	second, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot() unexpected error: %v", err)
	}
	if first == second {
		t.Error("every load must return a new snapshot")
	}

	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSnapshot() expected error for missing file")
	}
}
