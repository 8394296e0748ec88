package host

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// LoadSnapshot reads a query snapshot from a JSON or YAML file. Every call
// returns a new snapshot, which the panel treats as a new query result.
func LoadSnapshot(path string) (*panel.QuerySnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes a JSON or YAML snapshot document.
func ParseSnapshot(data []byte) (*panel.QuerySnapshot, error) {
	var snapshot panel.QuerySnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	switch snapshot.State {
	case "", panel.LoadingNotStarted, panel.LoadingLoading, panel.LoadingStreaming, panel.LoadingDone, panel.LoadingError:
	default:
		return nil, fmt.Errorf("unknown loading state %q", snapshot.State)
	}

	if snapshot.Series == nil {
		snapshot.Series = []panel.DataFrame{}
	}
	return &snapshot, nil
}
