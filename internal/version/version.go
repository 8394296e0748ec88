// Package version holds build information set through -ldflags.
package version

import (
	"fmt"

	"github.com/itsmostafa/chartpanel/internal/render"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String describes the build and the bundled rendering engine.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, engine: echarts %s)", Version, Commit, BuildDate, render.Version)
}
