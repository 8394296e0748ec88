// Package config loads panel options from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/itsmostafa/chartpanel/internal/panel"
)

// EnvPrefix is the prefix of environment variables overriding options.
const EnvPrefix = "CHARTPANEL"

// Editor formatting modes.
const (
	FormatAuto = "auto"
	FormatNone = "none"
)

// Editor height bounds in pixels.
const (
	MinEditorHeight = 100
	MaxEditorHeight = 2000
)

// DefaultGetOption is the script used when none is configured.
const DefaultGetOption = `const series = data.series.map((s) => {
  const sData = s.fields.find((f) => f.type === 'number').values;
  const sTime = s.fields.find((f) => f.type === 'time').values;

  return {
    name: s.name,
    type: 'line',
    showSymbol: false,
    areaStyle: {
      opacity: 0.1,
    },
    lineStyle: {
      width: 1,
    },
    data: sData.map((d, i) => [sTime[i], d.toFixed(2)]),
  };
});

return {
  backgroundColor: 'transparent',
  tooltip: {
    trigger: 'axis',
  },
  legend: {
    left: '0',
    bottom: '0',
    data: data.series.map((s) => s.name),
    textStyle: {
      color: 'rgba(128, 128, 128, .9)',
    },
  },
  xAxis: {
    type: 'time',
  },
  yAxis: {
    type: 'value',
    min: 'dataMin',
  },
  grid: {
    left: '2%',
    right: '2%',
    top: '2%',
    bottom: 24,
    containLabel: true,
  },
  series,
};`

// Editor holds the code editor options.
type Editor struct {
	Height int    `mapstructure:"height"`
	Format string `mapstructure:"format"`
}

// PanelOptions are the stored options of a chart panel.
type PanelOptions struct {
	// Renderer is canvas or svg
	Renderer string `mapstructure:"renderer"`

	// GetOption is the script source
	GetOption string `mapstructure:"getOption"`

	// GetOptionFile loads the script from a file, relative to the config file
	GetOptionFile string `mapstructure:"getOptionFile"`

	// Dark selects the dark host theme
	Dark bool `mapstructure:"dark"`

	// Timeout interrupts getOption runs that never return
	Timeout time.Duration `mapstructure:"timeout"`

	Editor Editor `mapstructure:"editor"`
}

// Defaults returns the options of a freshly added panel.
func Defaults() PanelOptions {
	return PanelOptions{
		Renderer:  string(panel.RendererCanvas),
		GetOption: DefaultGetOption,
		Timeout:   panel.DefaultTimeout,
		Editor: Editor{
			Height: 600,
			Format: FormatAuto,
		},
	}
}

// Load reads options from path, applying defaults and CHARTPANEL_*
// environment overrides. An empty path loads defaults and environment only.
func Load(path string) (PanelOptions, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("renderer", defaults.Renderer)
	v.SetDefault("getOption", defaults.GetOption)
	v.SetDefault("getOptionFile", "")
	v.SetDefault("dark", defaults.Dark)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("editor.height", defaults.Editor.Height)
	v.SetDefault("editor.format", defaults.Editor.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return PanelOptions{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var opts PanelOptions
	if err := v.Unmarshal(&opts); err != nil {
		return PanelOptions{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if opts.GetOptionFile != "" {
		scriptPath := opts.GetOptionFile
		if !filepath.IsAbs(scriptPath) && path != "" {
			scriptPath = filepath.Join(filepath.Dir(path), scriptPath)
		}
		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return PanelOptions{}, fmt.Errorf("failed to read getOption file: %w", err)
		}
		opts.GetOptionFile = scriptPath
		opts.GetOption = string(source)
	}

	if err := opts.Validate(); err != nil {
		return PanelOptions{}, err
	}
	return opts, nil
}

// Validate checks the option values.
func (o PanelOptions) Validate() error {
	if _, err := panel.ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.Editor.Height < MinEditorHeight || o.Editor.Height > MaxEditorHeight {
		return fmt.Errorf("editor height %d out of range [%d, %d]", o.Editor.Height, MinEditorHeight, MaxEditorHeight)
	}
	switch o.Editor.Format {
	case FormatAuto, FormatNone:
	default:
		return fmt.Errorf("unknown editor format: %q (valid options: auto, none)", o.Editor.Format)
	}
	return nil
}

// Panel converts the stored options to the options consumed by the panel.
func (o PanelOptions) Panel() panel.Options {
	return panel.Options{
		Renderer:  panel.Renderer(o.Renderer),
		GetOption: o.GetOption,
	}
}

// Theme returns the host theme selected by Dark.
func (o PanelOptions) Theme() panel.Theme {
	if o.Dark {
		return panel.Theme{Name: "Dark", IsDark: true}
	}
	return panel.Theme{Name: "Light"}
}
