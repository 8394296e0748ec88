package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/itsmostafa/chartpanel/internal/version"
	"github.com/spf13/cobra"
)

var cfgFile string
var logLevel string
var logFormat string

// logger is configured by the root command before any subcommand runs
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "chartpanel",
	Short: "Programmable ECharts panel runner",
	Long: `chartpanel runs the getOption script of an ECharts dashboard panel against a
query snapshot and prints the chart option the panel would draw.

The script body receives (data, theme, echartsInstance, echarts, replaceVariables,
eventBus, locationService, notifySuccess, notifyError) and returns either a chart
option or {version: 2, option, config, unsubscribe}.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("chartpanel %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "panel options file (YAML)")

	// Log level flag with env var fallback
	defaultLevel := "warn"
	if envLevel := os.Getenv("CHARTPANEL_LOG_LEVEL"); envLevel != "" {
		defaultLevel = envLevel
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
