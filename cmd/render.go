package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderFlags sessionFlags
var renderFailOnError bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run getOption once and print the chart option",
	Long:  `Mount the panel, run the getOption script against the query snapshot and print the resulting chart option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderFlags.darkSet = cmd.Flags().Changed("dark")

		s, err := newSession(renderFlags, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer s.close()

		if err := s.update(cmd.OutOrStdout()); err != nil {
			return err
		}

		if execErr := s.panel.Err(); execErr != nil && renderFailOnError {
			return fmt.Errorf("getOption failed: %w", execErr)
		}
		return nil
	},
}

func init() {
	addSessionFlags(renderCmd, &renderFlags)
	renderCmd.Flags().BoolVar(&renderFailOnError, "fail-on-error", false, "Exit with an error when getOption fails")

	rootCmd.AddCommand(renderCmd)
}

// addSessionFlags registers the host input flags shared by render and watch
func addSessionFlags(cmd *cobra.Command, flags *sessionFlags) {
	cmd.Flags().StringVarP(&flags.dataFile, "data", "d", "", "Query snapshot file (JSON or YAML)")
	cmd.Flags().IntVar(&flags.width, "width", 800, "Panel width in pixels")
	cmd.Flags().IntVar(&flags.height, "height", 400, "Panel height in pixels")
	cmd.Flags().StringArrayVar(&flags.vars, "var", nil, "Dashboard variable as name=value (repeatable)")
	cmd.Flags().StringVar(&flags.location, "location", "", "Dashboard URL passed to scripts as locationService")
	cmd.Flags().BoolVar(&flags.dark, "dark", false, "Use the dark theme")
}
