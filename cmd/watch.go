package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/itsmostafa/chartpanel/internal/metrics"
	"github.com/spf13/cobra"
)

var watchFlags sessionFlags
var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run getOption whenever the options, script or data change",
	Long: `Mount the panel and keep it mounted. The options file, the getOption script file
and the snapshot file are watched; each change is committed to the panel, which
re-runs the script and releases the subscriptions of the previous run.

Send SIGHUP to emit the chart "restore" event, which recreates the surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watchFlags.darkSet = cmd.Flags().Changed("dark")
		out := cmd.OutOrStdout()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := newSession(watchFlags, out)
		if err != nil {
			return err
		}
		defer s.close()

		if watchMetricsAddr != "" {
			srv := &http.Server{
				Addr:              watchMetricsAddr,
				Handler:           metrics.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("metrics server failed", "error", err)
				}
			}()
			defer srv.Shutdown(context.Background())
		}

		if err := s.update(out); err != nil {
			return err
		}

		return watchLoop(ctx, s, out)
	},
}

func init() {
	addSessionFlags(watchCmd, &watchFlags)
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(watchCmd)
}

// watched file kinds
const (
	watchOptions = "options"
	watchScript  = "script"
	watchData    = "data"
)

func watchLoop(ctx context.Context, s *session, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	files, err := watchFiles(watcher, s)
	if err != nil {
		return err
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-hup:
			formatReloadBanner(out, "RESTORE")
			s.restore()
			if err := s.panel.Render(out); err != nil {
				return err
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			kind, ok := files[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			if err := reload(s, kind); err != nil {
				// Keep the panel mounted with its last inputs
				logger.Warn("failed to reload input", "kind", kind, "file", event.Name, "error", err)
				continue
			}

			formatReloadBanner(out, "CHANGED "+kind)
			if err := s.update(out); err != nil {
				return err
			}
			if kind == watchData {
				s.bus.Publish(EventDataRefresh, s.data)
			}

			// The options file may point getOptionFile somewhere else
			if files, err = watchFiles(watcher, s); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}

func reload(s *session, kind string) error {
	switch kind {
	case watchOptions, watchScript:
		return s.reloadOptions()
	case watchData:
		return s.reloadData()
	default:
		return fmt.Errorf("unknown input kind: %s", kind)
	}
}

// watchFiles adds the parent directory of every input file to the watcher,
// so files replaced by editors keep being tracked, and returns the files by kind.
func watchFiles(watcher *fsnotify.Watcher, s *session) (map[string]string, error) {
	inputs := map[string]string{
		cfgFile:                 watchOptions,
		s.options.GetOptionFile: watchScript,
		s.flags.dataFile:        watchData,
	}

	files := make(map[string]string)
	for path, kind := range inputs {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", path, err)
		}
		files[abs] = kind
	}
	return files, nil
}
