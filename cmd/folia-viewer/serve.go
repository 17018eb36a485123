package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/pubsub"
	"github.com/ritzau/folia-viewer/pkg/viewer"
	"github.com/ritzau/folia-viewer/pkg/watcher"
	"github.com/ritzau/folia-viewer/pkg/web"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Graph file writes are batched: wait for 300ms of quiet, but never longer
// than 2s after the first write.
const (
	watchQuietPeriod = 300 * time.Millisecond
	watchMaxWait     = 2 * time.Second
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive graph viewer",
		Long: `Serve the web viewer. Graph searches are sent from the browser; passing
--graph-type or --projects loads an initial graph on startup.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	fs := cmd.Flags()
	fs.String("host", "localhost", "Interface to listen on")
	fs.IntP("port", "p", 8080, "Port for the web server")
	fs.Bool("open", false, "Open the viewer in a browser once the server is up")
	fs.Bool("watch", false, "Reload the graph when --provider-file changes")
	fs.Float64("initial-scale", 0.5, "Initial zoom scale")
	addProviderFlags(fs)
	addRequestFlags(fs)
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := pubsub.NewViewerPublisher()
	defer publisher.Close()

	v := viewer.New(p, publisher, sessionOptions(cfg))
	server := web.NewServer(v, publisher)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx, cfg.Server.Host, cfg.Server.Port)
	})

	if cfg.Provider.Watch {
		g.Go(func() error {
			err := watcher.WatchFile(gctx, cfg.Provider.File, watchQuietPeriod, watchMaxWait, func(ctx context.Context) error {
				_, err := v.Reload(ctx)
				if errors.Is(err, viewer.ErrNothingToReload) || errors.Is(err, viewer.ErrSuperseded) {
					logging.Debug("graph file change ignored", "reason", err)
					return nil
				}
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if cmd.Flags().Changed("graph-type") || cmd.Flags().Changed("projects") {
		req := requestFromFlags(cmd.Flags())
		g.Go(func() error {
			if _, err := v.Load(gctx, req); err != nil {
				// The status topic already carries the failure to the browser.
				logging.Warn("initial graph load failed", "error", err)
			}
			return nil
		})
	}

	url := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if cfg.Server.OpenBrowser {
		go func() {
			// Wait a moment for server to start
			time.Sleep(500 * time.Millisecond)
			logging.Info("opening browser", "url", url)
			openBrowser(url)
		}()
	}

	logging.Info("viewer running", "url", url, "version", version)
	return g.Wait()
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on this platform", "os", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
