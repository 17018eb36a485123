package main

import (
	"errors"
	"fmt"

	"github.com/ritzau/folia-viewer/pkg/config"
	"github.com/ritzau/folia-viewer/pkg/logging"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/ritzau/folia-viewer/pkg/session"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "folia-viewer",
		Short: "Lay out and browse catalog entity graphs",
		Long: `folia-viewer fetches entity graphs from a catalog graph provider, lays
them out with a force-directed solver and serves an interactive viewer.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default ./"+config.DefaultConfigFile+" if present)")
	pf.CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	pf.String("verbosity", "", "Log level: trace, debug, info, warn, error")
	pf.Bool("log-json", false, "Log as JSON instead of the compact format")

	root.AddCommand(newServeCmd(), newLayoutCmd())
	return root
}

// loadConfig layers defaults, files, environment and the command's flags,
// then applies the logging settings.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt)
	if err != nil {
		return nil, err
	}
	logging.SetJSONOutput(cfg.LogJSON)
	logging.SetLevel(level)

	return cfg, nil
}

func newProvider(cfg *config.Config) (provider.Provider, error) {
	switch {
	case cfg.Provider.File != "":
		logging.Info("using file provider", "path", cfg.Provider.File)
		return provider.NewFileProvider(cfg.Provider.File), nil
	case cfg.Provider.URL != "":
		logging.Info("using HTTP provider", "url", cfg.Provider.URL)
		return provider.NewHTTPProvider(cfg.Provider.URL, nil), nil
	default:
		return nil, errors.New("no graph provider configured: set --provider-url or --provider-file")
	}
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Layout:   cfg.Layout,
		Viewport: cfg.View,
	}
}
