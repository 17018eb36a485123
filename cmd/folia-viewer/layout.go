package main

import (
	"encoding/json"
	"os"

	"github.com/ritzau/folia-viewer/pkg/output"
	"github.com/ritzau/folia-viewer/pkg/viewer"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Fetch one graph, lay it out and print the result",
		Example: `  folia-viewer layout --provider-file graph.json --seed 42
  folia-viewer layout --provider-url http://localhost:8000 --projects p1 --graph-type mentions --json`,
		Args: cobra.NoArgs,
		RunE: runLayout,
	}

	fs := cmd.Flags()
	fs.Bool("json", false, "Print the laid out frame as JSON")
	addProviderFlags(fs)
	addRequestFlags(fs)
	return cmd
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newProvider(cfg)
	if err != nil {
		return err
	}

	v := viewer.New(p, nil, sessionOptions(cfg))
	result, err := v.Load(cmd.Context(), requestFromFlags(cmd.Flags()))
	if err != nil {
		if result != nil {
			output.PrintStatus(os.Stderr, result.Status)
		}
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if result.Frame == nil {
		if asJSON {
			return writeJSON(result)
		}
		output.PrintStatus(os.Stdout, result.Status)
		return nil
	}

	if asJSON {
		return writeJSON(result.Frame)
	}
	output.PrintLayoutReport(os.Stdout, result.Frame, result.Layout)
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
