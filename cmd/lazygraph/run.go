package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/lazygraph/internal/feeds"
	"github.com/born-ml/lazygraph/internal/session"
)

var (
	runFetches []string
	runWorkers int
)

// runCmd evaluates the example graph once per feeds file.
var runCmd = &cobra.Command{
	Use:   "run <feeds.yaml>...",
	Short: "Evaluate the example graph for each feeds file",
	Example: `  # Two feed sets evaluated concurrently
  lazygraph run a.yaml b.yaml --fetch product --workers 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDemoGraph()
		if err != nil {
			return err
		}

		batch := make([]session.Feeds, len(args))
		for i, path := range args {
			f, err := feeds.Load(path)
			if err != nil {
				return err
			}
			if batch[i], err = feeds.Bind(d.g, f); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		names, fetches, err := d.fetches(runFetches)
		if err != nil {
			return err
		}

		results, err := session.RunBatch(cmd.Context(), batch, fetches, session.BatchOptions{Workers: runWorkers})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for i, out := range results {
			if len(results) > 1 {
				switch output {
				case textFormat:
					fmt.Fprintf(w, "# %s\n", args[i])
				case yamlFormat:
					if i > 0 {
						fmt.Fprintln(w, "---")
					}
				}
			}
			if err := printResults(w, names, out); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&runFetches, "fetch", nil, "Node to fetch (repeatable, default: all computed nodes)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent runs (default: number of CPUs)")
	rootCmd.AddCommand(runCmd)
}
