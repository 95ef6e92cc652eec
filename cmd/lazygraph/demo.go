package main

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/lazygraph/internal/feeds"
	"github.com/born-ml/lazygraph/internal/session"
)

var (
	demoFeeds   string
	demoFetches []string
)

// demoCmd evaluates the example graph.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Evaluate the example graph",
	Long: `Build the example graph

  sum        = y + x
  product    = sum * x
  difference = d - c
  quotient   = c / product

feed it and print the fetched nodes.`,
	Example: `  # Built-in values
  lazygraph demo

  # Values from a feeds file, only two fetches
  lazygraph demo --feeds feeds.yaml --fetch product --fetch quotient`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDemoGraph()
		if err != nil {
			return err
		}

		var fed session.Feeds
		if demoFeeds != "" {
			f, err := feeds.Load(demoFeeds)
			if err != nil {
				return err
			}
			if fed, err = feeds.Bind(d.g, f); err != nil {
				return err
			}
		} else if fed, err = d.defaultFeeds(); err != nil {
			return err
		}

		names, fetches, err := d.fetches(demoFetches)
		if err != nil {
			return err
		}

		out, err := session.New().Run(fed, fetches)
		if err != nil {
			return err
		}
		return printResults(cmd.OutOrStdout(), names, out)
	},
}

func init() {
	demoCmd.Flags().StringVar(&demoFeeds, "feeds", "", "YAML feeds file (default: built-in values)")
	demoCmd.Flags().StringSliceVar(&demoFetches, "fetch", nil, "Node to fetch (repeatable, default: all computed nodes)")
	rootCmd.AddCommand(demoCmd)
}
