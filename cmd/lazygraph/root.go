package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags.
	verbose bool
	output  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lazygraph",
	Short: "Lazy tensor computation graphs",
	Long: `lazygraph builds computation graphs over float32 tensors and evaluates
only the nodes a fetch depends on.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch output {
		case textFormat, jsonFormat, yamlFormat:
		default:
			return fmt.Errorf("unknown output format %q", output)
		}
		slog.SetDefault(newLogger(verbose))
		return nil
	},
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&output, "output", textFormat, "Output format (text, json, yaml)")

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
