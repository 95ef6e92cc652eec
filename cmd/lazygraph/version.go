package main

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		versionInfo := map[string]string{
			"version":   version,
			"commit":    commit,
			"buildDate": buildDate,
		}

		w := cmd.OutOrStdout()
		switch output {
		case jsonFormat:
			data, err := json.MarshalIndent(versionInfo, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal version info: %w", err)
			}
			fmt.Fprintln(w, string(data))

		case yamlFormat:
			data, err := yaml.Marshal(versionInfo)
			if err != nil {
				return fmt.Errorf("failed to marshal version info: %w", err)
			}
			fmt.Fprint(w, string(data))

		default: // text
			fmt.Fprintf(w, "lazygraph version %s\n", version)
			if version != "dev" {
				fmt.Fprintf(w, "  commit: %s\n", commit)
				fmt.Fprintf(w, "  built:  %s\n", buildDate)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
