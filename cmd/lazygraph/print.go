package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/born-ml/lazygraph/internal/feeds"
	"github.com/born-ml/lazygraph/internal/tensor"
)

// printResults writes named results in the selected output format.
func printResults(w io.Writer, names []string, values []*tensor.Tensor) error {
	entries := make([]feeds.Entry, len(names))
	for i, name := range names {
		entries[i] = feeds.FromTensor(name, values[i])
	}

	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprintln(w, string(data))

	case yamlFormat:
		data, err := feeds.Encode(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Fprint(w, string(data))

	default: // text
		for i, name := range names {
			fmt.Fprintf(w, "%s %v = %v\n", name, values[i].Shape(), values[i])
		}
	}
	return nil
}
