package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/internal/history"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analyses",
	Long:  "List the entries recorded by info --history and recommend --history, newest last.",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the last n entries (0 shows all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print entries as JSON")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path, err := cfg.HistoryPath()
	if err != nil {
		return err
	}

	entries, err := history.NewStore(path).Load()
	if err != nil {
		return err
	}
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history recorded.")
		return nil
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %s  (%s)\n", entry.Timestamp, entry.FileName, entry.ID)
		keys := make([]string, 0, len(entry.Results))
		for k := range entry.Results {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s: %s\n", k, entry.Results[k])
		}
	}
	return nil
}
