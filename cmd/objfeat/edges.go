package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/analysis"
)

var (
	edgesCount     int
	edgesLongest   bool
	edgesShortest  bool
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List the unique edges of a mesh",
	Long:  "Show edge length statistics and list the longest, shortest, or length-filtered unique edges.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesLongest, "longest", "l", false, "show longest edges")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "show shortest edges")
	edgesCmd.Flags().Float64Var(&edgesMinLength, "min", 0.0, "minimum edge length filter")
	edgesCmd.Flags().Float64Var(&edgesMaxLength, "max", 0.0, "maximum edge length filter")

	edgesCmd.MarkFlagsMutuallyExclusive("longest", "shortest", "max")
}

func runEdges(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := loadMesh(cmd.Context(), filename)
	if err != nil {
		return err
	}

	all := analysis.Edges(m)
	summary := analysis.SummarizeEdges(all)

	var (
		edges []analysis.Edge
		title string
	)
	switch {
	case edgesLongest:
		edges = analysis.LongestEdges(all, edgesCount)
		title = fmt.Sprintf("Top %d Longest Edges", len(edges))
	case edgesShortest:
		edges = analysis.ShortestEdges(all, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	case edgesMaxLength > 0:
		edges = analysis.EdgesByLength(all, edgesMinLength, edgesMaxLength)
		title = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", edgesMinLength, edgesMaxLength, len(edges))
		edges = edges[:min(edgesCount, len(edges))]
	default:
		edges = all[:min(edgesCount, len(all))]
		title = fmt.Sprintf("All Edges (showing first %d of %d)", len(edges), len(all))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Total edges in model: %d\n", summary.Count)
	fmt.Fprintf(out, "Min edge length: %.6f units\n", summary.Min)
	fmt.Fprintf(out, "Max edge length: %.6f units\n", summary.Max)
	fmt.Fprintf(out, "Avg edge length: %.6f units\n\n", summary.Avg)

	if len(edges) == 0 {
		fmt.Fprintln(out, "No edges found matching the criteria.")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-35s %-35s %-15s\n", "Index", "Start", "End", "Length")
	fmt.Fprintln(out, strings.Repeat("-", 91))
	for i, e := range edges {
		fmt.Fprintf(out, "%-6d %-35s %-35s %-15.6f\n",
			i+1,
			analysis.FormatVector(e.Start),
			analysis.FormatVector(e.End),
			e.Length)
	}
	return nil
}
