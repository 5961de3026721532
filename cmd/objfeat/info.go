package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/analysis"
)

var infoHistory bool

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display the shape descriptors of an OBJ file",
	Long:  "Show vertex and face counts, surface area, volume, bounding box and the ten shape descriptors.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoHistory, "history", false, "record the result in the analysis history")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	result, err := analyzeFile(cmd.Context(), filename)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "OBJ File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n\n", filename)
	fmt.Fprintln(out, result.Describe())

	fmt.Fprintln(out, "\nBounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())

	if infoHistory {
		return recordHistory(filename, analysis.FeaturePayload(result))
	}
	return nil
}
