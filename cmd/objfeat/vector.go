package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/analysis"
)

var vectorJSON bool

var vectorCmd = &cobra.Command{
	Use:   "vector [file]",
	Short: "Print the encoded classifier input of an OBJ file",
	Long: `Print the ten descriptors, rounded to three decimals, followed by the ten
requirement flags as 1 or 0. Flags not given on the command line are taken
from the profile section of the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runVector,
}

func init() {
	rootCmd.AddCommand(vectorCmd)

	vectorCmd.Flags().BoolVar(&vectorJSON, "json", false, "print descriptors, flags and vector as JSON")
	addProfileFlags(vectorCmd)
}

type vectorOutput struct {
	File        string             `json:"file"`
	Descriptors map[string]float64 `json:"descriptors"`
	Flags       map[string]bool    `json:"flags"`
	Vector      []float32          `json:"vector"`
}

func runVector(cmd *cobra.Command, args []string) error {
	filename := args[0]

	profile, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}

	result, err := analyzeFile(cmd.Context(), filename)
	if err != nil {
		return err
	}
	encoded := result.Features.EncodeWithProfile(profile)

	if !vectorJSON {
		parts := make([]string, len(encoded))
		for i, v := range encoded {
			parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, ","))
		return nil
	}

	out := vectorOutput{
		File:        filename,
		Descriptors: make(map[string]float64, analysis.DescriptorCount),
		Flags:       make(map[string]bool, len(analysis.RequirementFlagNames)),
		Vector:      encoded,
	}
	for _, field := range result.Features.Fields() {
		out.Descriptors[field.Name] = field.Value
	}
	for i, flag := range profile.Flags() {
		out.Flags[analysis.RequirementFlagNames[i]] = flag
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
