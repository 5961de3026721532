package main

import (
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/analysis"
	"github.com/philipparndt/objfeat/pkg/inference"
)

var (
	recommendClassifier string
	recommendHistory    bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [file]",
	Short: "Recommend print settings for an OBJ file",
	Long: `Encode the descriptors and requirement profile of a mesh, pass them to an
external classifier and print the recommended filament, infill percentage,
infill pattern, nozzle and layer height.

The classifier program and its arguments come from the classifier section
of the config; --classifier replaces the program and drops the configured
arguments. The classifier reads {"input": [...]} as JSON on stdin and writes
{"outputs": [[...], ...]} with one probability list per setting on stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringVar(&recommendClassifier, "classifier", "", "classifier program (overrides classifier.command)")
	recommendCmd.Flags().BoolVar(&recommendHistory, "history", false, "record the result in the analysis history")
	addProfileFlags(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	filename := args[0]

	profile, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}

	command, classifierArgs := cfg.Classifier.Command, cfg.Classifier.Args
	if cmd.Flags().Changed("classifier") {
		command, classifierArgs = recommendClassifier, nil
	}
	if command == "" {
		return fmt.Errorf("no classifier configured: use --classifier or classifier.command")
	}

	classifier, err := inference.NewExecClassifier(command, classifierArgs, cfg.Classifier.WorkDir, cfg.ClassifierTimeout())
	if err != nil {
		return err
	}

	result, err := analyzeFile(cmd.Context(), filename)
	if err != nil {
		return err
	}

	logger.Debug("running classifier", "command", command, "args", classifierArgs)
	prediction, err := inference.Recommend(cmd.Context(), classifier, result.Features, profile)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prediction.Summary())

	if recommendHistory {
		payload := analysis.FeaturePayload(result)
		maps.Copy(payload, prediction.Payload())
		return recordHistory(filename, payload)
	}
	return nil
}
