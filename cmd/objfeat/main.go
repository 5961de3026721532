package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/internal/config"
	"github.com/philipparndt/objfeat/version"
)

var (
	configPath string
	verbose    bool

	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "objfeat",
	Short: "Shape descriptors and print recommendations for OBJ meshes",
	Long: `objfeat reads polygonal meshes in the OBJ text format and derives a fixed
vector of ten shape descriptors: linearity, planarity, sphericity, anisotropy,
curvature, Euler number, compactness, aspect ratio, convexity and local density.

The vector, extended with a requirement profile, can be handed to an external
classifier that recommends filament, infill, nozzle and layer height.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
}

// setup loads the configuration and installs the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if configPath != "" {
		logger.Debug("loaded config", "path", configPath)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
