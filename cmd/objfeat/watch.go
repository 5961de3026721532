package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/philipparndt/objfeat/pkg/openscad"
	"github.com/philipparndt/objfeat/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Recalculate the descriptors whenever a mesh file is written",
	Long: `Print the descriptors of a file, then print them again each time the file
changes. For OpenSCAD sources every file pulled in through use or include
is watched as well. The debounce interval is taken from watch.debounce in the config.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	out := cmd.OutOrStdout()

	var mu sync.Mutex
	report := func(changed string) {
		mu.Lock()
		defer mu.Unlock()

		logger.Debug("analyzing", "file", filename, "trigger", changed)
		result, err := analyzeFile(cmd.Context(), filename)
		if err != nil {
			logger.Error("analysis failed", "file", filename, "error", err)
			return
		}
		fmt.Fprintf(out, "== %s ==\n%s\n\n", filename, result.Describe())
	}

	files := []string{filename}
	if strings.EqualFold(filepath.Ext(filename), ".scad") {
		deps, err := openscad.NewRenderer(filepath.Dir(filename)).Dependencies(filepath.Base(filename))
		if err != nil {
			return err
		}
		files = deps
	}

	fw, err := watcher.NewFileWatcher(cfg.Debounce(), logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch(files, report); err != nil {
		return err
	}

	report(filename)
	logger.Info("watching for changes", "files", len(files), "debounce", cfg.Debounce())

	fw.Run(cmd.Context())
	return nil
}
