package main

import (
	"fmt"
	"os"

	"busywork/internal/generator"
	"busywork/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runClean removes generated files and, if it ends up empty, the
// project directory
func runClean(cmd *cobra.Command, args []string) error {
	loaded, err := currentConfig()
	if err != nil {
		return err
	}
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	log := logFor(logging.CategoryGenerate)

	gen, err := generator.New(loaded.GeneratorOptions(ws), generator.WithLogger(log))
	if err != nil {
		return err
	}
	dir := gen.Options().Dir

	removed, err := gen.Prune()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to clean in %s\n", dir)
		return nil
	case err != nil:
		return fmt.Errorf("failed to read project directory: %w", err)
	case len(entries) == 0:
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("failed to remove project directory: %w", err)
		}
		log.Debug("Removed empty project directory", zap.String("dir", dir))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d generated files from %s\n", removed, dir)
	return nil
}
