package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"busywork/cmd/busywork/ui"
	"busywork/internal/config"
	"busywork/internal/generator"
	"busywork/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Generate flags
	projectDir   string
	fileCount    int
	fileDelay    time.Duration
	seed         uint64
	extensions   []string
	noPrune      bool
	progressMode bool
)

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&projectDir, "dir", generator.DefaultDir, "Project directory, relative to the workspace")
	f.IntVarP(&fileCount, "count", "n", generator.DefaultCount, "Number of files to write")
	f.DurationVar(&fileDelay, "delay", generator.DefaultDelay, "Pause after each file")
	f.Uint64Var(&seed, "seed", 0, "Seed for the extension picker (0 = random)")
	f.StringSliceVar(&extensions, "ext", nil, "Extension to pick from (repeatable, default: built-in list)")
	f.BoolVar(&noPrune, "no-prune", false, "Keep files left by earlier runs")
	f.BoolVar(&progressMode, "progress", false, "Show a progress bar instead of one line per file")
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("dir") {
		c.Project.Dir = projectDir
	}
	if f.Changed("count") {
		c.Project.Count = fileCount
	}
	if f.Changed("delay") {
		c.Project.Delay = fileDelay.String()
	}
	if f.Changed("seed") {
		c.Project.Seed = seed
	}
	if f.Changed("ext") {
		c.Project.Extensions = append([]string(nil), extensions...)
	}
	if f.Changed("no-prune") {
		c.Project.Prune = !noPrune
	}
	if f.Changed("progress") {
		c.UI.Progress = progressMode
	}
}

// runGenerate writes the fake project
func runGenerate(cmd *cobra.Command, args []string) error {
	loaded, err := currentConfig()
	if err != nil {
		return err
	}
	effective := *loaded
	applyFlagOverrides(cmd, &effective)
	if err := effective.Validate(); err != nil {
		return err
	}

	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	opts := effective.GeneratorOptions(ws)
	log := logFor(logging.CategoryGenerate)

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	styles := ui.StylesFor(effective.UI.DarkMode)
	out := cmd.OutOrStdout()

	var report *generator.Report
	if effective.UI.Progress {
		report, err = ui.RunProgress(ctx, ui.ProgressConfig{
			Options: opts,
			Logger:  log,
			Styles:  styles,
			Output:  out,
		})
	} else {
		var gen *generator.Generator
		gen, err = generator.New(opts,
			generator.WithLogger(log),
			generator.WithObserver(func(e generator.Event) {
				fmt.Fprintln(out, styles.RenderGenerating(e.File.Name))
			}))
		if err != nil {
			return err
		}
		report, err = gen.Run(ctx)
		switch {
		case err == nil:
			fmt.Fprintln(out, styles.RenderDone(report))
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(out, styles.RenderCancelled(report))
		}
	}
	if err != nil {
		log.Error("Generation failed", zap.Error(err))
		return err
	}
	return nil
}
