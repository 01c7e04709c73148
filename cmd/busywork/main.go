package main

import (
	"fmt"
	"os"
	"path/filepath"

	"busywork/internal/config"
	"busywork/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	workspace  string
	configPath string

	// Set up by PersistentPreRunE
	cfg  *config.Config
	logs *logging.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "busywork",
	Short: "Look busy by generating a fake project",
	Long: `busywork fills a directory with placeholder source files, one at a
time, pausing between each so the terminal always has something to show.

Every file gets a random language extension and the same dummy snippet.
Nothing it writes is meant to compile.

Run without a subcommand to generate the project with the configured
defaults (100 files into ./fake_project, 100ms apart).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := currentConfig()
		if err != nil {
			return err
		}

		ws, err := resolveWorkspace()
		if err != nil {
			return err
		}
		l, err := logging.New(ws, loaded.Logging, verbose, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logs = l
		logFor(logging.CategoryBoot).Debug("Workspace resolved",
			zap.String("workspace", ws),
			zap.String("config", resolveConfigPath(ws)))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logs != nil {
			_ = logs.Close()
		}
	},
	RunE: runGenerate,
}

// generateCmd runs the generator explicitly
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "run"},
	Short:   "Write the fake project files",
	Long: `Writes the configured number of files into the project directory.

Files from an earlier run are removed first unless --no-prune is given,
so the directory always ends up with exactly --count generated files.
Anything in the directory that does not look like a generated file is
left alone.

Examples:
  busywork generate
  busywork generate -n 20 --delay 500ms --ext go --ext rs
  busywork generate --progress`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage busywork.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default busywork.yaml into the workspace",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// cleanCmd removes generated files
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files from the project directory",
	Long: `Deletes files matching the generated naming pattern (file<N>.<ext>)
and removes the project directory if nothing else is left in it.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory (default: current)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <workspace>/busywork.yaml)")

	// The root command generates too, so it takes the same flags
	addGenerateFlags(rootCmd)
	addGenerateFlags(generateCmd)

	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cleanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveWorkspace returns the --workspace flag or the current directory.
func resolveWorkspace() (string, error) {
	if workspace != "" {
		return filepath.Abs(workspace)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}
	return cwd, nil
}

func resolveConfigPath(ws string) string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(ws, config.FileName)
}

// currentConfig returns the config loaded by PersistentPreRunE, loading
// it on first use.
func currentConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}
	loaded, err := config.Load(resolveConfigPath(ws))
	if err != nil {
		return nil, err
	}
	cfg = loaded
	return cfg, nil
}

// logFor returns the category logger, or a no-op logger before setup.
func logFor(cat logging.Category) *zap.Logger {
	if logs == nil {
		return zap.NewNop()
	}
	return logs.For(cat)
}
