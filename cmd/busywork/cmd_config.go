package main

import (
	"fmt"
	"os"

	"busywork/internal/config"
	"busywork/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var forceInit bool

// runConfigInit writes the default config file
func runConfigInit(cmd *cobra.Command, args []string) error {
	ws, err := resolveWorkspace()
	if err != nil {
		return err
	}
	path := resolveConfigPath(ws)

	if _, err := os.Stat(path); err == nil && !forceInit {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite)\n", path)
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	logFor(logging.CategoryConfig).Info("Wrote default config", zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// runConfigShow prints the effective config as YAML
func runConfigShow(cmd *cobra.Command, args []string) error {
	loaded, err := currentConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(loaded)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
