package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"busywork/internal/generator"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the workspace root.
const FileName = "busywork.yaml"

// Config holds all busywork configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// What gets generated and where
	Project ProjectConfig `yaml:"project"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal output
	UI UIConfig `yaml:"ui"`
}

// ProjectConfig configures the fake project.
type ProjectConfig struct {
	Dir        string   `yaml:"dir"`        // relative to the workspace unless absolute
	Count      int      `yaml:"count"`      // number of files per run
	Delay      string   `yaml:"delay"`      // pause after each file
	Extensions []string `yaml:"extensions"` // picked at random per file
	Seed       uint64   `yaml:"seed"`       // 0 = random
	Prune      bool     `yaml:"prune"`      // remove files from earlier runs first
}

// UIConfig configures terminal output.
type UIConfig struct {
	Progress bool `yaml:"progress"` // progress bar instead of one line per file
	DarkMode bool `yaml:"dark_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "busywork",
		Version: "1.0.0",

		Project: ProjectConfig{
			Dir:        generator.DefaultDir,
			Count:      generator.DefaultCount,
			Delay:      generator.DefaultDelay.String(),
			Extensions: generator.Extensions(),
			Prune:      true,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "busywork.log",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Values that do not parse are ignored.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("BUSYWORK_DIR"); dir != "" {
		c.Project.Dir = dir
	}
	if v := os.Getenv("BUSYWORK_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Project.Count = n
		}
	}
	if v := os.Getenv("BUSYWORK_DELAY"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Project.Delay = v
		}
	}
	if v := os.Getenv("BUSYWORK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Project.Seed = n
		}
	}

	if level := os.Getenv("BUSYWORK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if v := os.Getenv("BUSYWORK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if os.Getenv("BUSYWORK_DARK_MODE") == "1" {
		c.UI.DarkMode = true
	}
}

// GetDelay returns the pause between files as a duration.
func (c *Config) GetDelay() time.Duration {
	d, err := time.ParseDuration(c.Project.Delay)
	if err != nil {
		return generator.DefaultDelay
	}
	return d
}

// ProjectDir resolves the project directory against the workspace.
func (c *Config) ProjectDir(workspace string) string {
	if filepath.IsAbs(c.Project.Dir) || workspace == "" {
		return c.Project.Dir
	}
	return filepath.Join(workspace, c.Project.Dir)
}

// GeneratorOptions maps the project section onto generator options.
func (c *Config) GeneratorOptions(workspace string) generator.Options {
	return generator.Options{
		Dir:        c.ProjectDir(workspace),
		Count:      c.Project.Count,
		Delay:      c.GetDelay(),
		Extensions: append([]string(nil), c.Project.Extensions...),
		Seed:       c.Project.Seed,
		Prune:      c.Project.Prune,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Project.Delay != "" {
		if _, err := time.ParseDuration(c.Project.Delay); err != nil {
			return fmt.Errorf("invalid project delay %q: %w", c.Project.Delay, err)
		}
	}
	if err := c.GeneratorOptions("").Validate(); err != nil {
		return fmt.Errorf("invalid project config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}
