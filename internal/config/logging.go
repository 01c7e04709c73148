package config

import (
	"fmt"
	"slices"
)

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted console encodings.
var ValidLogFormats = []string{"console", "json"}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // console, json
	File       string          `yaml:"file"`                 // file name under .busywork/logs
	DebugMode  bool            `yaml:"debug_mode"`           // Master toggle for the log file
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Categories not listed are enabled.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	if c.Level != "" && !slices.Contains(ValidLogLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, ValidLogLevels)
	}
	if c.Format != "" && !slices.Contains(ValidLogFormats, c.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Format, ValidLogFormats)
	}
	return nil
}
