// Package logging builds the zap loggers used by busywork.
// Console output goes to stderr at the configured level. When debug_mode
// is set, every entry is also written as JSON to .busywork/logs/ under
// the workspace.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"busywork/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, flag and workspace resolution
	CategoryConfig   Category = "config"   // Config load/save
	CategoryGenerate Category = "generate" // File generation runs
	CategoryUI       Category = "ui"       // Progress display
)

// DirName is the workspace-relative directory holding busywork state.
const DirName = ".busywork"

// Logger owns the root zap logger and the optional log file.
type Logger struct {
	root *zap.Logger
	cfg  config.LoggingConfig
	file *os.File
	path string
}

// ParseLevel maps a config level name onto a zap level.
// An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
}

// New builds the logger for a workspace. verbose forces debug level on
// the console. console defaults to os.Stderr when nil.
func New(ws string, cfg config.LoggingConfig, verbose bool, console io.Writer) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	if console == nil {
		console = os.Stderr
	}

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc = zapcore.NewConsoleEncoder(ec)
	}

	l := &Logger{cfg: cfg}
	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	if cfg.DebugMode {
		if ws == "" {
			return nil, fmt.Errorf("workspace path required for debug logging")
		}
		logsDir := filepath.Join(ws, DirName, "logs")
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		name := cfg.File
		if name == "" {
			name = "busywork.log"
		}
		l.path = filepath.Join(logsDir, filepath.Base(name))
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(f), zapcore.DebugLevel))
	}

	l.root = zap.New(zapcore.NewTee(cores...))
	l.For(CategoryBoot).Debug("Logging initialized",
		zap.String("workspace", ws),
		zap.String("level", level.String()),
		zap.Bool("debug_mode", cfg.DebugMode))
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{root: zap.NewNop()}
}

// Zap returns the root logger.
func (l *Logger) Zap() *zap.Logger {
	return l.root
}

// Path returns the log file path, or "" when debug mode is off.
func (l *Logger) Path() string {
	return l.path
}

// For returns the named logger for a category, or a no-op logger if the
// category is disabled.
func (l *Logger) For(cat Category) *zap.Logger {
	if !l.cfg.IsCategoryEnabled(string(cat)) {
		return zap.NewNop()
	}
	return l.root.Named(string(cat))
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	// Sync on a terminal stderr returns EINVAL on some platforms.
	_ = l.root.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
