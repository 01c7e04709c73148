package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"busywork/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(t.TempDir(), config.LoggingConfig{Level: "warn"}, false, &buf)
	require.NoError(t, err)
	defer l.Close()

	log := l.For(CategoryGenerate)
	log.Info("hidden message")
	log.Warn("visible message")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "visible message")
	assert.Contains(t, out, "generate")
}

func TestVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(t.TempDir(), config.LoggingConfig{Level: "error"}, true, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.For(CategoryGenerate).Debug("debug detail")
	assert.Contains(t, buf.String(), "debug detail")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(t.TempDir(), config.LoggingConfig{Level: "info", Format: "json"}, false, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.For(CategoryConfig).Info("loaded", zap.String("path", "busywork.yaml"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "config", entry["logger"])
	assert.Equal(t, "busywork.yaml", entry["path"])
}

func TestDebugModeWritesLogFile(t *testing.T) {
	ws := t.TempDir()
	var buf bytes.Buffer
	l, err := New(ws, config.LoggingConfig{Level: "error", DebugMode: true, File: "test.log"}, false, &buf)
	require.NoError(t, err)

	l.For(CategoryGenerate).Debug("only in file")
	require.NoError(t, l.Close())

	assert.Equal(t, filepath.Join(ws, DirName, "logs", "test.log"), l.Path())
	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "only in file")
	assert.NotContains(t, buf.String(), "only in file")
}

func TestDebugModeDisabled(t *testing.T) {
	ws := t.TempDir()
	l, err := New(ws, config.LoggingConfig{Level: "debug"}, false, &bytes.Buffer{})
	require.NoError(t, err)
	defer l.Close()

	l.For(CategoryBoot).Info("console only")

	assert.Empty(t, l.Path())
	_, err = os.Stat(filepath.Join(ws, DirName))
	assert.True(t, os.IsNotExist(err), "no state directory expected without debug_mode")
}

func TestDisabledCategory(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LoggingConfig{Level: "debug", Categories: map[string]bool{"ui": false}}
	l, err := New(t.TempDir(), cfg, false, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.For(CategoryUI).Info("ui noise")
	l.For(CategoryGenerate).Info("generate line")

	out := buf.String()
	assert.False(t, strings.Contains(out, "ui noise"))
	assert.Contains(t, out, "generate line")
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(t.TempDir(), config.LoggingConfig{Level: "loud"}, false, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.For(CategoryGenerate).Info("discarded")
	assert.NoError(t, l.Close())
}
