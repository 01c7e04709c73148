package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"busywork/internal/generator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileMsg(i, total int) FileMsg {
	name := generator.FileName(i, "go")
	return FileMsg{Index: i, Total: total, File: generator.File{Index: i, Name: name, Ext: "go"}}
}

func TestProgressModel_TracksFiles(t *testing.T) {
	var m tea.Model = NewProgressModel(10, DefaultStyles(), nil)

	for i := 1; i <= 7; i++ {
		m, _ = m.Update(fileMsg(i, 10))
	}

	pm := m.(ProgressModel)
	assert.InDelta(t, 0.7, pm.Percent(), 1e-9)
	assert.Len(t, pm.recent, recentFiles)
	assert.Equal(t, "file7.go", pm.recent[len(pm.recent)-1])

	view := pm.View()
	assert.Contains(t, view, "7/10")
	assert.Contains(t, view, "file7.go")
	assert.NotContains(t, view, "file2.go")
}

func TestProgressModel_DoneQuits(t *testing.T) {
	var m tea.Model = NewProgressModel(1, DefaultStyles(), nil)
	m, cmd := m.Update(DoneMsg{Report: &generator.Report{Dir: "fake_project", Files: make([]generator.File, 1)}})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Done generating fake code!")
}

func TestProgressModel_DoneWithError(t *testing.T) {
	var m tea.Model = NewProgressModel(1, DefaultStyles(), nil)

	m, _ = m.Update(DoneMsg{Err: errors.New("disk full")})
	assert.Contains(t, m.View(), "disk full")

	m = NewProgressModel(1, DefaultStyles(), nil)
	m, _ = m.Update(DoneMsg{Err: context.Canceled, Report: &generator.Report{}})
	assert.Contains(t, m.View(), "Stopped early.")
}

func TestProgressModel_QuitCancelsRun(t *testing.T) {
	cancelled := false
	var m tea.Model = NewProgressModel(5, DefaultStyles(), func() { cancelled = true })

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.True(t, cancelled)
	assert.True(t, m.(ProgressModel).Aborted())
}

func TestProgressModel_ZeroTotal(t *testing.T) {
	m := NewProgressModel(0, DefaultStyles(), nil)
	assert.Equal(t, 1.0, m.Percent())
}

func TestProgressModel_WindowSize(t *testing.T) {
	var m tea.Model = NewProgressModel(5, DefaultStyles(), nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 96, m.(ProgressModel).progress.Width)
}

func TestRunProgress(t *testing.T) {
	opts := generator.DefaultOptions()
	opts.Dir = filepath.Join(t.TempDir(), generator.DefaultDir)
	opts.Count = 5
	opts.Delay = 0
	opts.Seed = 7

	var out bytes.Buffer
	report, err := RunProgress(context.Background(), ProgressConfig{
		Options: opts,
		Styles:  DefaultStyles(),
		Input:   &bytes.Buffer{},
		Output:  &out,
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 5)

	entries, err := os.ReadDir(opts.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.NotZero(t, out.Len())
}

func TestRunProgress_InvalidOptions(t *testing.T) {
	opts := generator.DefaultOptions()
	opts.Extensions = nil

	_, err := RunProgress(context.Background(), ProgressConfig{
		Options: opts,
		Styles:  DefaultStyles(),
		Input:   &bytes.Buffer{},
		Output:  &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, generator.ErrNoExtensions)
}
