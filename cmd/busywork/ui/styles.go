// Package ui renders busywork's terminal output: the plain one-line-per-file
// mode and the progress bar mode.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"busywork/internal/generator"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#1f2933")
	LightPrimary    = lipgloss.Color("#3b4cca")
	LightAccent     = lipgloss.Color("#f59e0b")
	LightMuted      = lipgloss.Color("#7b8794")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#e4e7eb")
	DarkPrimary    = lipgloss.Color("#8fa3ff")
	DarkAccent     = lipgloss.Color("#fbbf24")
	DarkMuted      = lipgloss.Color("#9aa5b1")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#ffc107")
	Info        = lipgloss.Color("#2196f3")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from BUSYWORK_DARK_MODE or a dark COLORFGBG
// background, light mode otherwise.
func DetectTheme() Theme {
	if os.Getenv("BUSYWORK_DARK_MODE") == "1" {
		return DarkTheme()
	}

	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			// 0-6 and 8 (dark grey) are dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	FileName lipgloss.Style
	Spinner  lipgloss.Style
	Badge    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		FileName: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// StylesFor returns dark styles when dark is set, detected styles otherwise.
func StylesFor(dark bool) Styles {
	if dark {
		return NewStyles(DarkTheme())
	}
	return DefaultStyles()
}

// RenderGenerating renders the line printed before each file is written.
func (s Styles) RenderGenerating(name string) string {
	return s.Body.Render("Generating file ") + s.FileName.Render(name) + s.Body.Render("...")
}

// RenderDone renders the closing line of a finished run.
func (s Styles) RenderDone(r *generator.Report) string {
	line := s.Success.Render("Done generating fake code!")
	if r == nil {
		return line
	}
	detail := fmt.Sprintf(" %d files in %s (%s)", len(r.Files), r.Dir, r.Elapsed.Round(time.Millisecond))
	if r.Pruned > 0 {
		detail += fmt.Sprintf(", %d old files removed", r.Pruned)
	}
	return line + s.Muted.Render(detail)
}

// RenderCancelled renders the closing line of an interrupted run.
func (s Styles) RenderCancelled(r *generator.Report) string {
	written := 0
	if r != nil {
		written = len(r.Files)
	}
	return s.Warning.Render("Stopped early.") + s.Muted.Render(fmt.Sprintf(" %d files written", written))
}
