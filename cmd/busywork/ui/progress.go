package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"busywork/internal/generator"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const recentFiles = 5

// FileMsg reports one written file to the progress model.
type FileMsg generator.Event

// DoneMsg ends the program once the generator returns.
type DoneMsg struct {
	Report *generator.Report
	Err    error
}

// ProgressModel shows a spinner, the files written so far and a progress bar.
type ProgressModel struct {
	total  int
	done   int
	recent []string

	report   *generator.Report
	err      error
	finished bool
	aborted  bool

	width    int
	progress progress.Model
	spinner  spinner.Model
	styles   Styles

	cancel context.CancelFunc
}

// NewProgressModel creates the model for a run of total files. cancel is
// called when the user quits before the run finishes.
func NewProgressModel(total int, styles Styles, cancel context.CancelFunc) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return ProgressModel{
		total:    total,
		width:    60,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(56)),
		spinner:  s,
		styles:   styles,
		cancel:   cancel,
	}
}

// Init starts the spinner.
func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if !m.finished {
				m.aborted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(10, msg.Width-4)

	case FileMsg:
		m.done = msg.Index
		if msg.Total > 0 {
			m.total = msg.Total
		}
		m.recent = append(m.recent, msg.File.Name)
		if len(m.recent) > recentFiles {
			m.recent = m.recent[len(m.recent)-recentFiles:]
		}

	case DoneMsg:
		m.finished = true
		m.report = msg.Report
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Percent returns the fraction of files written.
func (m ProgressModel) Percent() float64 {
	if m.total <= 0 {
		return 1
	}
	return float64(m.done) / float64(m.total)
}

// Aborted reports whether the user quit before the run finished.
func (m ProgressModel) Aborted() bool {
	return m.aborted
}

// View renders the model.
func (m ProgressModel) View() string {
	var sb strings.Builder

	if m.finished {
		switch {
		case m.err == nil:
			sb.WriteString(m.styles.RenderDone(m.report))
		case errors.Is(m.err, context.Canceled), errors.Is(m.err, context.DeadlineExceeded):
			sb.WriteString(m.styles.RenderCancelled(m.report))
		default:
			sb.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		}
		sb.WriteString("\n")
		return sb.String()
	}
	if m.aborted {
		return m.styles.Warning.Render("Stopping...") + "\n"
	}

	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	sb.WriteString(m.styles.Title.Render("Looking busy"))
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	sb.WriteString("\n\n")

	for _, name := range m.recent {
		sb.WriteString("  ")
		sb.WriteString(m.styles.RenderGenerating(name))
		sb.WriteString("\n")
	}
	if len(m.recent) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(m.progress.ViewAs(m.Percent()))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("q: stop"))
	sb.WriteString("\n")
	return sb.String()
}
