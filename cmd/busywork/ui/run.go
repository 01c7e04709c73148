package ui

import (
	"context"
	"io"

	"busywork/internal/generator"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressConfig configures RunProgress.
type ProgressConfig struct {
	Options generator.Options
	Logger  *zap.Logger
	Styles  Styles

	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer
}

// RunProgress runs the generator while a progress program renders its
// events. Quitting the program cancels the run.
func RunProgress(ctx context.Context, pc ProgressConfig) (*generator.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := pc.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var popts []tea.ProgramOption
	if pc.Input != nil {
		popts = append(popts, tea.WithInput(pc.Input))
	}
	if pc.Output != nil {
		popts = append(popts, tea.WithOutput(pc.Output))
	}
	p := tea.NewProgram(NewProgressModel(pc.Options.Count, pc.Styles, cancel), popts...)

	gen, err := generator.New(pc.Options,
		generator.WithLogger(logger),
		generator.WithObserver(func(e generator.Event) {
			p.Send(FileMsg(e))
		}))
	if err != nil {
		return nil, err
	}

	var (
		report *generator.Report
		runErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, runErr = gen.Run(gctx)
		p.Send(DoneMsg{Report: report, Err: runErr})
		return nil
	})
	g.Go(func() error {
		_, err := p.Run()
		// The run must not outlive the display.
		cancel()
		if err != nil {
			logger.Debug("Progress program exited with error", zap.Error(err))
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, runErr
}
