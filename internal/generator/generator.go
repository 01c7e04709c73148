// Package generator writes the placeholder source files that make a
// workspace look busy.
//
// Files are written strictly one at a time: pick an extension, write the
// fixed snippet, notify the observer, pause. There is no concurrency
// inside a run.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultDir is the project directory created under the workspace.
	DefaultDir = "fake_project"
	// DefaultCount is the number of files written per run.
	DefaultCount = 100
	// DefaultDelay is the pause after each file.
	DefaultDelay = 100 * time.Millisecond
)

var defaultExtensions = []string{
	"js", "py", "java", "c", "cpp", "go", "rs", "swift",
	"kt", "php", "rb", "pl", "sh", "html", "css",
}

// Validation errors returned by New.
var (
	ErrInvalidCount     = errors.New("count must not be negative")
	ErrNoExtensions     = errors.New("at least one extension is required")
	ErrInvalidExtension = errors.New("invalid extension")
	ErrInvalidDelay     = errors.New("delay must not be negative")
	ErrEmptyDir         = errors.New("project directory is required")
)

var generatedName = regexp.MustCompile(`^file([0-9]+)\.([A-Za-z0-9_+-]+)$`)

// Extensions returns a copy of the built-in extension list.
func Extensions() []string {
	return slices.Clone(defaultExtensions)
}

// FileName builds the name of the file written for index i.
func FileName(i int, ext string) string {
	return fmt.Sprintf("file%d.%s", i, ext)
}

// Content returns the snippet written for index i. It is the same for
// every extension.
func Content(i int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// Fake code file %d\n", i)
	sb.WriteString("// This is just some dummy code to look busy\n")
	sb.WriteString("function hello_world() {\n")
	sb.WriteString("  console.log('Hello, world!');\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")
	sb.WriteString("hello_world();\n")
	return sb.String()
}

// IsGenerated reports whether name looks like a file a run would have
// produced with one of exts.
func IsGenerated(name string, exts []string) bool {
	m := generatedName.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	return slices.Contains(exts, m[2])
}

// Options configures a Generator.
type Options struct {
	Dir        string
	Count      int
	Delay      time.Duration
	Extensions []string
	// Seed fixes the extension sequence. Zero seeds from the clock.
	Seed uint64
	// Prune removes files left by earlier runs before writing.
	Prune bool
}

// DefaultOptions returns options matching the classic behaviour.
func DefaultOptions() Options {
	return Options{
		Dir:        DefaultDir,
		Count:      DefaultCount,
		Delay:      DefaultDelay,
		Extensions: Extensions(),
		Prune:      true,
	}
}

// Validate checks the options for values New would reject.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Dir) == "" {
		return ErrEmptyDir
	}
	if o.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, o.Count)
	}
	if o.Delay < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDelay, o.Delay)
	}
	if len(o.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range o.Extensions {
		if !validExtension(ext) {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}
	return nil
}

func validExtension(ext string) bool {
	if ext == "" || ext == "." || ext == ".." {
		return false
	}
	return generatedName.MatchString("file1." + ext)
}

// File describes one written file.
type File struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Ext   string `json:"ext" yaml:"ext"`
	Path  string `json:"path" yaml:"path"`
}

// Event is delivered to the observer after each file is written.
type Event struct {
	Index int
	Total int
	File  File
}

// Report summarises a run. On cancellation it holds the files written
// before the run stopped.
type Report struct {
	RunID   string
	Dir     string
	Files   []File
	Pruned  int
	Started time.Time
	Elapsed time.Duration
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customises a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithObserver registers a callback invoked after every write.
func WithObserver(fn func(Event)) Option {
	return func(g *Generator) { g.observer = fn }
}

// WithSleep replaces the pause between files.
func WithSleep(fn SleepFunc) Option {
	return func(g *Generator) {
		if fn != nil {
			g.sleep = fn
		}
	}
}

// Generator writes placeholder files into a single directory.
type Generator struct {
	opts     Options
	rng      *rand.Rand
	logger   *zap.Logger
	observer func(Event)
	sleep    SleepFunc
}

// New validates opts and returns a ready Generator.
func New(opts Options, options ...Option) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.Extensions = slices.Clone(opts.Extensions)

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Generator{
		opts:   opts,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: zap.NewNop(),
		sleep:  sleepContext,
	}
	for _, o := range options {
		o(g)
	}
	return g, nil
}

// Options returns the options the generator was built with.
func (g *Generator) Options() Options {
	o := g.opts
	o.Extensions = slices.Clone(g.opts.Extensions)
	return o
}

// EnsureDir creates the project directory if it is absent.
func (g *Generator) EnsureDir() error {
	info, err := os.Stat(g.opts.Dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("project path %s exists and is not a directory", g.opts.Dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to stat project directory: %w", err)
	}

	if err := os.MkdirAll(g.opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	g.logger.Debug("Created project directory", zap.String("dir", g.opts.Dir))
	return nil
}

// Prune removes generated files left in the project directory. Files
// that do not match the naming pattern are left alone. A missing
// directory is not an error.
func (g *Generator) Prune() (int, error) {
	entries, err := os.ReadDir(g.opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read project directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsGenerated(e.Name(), g.opts.Extensions) {
			continue
		}
		if err := os.Remove(filepath.Join(g.opts.Dir, e.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
		removed++
	}
	if removed > 0 {
		g.logger.Debug("Pruned previous files", zap.Int("count", removed))
	}
	return removed, nil
}

// Run writes Count files in order, pausing Delay after each one.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Dir:     g.opts.Dir,
		Files:   make([]File, 0, g.opts.Count),
		Started: time.Now(),
	}
	log := g.logger.With(zap.String("run_id", report.RunID))
	defer func() { report.Elapsed = time.Since(report.Started) }()

	log.Info("Starting run",
		zap.String("dir", g.opts.Dir),
		zap.Int("count", g.opts.Count),
		zap.Duration("delay", g.opts.Delay))

	if err := g.EnsureDir(); err != nil {
		return report, err
	}
	if g.opts.Prune {
		n, err := g.Prune()
		report.Pruned = n
		if err != nil {
			return report, err
		}
	}

	for i := 1; i <= g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn("Run cancelled", zap.Int("written", len(report.Files)))
			return report, fmt.Errorf("run cancelled after %d files: %w", len(report.Files), err)
		}

		f, err := g.writeFile(i)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, f)
		log.Debug("Wrote file", zap.Int("index", i), zap.String("name", f.Name))

		if g.observer != nil {
			g.observer(Event{Index: i, Total: g.opts.Count, File: f})
		}

		if err := g.sleep(ctx, g.opts.Delay); err != nil {
			log.Warn("Run cancelled", zap.Int("written", len(report.Files)))
			return report, fmt.Errorf("run cancelled after %d files: %w", len(report.Files), err)
		}
	}

	log.Info("Run complete",
		zap.Int("files", len(report.Files)),
		zap.Int("pruned", report.Pruned),
		zap.Duration("elapsed", time.Since(report.Started)))
	return report, nil
}

func (g *Generator) writeFile(i int) (File, error) {
	ext := g.opts.Extensions[g.rng.IntN(len(g.opts.Extensions))]
	name := FileName(i, ext)
	path := filepath.Join(g.opts.Dir, name)

	if err := os.WriteFile(path, []byte(Content(i)), 0644); err != nil {
		return File{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return File{Index: i, Name: name, Ext: ext, Path: path}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
