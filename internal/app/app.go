// Package app implements the application layer for tape.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.trai.ch/tape/internal/adapters/console"
	"go.trai.ch/tape/internal/adapters/detector"
	"go.trai.ch/tape/internal/adapters/telemetry"
	"go.trai.ch/tape/internal/adapters/toolchain"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/tape/internal/engine/executor"
	"go.trai.ch/zerr"
)

// App loads tapefiles and replays them.
type App struct {
	configLoader ports.ConfigLoader
	spawner      ports.Spawner
	fs           ports.FileSystem
	changes      ports.ChangeDetector
	tracer       ports.Tracer
	logger       ports.Logger

	summary    *telemetry.Summary
	newWatcher func() (ports.Watcher, error)
	stdout     io.Writer
	getenv     func(string) string
	detect     func() detector.OutputMode
	width      func() int
}

// New creates a new App instance. A nil tracer disables tracing.
func New(
	loader ports.ConfigLoader,
	spawner ports.Spawner,
	fs ports.FileSystem,
	changes ports.ChangeDetector,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}
	return &App{
		configLoader: loader,
		spawner:      spawner,
		fs:           fs,
		changes:      changes,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
		getenv:       os.Getenv,
	}
}

// WithSummary reports the totals collected by s after every run.
func (a *App) WithSummary(s *telemetry.Summary) *App {
	a.summary = s
	return a
}

// WithWatcher sets the constructor used by Watch.
func (a *App) WithWatcher(newWatcher func() (ports.Watcher, error)) *App {
	a.newWatcher = newWatcher
	return a
}

// WithOutput redirects status lines and plans.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithEnvironment replaces the environment lookup used for toolchain defaults.
func (a *App) WithEnvironment(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// WithTerminal replaces terminal detection and width queries.
// This is primarily used for testing.
func (a *App) WithTerminal(detect func() detector.OutputMode, width func() int) *App {
	a.detect = detect
	a.width = width
	return a
}

// RunOptions configuration for the Run and Watch methods.
type RunOptions struct {
	// Config is the tapefile or the directory to search from. Empty means ".".
	Config string
	// DryRun prints verbose invocations instead of performing any record.
	DryRun bool
	// Verbose prints status lines unmodified and echoes verbose invocations.
	Verbose bool
	// NoCache ignores the recorded dependency state.
	NoCache bool
	// OutputMode forces overwrite or scroll status lines. Empty means detected.
	OutputMode string
}

// Run loads the tapefile and replays its batch once.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	tf, err := a.load(opts.Config)
	if err != nil {
		return err
	}
	_, err = a.replay(ctx, tf, opts)
	return err
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	Config string
}

// Plan prints the shell-like form of every record without running anything.
func (a *App) Plan(_ context.Context, opts PlanOptions) error {
	tf, err := a.load(opts.Config)
	if err != nil {
		return err
	}

	b, err := NewBatch(tf, toolchain.New(tf.Toolchain, a.getenv))
	if err != nil {
		return err
	}

	for _, rec := range b.Records() {
		if _, err := fmt.Fprintln(a.stdout, rec.String()); err != nil {
			return zerr.Wrap(err, domain.ErrPresentFailed.Error())
		}
	}
	return nil
}

// Clean removes the state directory.
func (a *App) Clean(_ context.Context) error {
	path := domain.DefaultStatePath()
	a.logger.Info(fmt.Sprintf("removing %s...", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
	}
	a.logger.Info(fmt.Sprintf("removed %s", path))
	return nil
}

func (a *App) load(path string) (*domain.Tapefile, error) {
	if path == "" {
		path = "."
	}
	tf, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load tapefile")
	}
	return tf, nil
}

// replay builds the batch of tf and executes it. The working directory is
// restored afterwards since cd records change it.
func (a *App) replay(ctx context.Context, tf *domain.Tapefile, opts RunOptions) (executor.Outcome, error) {
	b, err := NewBatch(tf, toolchain.New(tf.Toolchain, a.getenv))
	if err != nil {
		return executor.OutcomeFailed, err
	}

	presenter := console.New(a.stdout,
		console.WithVerbose(opts.Verbose),
		console.WithMode(detector.ParseMode(opts.OutputMode)),
		console.WithDetector(a.detect),
		console.WithWidth(a.width),
	)

	if wd, err := os.Getwd(); err == nil {
		defer func() {
			if err := os.Chdir(wd); err != nil {
				a.logger.Warn(fmt.Sprintf("could not restore working directory %s: %v", wd, err))
			}
		}()
	}

	if a.summary != nil {
		a.summary.Reset()
	}

	exec := executor.New(a.spawner, a.fs, presenter, a.changes, a.tracer, a.logger)
	outcome, err := exec.Run(ctx, b, executor.Options{
		DryRun:  opts.DryRun,
		Verbose: opts.Verbose,
		Force:   opts.NoCache,
	})
	_ = presenter.Break()
	if err != nil {
		return outcome, err
	}

	a.report(outcome, opts)
	return outcome, nil
}

func (a *App) report(outcome executor.Outcome, opts RunOptions) {
	switch outcome {
	case executor.OutcomeEmpty:
		a.logger.Info("nothing to do")
	case executor.OutcomeSkipped:
		a.logger.Info("up to date")
	case executor.OutcomeRan:
		if opts.DryRun || a.summary == nil {
			return
		}
		stats := a.summary.Stats()
		a.logger.Info(fmt.Sprintf("ran %d records in %s", stats.Records, stats.Duration.Round(time.Millisecond)))
	}
}

// Components holds the dependencies needed by the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}
