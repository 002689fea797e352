// Package executor replays command batches.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/tape/internal/engine/batch"
	"go.trai.ch/zerr"
)

// Options are supplied once per Run.
type Options struct {
	// DryRun suppresses every side effect. Verbose invocations are printed instead.
	DryRun bool
	// Verbose prints the command line of verbose invocations before spawning them.
	Verbose bool
	// Force runs the batch without consulting the change detector.
	Force bool
}

// Outcome reports what Run did with a batch.
type Outcome uint8

const (
	// OutcomeFailed means a record failed and the remaining ones were not run.
	OutcomeFailed Outcome = iota
	// OutcomeEmpty means the batch had no records.
	OutcomeEmpty
	// OutcomeSkipped means no tracked input changed since the last successful run.
	OutcomeSkipped
	// OutcomeRan means every record was dispatched.
	OutcomeRan
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeSkipped:
		return "up to date"
	case OutcomeRan:
		return "ran"
	default:
		return "failed"
	}
}

// Executor dispatches the records of a batch to the filesystem, the process
// spawner and the presenter.
type Executor struct {
	spawner   ports.Spawner
	fs        ports.FileSystem
	presenter ports.Presenter
	detector  ports.ChangeDetector
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates an Executor. A nil detector makes every batch run.
func New(
	spawner ports.Spawner,
	fs ports.FileSystem,
	presenter ports.Presenter,
	detector ports.ChangeDetector,
	tracer ports.Tracer,
	logger ports.Logger,
) *Executor {
	return &Executor{
		spawner:   spawner,
		fs:        fs,
		presenter: presenter,
		detector:  detector,
		tracer:    tracer,
		logger:    logger,
	}
}

// Run executes b. Records run strictly in append order and the first failure
// stops the batch. Relative tracked files are resolved against the working
// directory at the start of the run.
func (e *Executor) Run(ctx context.Context, b *batch.Batch, opts Options) (Outcome, error) {
	if b.IsEmpty() {
		return OutcomeEmpty, nil
	}

	ctx, span := e.tracer.Start(ctx, "batch",
		ports.WithAttribute("tape.records", b.Len()),
		ports.WithAttribute("tape.dry_run", opts.DryRun),
	)
	defer span.End()

	deps := b.Dependencies()
	tracked := deps != nil && deps.HasFiles()
	if tracked {
		// Records may change the working directory before the commit.
		wd, err := os.Getwd()
		if err != nil {
			return OutcomeFailed, errors.Join(domain.ErrOperationFailed, err)
		}
		deps = deps.Resolve(wd)
	}
	if tracked && !opts.Force && !e.changed(ctx, deps) {
		span.SetAttribute("tape.skipped", true)
		return OutcomeSkipped, nil
	}

	records := b.Records()
	plan := make([]string, len(records))
	for i, rec := range records {
		plan[i] = rec.String()
	}
	e.tracer.EmitPlan(ctx, plan)

	for i, rec := range records {
		if err := e.runRecord(ctx, rec, opts); err != nil {
			err = zerr.With(zerr.Wrap(err, plan[i]), "record", i)
			span.RecordError(err)
			return OutcomeFailed, errors.Join(domain.ErrOperationFailed, err)
		}
	}

	if tracked && !opts.DryRun && e.detector != nil {
		if err := e.detector.Commit(ctx, deps); err != nil {
			e.logger.Warn(fmt.Sprintf("could not record dependencies: %v", err))
		}
	}

	return OutcomeRan, nil
}

// changed asks the detector whether deps changed. Evaluation failures count as a change.
func (e *Executor) changed(ctx context.Context, deps *domain.Dependencies) bool {
	if e.detector == nil {
		return true
	}
	changed, err := e.detector.Changed(ctx, deps)
	if err != nil {
		e.logger.Warn(fmt.Sprintf("dependency check failed, rebuilding: %v", err))
		return true
	}
	return changed
}

func (e *Executor) runRecord(ctx context.Context, rec domain.Command, opts Options) error {
	if rec == nil {
		return domain.ErrUnknownCommand
	}

	ctx, span := e.tracer.Start(ctx, rec.Kind().String())
	defer span.End()

	err := e.dispatch(ctx, rec, span, opts)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (e *Executor) dispatch(ctx context.Context, rec domain.Command, span ports.Span, opts Options) error {
	switch c := rec.(type) {
	case domain.Show:
		return present(e.presenter.Render(c.Text, c.Progress))
	case domain.Exec:
		span.SetAttribute("tape.program", c.Program)
		return e.exec(ctx, c, opts)
	case domain.MakeDir:
		if opts.DryRun {
			return nil
		}
		return e.fs.MakeDir(c.Path)
	case domain.Remove:
		if opts.DryRun {
			return nil
		}
		return e.fs.Remove(c.Path)
	case domain.Copy:
		if opts.DryRun {
			return nil
		}
		return e.fs.Copy(c.Src, c.Dst, c.Options)
	case domain.Move:
		if opts.DryRun {
			return nil
		}
		return e.fs.Move(c.Src, c.Dst, c.Options)
	case domain.Link:
		if opts.DryRun {
			return nil
		}
		return e.fs.Link(c.Src, c.Dst, c.Options)
	case domain.ChangeDir:
		if opts.DryRun {
			return nil
		}
		return e.fs.ChangeDir(c.Path, c.Options)
	default:
		return zerr.With(domain.ErrUnknownCommand, "kind", rec.Kind().String())
	}
}

func (e *Executor) exec(ctx context.Context, c domain.Exec, opts Options) error {
	switch c.Echo {
	case domain.EchoVisible:
		if opts.DryRun {
			return nil
		}
		if err := e.presenter.Break(); err != nil {
			return present(err)
		}
	case domain.EchoVerbose:
		if opts.DryRun {
			return present(e.presenter.Println(c.String()))
		}
		if opts.Verbose {
			if err := e.presenter.Println(c.String()); err != nil {
				return present(err)
			}
		}
		c.Options.LogOutput = opts.Verbose
	default:
		if opts.DryRun {
			return nil
		}
	}
	return e.spawner.Spawn(ctx, c)
}

func present(err error) error {
	if err == nil {
		return nil
	}
	return zerr.Wrap(err, domain.ErrPresentFailed.Error())
}
