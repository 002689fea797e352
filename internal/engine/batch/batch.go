// Package batch records build operations for deferred execution.
package batch

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
)

// ProgressFormatter renders the status text of a progress record.
type ProgressFormatter func(progress int, text string) string

// Option configures a Batch.
type Option func(*Batch)

// WithOwner sets the target whose context the compile and link builders use.
func WithOwner(target *domain.Target) Option {
	return func(b *Batch) {
		b.owner = target
	}
}

// WithToolchain sets the toolchain resolving compilers and linkers.
func WithToolchain(tc ports.Toolchain) Option {
	return func(b *Batch) {
		b.toolchain = tc
	}
}

// WithProgressFormatter sets the formatter used by ShowProgress.
func WithProgressFormatter(f ProgressFormatter) Option {
	return func(b *Batch) {
		if f != nil {
			b.format = f
		}
	}
}

// Batch is an append-only sequence of deferred commands plus the inputs
// deciding whether they need to run. A Batch has a single owner and is not
// safe for concurrent use.
type Batch struct {
	owner     *domain.Target
	toolchain ports.Toolchain
	format    ProgressFormatter

	records []domain.Command
	deps    *domain.Dependencies
}

// New creates an empty batch.
func New(opts ...Option) *Batch {
	b := &Batch{format: plainProgress}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func plainProgress(progress int, text string) string {
	return fmt.Sprintf("[%3d%%]: %s", progress, text)
}

// Owner returns the owning target, or nil.
func (b *Batch) Owner() *domain.Target {
	return b.owner
}

// IsEmpty reports whether no record was appended.
func (b *Batch) IsEmpty() bool {
	return len(b.records) == 0
}

// Len returns the number of records.
func (b *Batch) Len() int {
	return len(b.records)
}

// Records returns the records in append order.
func (b *Batch) Records() []domain.Command {
	return slices.Clone(b.records)
}

// Dependencies returns a copy of the dependency descriptor, or nil when no
// dependency data was supplied.
func (b *Batch) Dependencies() *domain.Dependencies {
	if b.deps == nil {
		return nil
	}
	return b.deps.Clone()
}

func (b *Batch) dependencies() *domain.Dependencies {
	if b.deps == nil {
		b.deps = domain.NewDependencies()
	}
	return b.deps
}

// Spawn appends a process invocation with the given echo level and folds the
// program and arguments into the dependency values.
func (b *Batch) Spawn(echo domain.Echo, program string, args []string, opts domain.ExecOptions) {
	args = slices.Clone(args)
	b.records = append(b.records, domain.Exec{
		Echo:    echo,
		Program: program,
		Args:    args,
		Options: domain.ExecOptions{Env: maps.Clone(opts.Env), Dir: opts.Dir},
	})
	b.dependencies().AddValues(program, slices.Clone(args))
}

// SpawnVisible appends a process whose output is always shown.
func (b *Batch) SpawnVisible(program string, args []string, opts domain.ExecOptions) {
	b.Spawn(domain.EchoVisible, program, args, opts)
}

// SpawnVerbose appends a process whose command line is shown in verbose and dry-run mode.
func (b *Batch) SpawnVerbose(program string, args []string, opts domain.ExecOptions) {
	b.Spawn(domain.EchoVerbose, program, args, opts)
}

// SpawnSilent appends a process that is never shown.
func (b *Batch) SpawnSilent(program string, args []string, opts domain.ExecOptions) {
	b.Spawn(domain.EchoSilent, program, args, opts)
}

// Compile appends the commands compiling sources into object: a directory
// creation for the object's parent and a verbose compiler invocation.
func (b *Batch) Compile(sources []string, object string, opts domain.CompilerOptions) error {
	if len(sources) == 0 {
		return zerr.With(domain.ErrNoSources, "object", object)
	}
	if b.toolchain == nil {
		return domain.ErrNoToolchain
	}

	kind := opts.SourceKind
	if kind == "" {
		kind = domain.SourceKindOf(sources[0])
	}

	compiler, err := b.toolchain.Compiler(kind)
	if err != nil {
		return zerr.With(err, "source", sources[0])
	}

	program, args, err := compiler.CompileArgv(sources, object, b.toolOptions(opts.Tool))
	if err != nil {
		return zerr.With(err, "object", object)
	}

	b.MakeDir(filepath.Dir(object))
	b.SpawnVerbose(program, args, domain.ExecOptions{Env: mergeEnv(compiler.RunEnvs(), opts.Env)})
	return nil
}

// Link appends the commands linking objects into target. The linker comes from
// the owning target when there is one, otherwise from the kinds in opts.
func (b *Batch) Link(objects []string, target string, opts domain.LinkerOptions) error {
	if b.toolchain == nil {
		return domain.ErrNoToolchain
	}

	kind, sourceKinds := opts.TargetKind, opts.SourceKinds
	if b.owner != nil {
		kind, sourceKinds = b.owner.Kind, b.owner.SourceKinds
	}
	if kind == "" {
		kind = domain.TargetBinary
	}

	linker, err := b.toolchain.Linker(kind, sourceKinds)
	if err != nil {
		return zerr.With(err, "target", target)
	}

	program, args, err := linker.LinkArgv(objects, target, b.toolOptions(opts.Tool))
	if err != nil {
		return zerr.With(err, "target", target)
	}

	b.MakeDir(filepath.Dir(target))
	b.SpawnVerbose(program, args, domain.ExecOptions{Env: mergeEnv(linker.RunEnvs(), opts.Env)})
	return nil
}

func (b *Batch) toolOptions(extra domain.ToolOptions) domain.ToolOptions {
	if b.owner == nil {
		return domain.ToolOptions{}.Merge(extra)
	}
	return b.owner.Options.Merge(extra)
}

// mergeEnv overlays caller variables on the tool's run environment.
func mergeEnv(tool, caller map[string]string) map[string]string {
	if len(tool) == 0 && len(caller) == 0 {
		return nil
	}
	env := make(map[string]string, len(tool)+len(caller))
	maps.Copy(env, tool)
	maps.Copy(env, caller)
	return env
}

// MakeDir appends a directory creation.
func (b *Batch) MakeDir(path string) {
	b.records = append(b.records, domain.MakeDir{Path: path})
}

// Remove appends a removal.
func (b *Batch) Remove(path string) {
	b.records = append(b.records, domain.Remove{Path: path})
}

// Copy appends a copy.
func (b *Batch) Copy(src, dst string, opts domain.CopyOptions) {
	b.records = append(b.records, domain.Copy{Src: src, Dst: dst, Options: opts})
}

// Move appends a move.
func (b *Batch) Move(src, dst string, opts domain.MoveOptions) {
	b.records = append(b.records, domain.Move{Src: src, Dst: dst, Options: opts})
}

// LinkPath appends a symbolic or hard link creation.
func (b *Batch) LinkPath(src, dst string, opts domain.LinkOptions) {
	b.records = append(b.records, domain.Link{Src: src, Dst: dst, Options: opts})
}

// ChangeDir appends a working directory change.
func (b *Batch) ChangeDir(path string, opts domain.ChangeDirOptions) {
	b.records = append(b.records, domain.ChangeDir{Path: path, Options: opts})
}

// Show appends a status message.
func (b *Batch) Show(format string, args ...any) {
	b.records = append(b.records, domain.Show{Text: sprintf(format, args)})
}

// ShowProgress appends a status message carrying a progress percentage.
// A nil progress appends nothing.
func (b *Batch) ShowProgress(progress *int, format string, args ...any) {
	if progress == nil {
		return
	}
	p := *progress
	b.records = append(b.records, domain.Show{
		Text:     b.format(p, sprintf(format, args)),
		Progress: &p,
	})
}

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// AddDependencyFiles tracks files whose changes invalidate the batch.
func (b *Batch) AddDependencyFiles(paths ...string) {
	b.dependencies().AddFiles(paths...)
}

// AddDependencyValues appends comparison values whose changes invalidate the batch.
func (b *Batch) AddDependencyValues(values ...any) {
	b.dependencies().AddValues(values...)
}

// SetLastMtime sets the last known-good modification time.
func (b *Batch) SetLastMtime(t time.Time) {
	b.dependencies().SetLastMtime(t)
}

// SetDependencyCache sets the key the change detector stores state under.
func (b *Batch) SetDependencyCache(key string) {
	b.dependencies().SetCacheKey(key)
}
