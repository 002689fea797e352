// Package toolchain provides a gcc-style compiler and linker provider.
package toolchain

import (
	"maps"
	"os"
	"slices"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultCC  = "cc"
	defaultCXX = "c++"
	defaultAR  = "ar"
)

// Registry implements ports.Toolchain for gcc-compatible drivers.
type Registry struct {
	cc  string
	cxx string
	as  string
	ld  string
	ar  string
	env map[string]string
}

// New resolves the programs of cfg. Empty entries fall back to the CC, CXX
// and AR environment variables read through getenv, then to cc, c++ and ar.
// The assembler defaults to the C driver. A nil getenv means os.Getenv.
func New(cfg domain.ToolchainConfig, getenv func(string) string) *Registry {
	if getenv == nil {
		getenv = os.Getenv
	}

	r := &Registry{
		cc:  firstNonEmpty(cfg.CC, getenv("CC"), defaultCC),
		cxx: firstNonEmpty(cfg.CXX, getenv("CXX"), defaultCXX),
		ar:  firstNonEmpty(cfg.AR, getenv("AR"), defaultAR),
		ld:  cfg.LD,
		env: maps.Clone(cfg.Env),
	}
	r.as = firstNonEmpty(cfg.AS, r.cc)
	return r
}

// Compiler returns the compiler for sourceKind.
func (r *Registry) Compiler(sourceKind string) (ports.Compiler, error) {
	var program string
	switch sourceKind {
	case domain.SourceKindC:
		program = r.cc
	case domain.SourceKindCXX:
		program = r.cxx
	case domain.SourceKindAsm:
		program = r.as
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrCompilerNotFound, "unsupported source kind"), "source_kind", sourceKind)
	}
	return &compiler{program: program, env: r.env}, nil
}

// Linker returns the linker for kind. Executables and shared libraries are
// linked by the C++ driver when any source kind is C++, by the C driver
// otherwise, unless an explicit linker is configured.
func (r *Registry) Linker(kind domain.TargetKind, sourceKinds []string) (ports.Linker, error) {
	switch kind {
	case domain.TargetStatic:
		return &archiver{program: r.ar, env: r.env}, nil
	case domain.TargetBinary, domain.TargetShared:
		program := r.cc
		if slices.Contains(sourceKinds, domain.SourceKindCXX) {
			program = r.cxx
		}
		if r.ld != "" {
			program = r.ld
		}
		return &linker{program: program, shared: kind == domain.TargetShared, env: r.env}, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrLinkerNotFound, "unsupported target kind"), "target_kind", string(kind))
	}
}

type compiler struct {
	program string
	env     map[string]string
}

func (c *compiler) CompileArgv(sources []string, object string, opts domain.ToolOptions) (string, []string, error) {
	if len(sources) == 0 {
		return "", nil, domain.ErrNoSources
	}

	args := make([]string, 0, len(opts.Flags)+len(opts.Defines)+len(opts.IncludeDirs)+len(sources)+3)
	args = append(args, opts.Flags...)
	for _, d := range opts.Defines {
		args = append(args, "-D"+d)
	}
	for _, dir := range opts.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, "-c")
	args = append(args, sources...)
	args = append(args, "-o", object)
	return c.program, args, nil
}

func (c *compiler) RunEnvs() map[string]string {
	return maps.Clone(c.env)
}

type linker struct {
	program string
	shared  bool
	env     map[string]string
}

func (l *linker) LinkArgv(objects []string, target string, opts domain.ToolOptions) (string, []string, error) {
	args := make([]string, 0, len(objects)+len(opts.LinkDirs)+len(opts.Links)+len(opts.LDFlags)+3)
	if l.shared {
		args = append(args, "-shared")
	}
	args = append(args, objects...)
	args = append(args, "-o", target)
	for _, dir := range opts.LinkDirs {
		args = append(args, "-L"+dir)
	}
	args = append(args, opts.LDFlags...)
	for _, lib := range opts.Links {
		args = append(args, "-l"+lib)
	}
	return l.program, args, nil
}

func (l *linker) RunEnvs() map[string]string {
	return maps.Clone(l.env)
}

type archiver struct {
	program string
	env     map[string]string
}

func (a *archiver) LinkArgv(objects []string, target string, _ domain.ToolOptions) (string, []string, error) {
	args := make([]string, 0, len(objects)+2)
	args = append(args, "-cr", target)
	args = append(args, objects...)
	return a.program, args, nil
}

func (a *archiver) RunEnvs() map[string]string {
	return maps.Clone(a.env)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
