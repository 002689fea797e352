// Package config loads tapefiles.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load parses the tapefile at path. A directory is searched for tape.yaml,
// walking up its parents until one is found.
func (l *Loader) Load(path string) (*domain.Tapefile, error) {
	configPath, err := findTapefile(path)
	if err != nil {
		return nil, err
	}

	var dto Tapefile
	if err := readAndUnmarshalYAML(configPath, &dto); err != nil {
		return nil, err
	}

	tf, err := l.build(&dto)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	tf.Path = configPath
	return tf, nil
}

func findTapefile(path string) (string, error) {
	if path == "" {
		path = "."
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	for dir := abs; ; {
		candidate := filepath.Join(dir, domain.TapeFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", abs)
		}
		dir = parent
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is resolved by findTapefile
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}
	return nil
}

func (l *Loader) build(dto *Tapefile) (*domain.Tapefile, error) {
	tf := &domain.Tapefile{
		Toolchain: domain.ToolchainConfig{
			CC:  dto.Toolchain.CC,
			CXX: dto.Toolchain.CXX,
			AS:  dto.Toolchain.AS,
			LD:  dto.Toolchain.LD,
			AR:  dto.Toolchain.AR,
			Env: dto.Toolchain.Env,
		},
	}

	if dto.Target != nil {
		kind, err := domain.ParseTargetKind(dto.Target.Kind)
		if err != nil {
			return nil, zerr.With(err, "kind", dto.Target.Kind)
		}
		tf.Target = &domain.Target{
			Name:        dto.Target.Name,
			Kind:        kind,
			SourceKinds: dto.Target.SourceKinds,
			Options:     toolOptions(dto.Target.ToolOptionsDTO),
		}
	}

	depend, err := l.buildDepend(dto.Depend)
	if err != nil {
		return nil, err
	}
	tf.Depend = depend

	tf.Steps = make([]domain.Step, 0, len(dto.Steps))
	for i := range dto.Steps {
		step, err := buildStep(&dto.Steps[i])
		if err != nil {
			return nil, zerr.With(err, "step", i+1)
		}
		tf.Steps = append(tf.Steps, step)
	}

	return tf, nil
}

func (l *Loader) buildDepend(dto DependDTO) (domain.DependSpec, error) {
	spec := domain.DependSpec{
		Files:    dto.Files,
		Values:   dto.Values,
		CacheKey: dto.Cache,
	}

	if dto.LastMtime != "" {
		t, err := time.Parse(time.RFC3339, dto.LastMtime)
		if err != nil {
			return domain.DependSpec{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidLastMtime.Error()), "lastmtime", dto.LastMtime)
		}
		spec.LastMtime = t
	}

	if len(spec.Files) == 0 && (spec.CacheKey != "" || !spec.LastMtime.IsZero()) && l.Logger != nil {
		l.Logger.Warn("depend: cache and lastmtime have no effect without files")
	}

	return spec, nil
}

//nolint:cyclop // one branch per step kind
func buildStep(dto *StepDTO) (domain.Step, error) {
	if n := countOps(dto); n != 1 {
		return domain.Step{}, zerr.With(domain.ErrInvalidStep, "operations", n)
	}

	switch {
	case dto.Show != nil:
		text := dto.Show.Text
		if len(dto.Show.Args) > 0 {
			text = fmt.Sprintf(text, dto.Show.Args...)
		}
		return domain.Step{Command: domain.Show{Text: text, Progress: dto.Show.Progress}}, nil

	case dto.Run != nil:
		if dto.Run.Program == "" {
			return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "run.program")
		}
		echo, err := domain.ParseEcho(dto.Run.Echo)
		if err != nil {
			return domain.Step{}, zerr.With(err, "echo", dto.Run.Echo)
		}
		return domain.Step{Command: domain.Exec{
			Echo:    echo,
			Program: dto.Run.Program,
			Args:    dto.Run.Args,
			Options: domain.ExecOptions{Env: dto.Run.Env, Dir: dto.Run.Dir},
		}}, nil

	case dto.MkDir != nil:
		if *dto.MkDir == "" {
			return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "mkdir")
		}
		return domain.Step{Command: domain.MakeDir{Path: *dto.MkDir}}, nil

	case dto.Rm != nil:
		if *dto.Rm == "" {
			return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "rm")
		}
		return domain.Step{Command: domain.Remove{Path: *dto.Rm}}, nil

	case dto.Cp != nil:
		if err := requirePair("cp", dto.Cp.Src, dto.Cp.Dst); err != nil {
			return domain.Step{}, err
		}
		return domain.Step{Command: domain.Copy{
			Src:     dto.Cp.Src,
			Dst:     dto.Cp.Dst,
			Options: domain.CopyOptions{Symlink: dto.Cp.Symlink, NoClobber: dto.Cp.NoClobber},
		}}, nil

	case dto.Mv != nil:
		if err := requirePair("mv", dto.Mv.Src, dto.Mv.Dst); err != nil {
			return domain.Step{}, err
		}
		return domain.Step{Command: domain.Move{
			Src:     dto.Mv.Src,
			Dst:     dto.Mv.Dst,
			Options: domain.MoveOptions{NoClobber: dto.Mv.NoClobber},
		}}, nil

	case dto.Ln != nil:
		if err := requirePair("ln", dto.Ln.Src, dto.Ln.Dst); err != nil {
			return domain.Step{}, err
		}
		return domain.Step{Command: domain.Link{
			Src:     dto.Ln.Src,
			Dst:     dto.Ln.Dst,
			Options: domain.LinkOptions{Hard: dto.Ln.Hard, Force: dto.Ln.Force},
		}}, nil

	case dto.Cd != nil:
		if dto.Cd.Path == "" {
			return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "cd.path")
		}
		return domain.Step{Command: domain.ChangeDir{
			Path:    dto.Cd.Path,
			Options: domain.ChangeDirOptions{Create: dto.Cd.Create},
		}}, nil

	case dto.Compile != nil:
		return buildCompile(dto.Compile)

	default:
		return buildLink(dto.Link)
	}
}

func buildCompile(dto *CompileDTO) (domain.Step, error) {
	if len(dto.Sources) == 0 {
		return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "compile.sources")
	}
	if dto.Object == "" {
		return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "compile.object")
	}
	return domain.Step{Compile: &domain.CompileStep{
		Sources: dto.Sources,
		Object:  dto.Object,
		Options: domain.CompilerOptions{
			SourceKind: dto.SourceKind,
			Env:        dto.Env,
			Tool:       toolOptions(dto.ToolOptionsDTO),
		},
	}}, nil
}

func buildLink(dto *LinkDTO) (domain.Step, error) {
	if len(dto.Objects) == 0 {
		return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "link.objects")
	}
	if dto.Target == "" {
		return domain.Step{}, zerr.With(domain.ErrInvalidStep, "missing", "link.target")
	}

	var kind domain.TargetKind
	if dto.TargetKind != "" {
		parsed, err := domain.ParseTargetKind(dto.TargetKind)
		if err != nil {
			return domain.Step{}, zerr.With(err, "targetkind", dto.TargetKind)
		}
		kind = parsed
	}

	return domain.Step{Link: &domain.LinkStep{
		Objects: dto.Objects,
		Target:  dto.Target,
		Options: domain.LinkerOptions{
			TargetKind:  kind,
			SourceKinds: dto.SourceKinds,
			Env:         dto.Env,
			Tool:        toolOptions(dto.ToolOptionsDTO),
		},
	}}, nil
}

func countOps(dto *StepDTO) int {
	n := 0
	for _, set := range []bool{
		dto.Show != nil, dto.Run != nil, dto.MkDir != nil, dto.Rm != nil, dto.Cp != nil,
		dto.Mv != nil, dto.Ln != nil, dto.Cd != nil, dto.Compile != nil, dto.Link != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

func requirePair(op, src, dst string) error {
	if src == "" {
		return zerr.With(domain.ErrInvalidStep, "missing", op+".src")
	}
	if dst == "" {
		return zerr.With(domain.ErrInvalidStep, "missing", op+".dst")
	}
	return nil
}

func toolOptions(dto ToolOptionsDTO) domain.ToolOptions {
	return domain.ToolOptions{
		Defines:     dto.Defines,
		IncludeDirs: dto.IncludeDirs,
		Flags:       dto.Flags,
		LinkDirs:    dto.LinkDirs,
		Links:       dto.Links,
		LDFlags:     dto.LDFlags,
	}
}
