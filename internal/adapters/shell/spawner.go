// Package shell runs the processes recorded in a batch.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
	"go.trai.ch/zerr"
)

// Spawner implements ports.Spawner using os/exec.
type Spawner struct {
	logger ports.Logger
	stdout io.Writer
	stderr io.Writer
	usePTY bool
}

// Option configures a Spawner.
type Option func(*Spawner)

// WithOutput sets where visible processes write.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Spawner) {
		if stdout != nil {
			s.stdout = stdout
		}
		if stderr != nil {
			s.stderr = stderr
		}
	}
}

// WithPTY runs visible processes inside a pseudo-terminal so they keep
// their interactive formatting.
func WithPTY(enable bool) Option {
	return func(s *Spawner) {
		s.usePTY = enable
	}
}

// New creates a Spawner.
func New(logger ports.Logger, opts ...Option) *Spawner {
	s := &Spawner{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn runs cmd to completion.
// Visible commands stream to the console. Verbose and silent commands are
// captured; the capture is attached to the error when the process fails. On
// success it is logged for verbose commands with Options.LogOutput set and
// discarded otherwise.
func (s *Spawner) Spawn(ctx context.Context, cmd domain.Exec) error {
	env := resolveEnvironment(os.Environ(), cmd.Options.Env)

	executable, err := resolveExecutable(cmd.Program, env)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCommandNotFound, err), "program", cmd.Program)
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // programs come from the tapefile
	c.Args[0] = cmd.Program
	c.Dir = cmd.Options.Dir
	c.Env = env

	if cmd.Echo == domain.EchoVisible {
		return s.runVisible(c, cmd.Program)
	}

	var captured bytes.Buffer
	c.Stdout = &captured
	c.Stderr = &captured

	if err := c.Start(); err != nil {
		return zerr.With(errors.Join(domain.ErrCommandStartFailed, err), "program", cmd.Program)
	}

	if err := c.Wait(); err != nil {
		failure := commandFailed(err, cmd.Program)
		if out := strings.TrimRight(captured.String(), "\n"); out != "" {
			failure = zerr.With(failure, "output", out)
		}
		return failure
	}

	if cmd.Echo == domain.EchoVerbose && cmd.Options.LogOutput && captured.Len() > 0 {
		w := &logWriter{logger: s.logger}
		_, _ = w.Write(captured.Bytes())
		_ = w.Close()
	}
	return nil
}

func (s *Spawner) runVisible(c *exec.Cmd, program string) error {
	if !s.usePTY {
		c.Stdin = os.Stdin
		c.Stdout = s.stdout
		c.Stderr = s.stderr

		if err := c.Start(); err != nil {
			return zerr.With(errors.Join(domain.ErrCommandStartFailed, err), "program", program)
		}
		if err := c.Wait(); err != nil {
			return commandFailed(err, program)
		}
		return nil
	}

	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrCommandStartFailed, err), "program", program)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The pty reports EIO once the child exits.
		_, _ = io.Copy(s.stdout, ptmx)
	}()

	err = c.Wait()
	<-ioDone
	_ = ptmx.Close()

	if err != nil {
		return commandFailed(err, program)
	}
	return nil
}

func commandFailed(err error, program string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	failure := zerr.With(errors.Join(domain.ErrCommandFailed, err), "program", program)
	return zerr.With(failure, "exit_code", exitCode)
}

// logWriter forwards complete lines to the logger.
type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	if w.logger == nil {
		return
	}
	w.logger.Info(strings.TrimSuffix(string(line), "\r"))
}

// resolveEnvironment applies overrides on top of the system environment.
// The result is sorted by key.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	maps.Copy(envMap, overrides)

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// resolveExecutable finds program on the PATH of env. Programs containing a
// path separator are used as given.
func resolveExecutable(program string, env []string) (string, error) {
	if program == "" {
		return "", exec.ErrNotFound
	}
	if strings.ContainsRune(program, filepath.Separator) {
		return program, nil
	}
	return lookPath(program, env)
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
