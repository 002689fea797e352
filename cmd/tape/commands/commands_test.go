package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/cmd/tape/commands"
	"go.trai.ch/tape/internal/app"
	"go.trai.ch/tape/internal/build"
)

type mockApp struct {
	runOpts   *app.RunOptions
	watchOpts *app.RunOptions
	planOpts  *app.PlanOptions
	cleaned   bool
	err       error
}

func (m *mockApp) Run(_ context.Context, opts app.RunOptions) error {
	m.runOpts = &opts
	return m.err
}

func (m *mockApp) Watch(_ context.Context, opts app.RunOptions) error {
	m.watchOpts = &opts
	return m.err
}

func (m *mockApp) Plan(_ context.Context, opts app.PlanOptions) error {
	m.planOpts = &opts
	return m.err
}

func (m *mockApp) Clean(_ context.Context) error {
	m.cleaned = true
	return m.err
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Run(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run")
		require.NoError(t, err)
		require.NotNil(t, m.runOpts)
		assert.Equal(t, app.RunOptions{OutputMode: "auto"}, *m.runOpts)
	})

	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run", "-n", "-v", "--no-cache", "-o", "overwrite", "-c", "sub/tape.yaml")
		require.NoError(t, err)
		require.NotNil(t, m.runOpts)
		assert.Equal(t, app.RunOptions{
			Config:     "sub/tape.yaml",
			DryRun:     true,
			Verbose:    true,
			NoCache:    true,
			OutputMode: "overwrite",
		}, *m.runOpts)
	})

	t.Run("ci forces scroll", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run", "--ci", "--output-mode", "overwrite")
		require.NoError(t, err)
		assert.Equal(t, "scroll", m.runOpts.OutputMode)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "run")
		require.ErrorContains(t, err, "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "run", "extra")
		require.Error(t, err)
		assert.Nil(t, m.runOpts)
	})
}

func TestCommands_Watch(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "watch", "--verbose", "--config", "proj")
	require.NoError(t, err)
	require.NotNil(t, m.watchOpts)
	assert.Equal(t, app.RunOptions{Config: "proj", Verbose: true, OutputMode: "auto"}, *m.watchOpts)

	_, err = execute(t, &mockApp{}, "watch", "--dry-run")
	require.Error(t, err)
}

func TestCommands_Plan(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "plan", "-c", "proj/tape.yaml")
	require.NoError(t, err)
	require.NotNil(t, m.planOpts)
	assert.Equal(t, "proj/tape.yaml", m.planOpts.Config)
}

func TestCommands_Clean(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "clean")
	require.NoError(t, err)
	assert.True(t, m.cleaned)
}

func TestCommands_JSONLogs(t *testing.T) {
	var json bool
	cli := commands.New(&mockApp{}, commands.WithJSONLogs(func(on bool) { json = on }))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"--json-logs", "clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, json)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tape version "+build.Version)
	assert.Contains(t, out, build.Commit)

	out, err = execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}
