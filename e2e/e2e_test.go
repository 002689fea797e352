//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
)

// tapeBinary is built once for all scripts.
var tapeBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "tape-e2e-*")
	if err != nil {
		panic(err)
	}

	tapeBinary = filepath.Join(tmpDir, "tape")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", tapeBinary, "./cmd/tape")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build tape binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"backdate": backdate,
		},
	})
}

// backdate sets the modification time of each file an hour into the past.
func backdate(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! backdate")
	}
	if len(args) == 0 {
		ts.Fatalf("usage: backdate file...")
	}
	past := time.Now().Add(-time.Hour)
	for _, arg := range args {
		ts.Check(os.Chtimes(ts.MkAbs(arg), past, past))
	}
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(tapeBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	return nil
}
