package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/tape/internal/adapters/watcher"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/tape/internal/core/ports"
)

func collect(w *watcher.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent, 32)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func waitFor(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "events closed before %s was reported", path)
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), domain.DirPerm))

	w, err := watcher.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(t.Context(), root))
	events := collect(w)

	file := filepath.Join(root, "src", "main.c")
	require.NoError(t, os.WriteFile(file, []byte("int main;"), domain.FilePerm))
	waitFor(t, events, file)

	nested := filepath.Join(root, "gen")
	require.NoError(t, os.Mkdir(nested, domain.DirPerm))
	ev := waitFor(t, events, nested)
	require.Equal(t, ports.OpCreate, ev.Operation)

	// Directories created after Start are watched too.
	require.Eventually(t, func() bool {
		inner := filepath.Join(nested, "out.h")
		if err := os.WriteFile(inner, []byte("x"), domain.FilePerm); err != nil {
			return false
		}
		select {
		case ev := <-events:
			return ev.Path == inner
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	w, err := watcher.New(nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(t.Context(), t.TempDir()))

	events := collect(w)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events not closed after Stop")
	}
}

func TestWatcher_StartMissingRoot(t *testing.T) {
	w, err := watcher.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(t.Context(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrWatcherAddFailed.Error())
}
