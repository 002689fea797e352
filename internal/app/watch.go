package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.trai.ch/tape/internal/adapters/watcher"
	"go.trai.ch/tape/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch replays the batch once, then again whenever the tapefile, a tracked
// dependency file or a compiled source changes. Run failures are logged and
// watching continues until ctx is done.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	if a.newWatcher == nil {
		return domain.ErrWatcherCreateFailed
	}

	tf, err := a.load(opts.Config)
	if err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	root := filepath.Dir(tf.Path)
	if err := w.Start(ctx, root); err != nil {
		return zerr.With(err, "root", root)
	}

	var tracked atomic.Pointer[map[string]struct{}]
	tracked.Store(watchSet(tf))

	rerun := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("changed: %s", strings.Join(paths, ", ")))
		select {
		case rerun <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for ev := range w.Events() {
			if _, ok := (*tracked.Load())[ev.Path]; ok {
				debouncer.Add(ev.Path)
			}
		}
	}()

	a.replayLogged(ctx, tf, opts)
	a.logger.Info(fmt.Sprintf("watching %s", root))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rerun:
			if next, err := a.load(opts.Config); err != nil {
				a.logger.Error(err)
			} else {
				tf = next
				tracked.Store(watchSet(tf))
			}
			a.replayLogged(ctx, tf, opts)
		}
	}
}

func (a *App) replayLogged(ctx context.Context, tf *domain.Tapefile, opts RunOptions) {
	start := time.Now()
	if _, err := a.replay(ctx, tf, opts); err != nil {
		a.logger.Error(zerr.With(err, "elapsed", time.Since(start).Round(time.Millisecond).String()))
	}
}

// watchSet returns the absolute paths whose changes trigger a rerun.
func watchSet(tf *domain.Tapefile) *map[string]struct{} {
	set := make(map[string]struct{})
	add := func(path string) {
		if abs, err := filepath.Abs(path); err == nil {
			set[abs] = struct{}{}
		}
	}

	add(tf.Path)
	for _, f := range tf.Depend.Files {
		add(f)
	}
	for _, step := range tf.Steps {
		if step.Compile != nil {
			for _, src := range step.Compile.Sources {
				add(src)
			}
		}
	}
	return &set
}
