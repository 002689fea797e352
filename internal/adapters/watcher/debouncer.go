// Package watcher reports filesystem changes for tape watch.
package watcher

import (
	"slices"
	"sync"
	"time"
)

// DefaultWindow is the quiet period after the last change before a rerun.
const DefaultWindow = 150 * time.Millisecond

// Debouncer collects changed paths and hands them over once no new path
// arrived for a full window.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	notify  func(paths []string)
	pending map[string]struct{}
	timer   *time.Timer
}

// NewDebouncer creates a Debouncer calling notify with the sorted, distinct
// paths of each burst. A nil notify discards bursts.
func NewDebouncer(window time.Duration, notify func(paths []string)) *Debouncer {
	return &Debouncer{
		window:  window,
		notify:  notify,
		pending: make(map[string]struct{}),
	}
}

// Add records path and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	paths := d.take()
	if len(paths) > 0 && d.notify != nil {
		d.notify(paths)
	}
}

// Flush delivers the pending burst now and waits for notify to return.
// It is a no-op when the window already elapsed.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	d.fire()
}

// Stop drops the pending burst.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

func (d *Debouncer) take() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.timer = nil
	if len(d.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	clear(d.pending)
	slices.Sort(paths)
	return paths
}
