package backend

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/popup-menu/internal/logging/events"
	"github.com/atomicstack/popup-menu/internal/menu"
)

// Event carries a reloaded menu definition or the error hit while reloading.
type Event struct {
	Path       string
	Definition menu.Definition
	Err        error
}

// Watcher polls a menu definition file and publishes a reload whenever its
// modification time or size changes.
type Watcher struct {
	path     string
	interval time.Duration
	load     func(string) (menu.Definition, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path, checking every interval.
func NewWatcher(path string, interval time.Duration) *Watcher {
	return newWatcher(path, interval, menu.LoadFile)
}

func newWatcher(path string, interval time.Duration, load func(string) (menu.Definition, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		load:     load,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current check; use
// Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

type fileStamp struct {
	modTime time.Time
	size    int64
	missing bool
}

func stampOf(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{missing: true}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	// editors tend to write in bursts; settle before reloading
	throttle := newThrottle(w.interval)
	last := stampOf(w.path)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		current := stampOf(w.path)
		if current == last {
			continue
		}
		last = current
		if !throttle.wait(w.ctx) {
			return
		}
		if !w.emit() {
			return
		}
		last = stampOf(w.path)
	}
}

func (w *Watcher) emit() bool {
	def, err := w.load(w.path)
	if err != nil {
		events.Watch.Error(w.path, err)
	} else {
		events.Watch.Reload(w.path, len(def.Items))
	}
	evt := Event{Path: w.path, Definition: def, Err: err}
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
