// Package watcher reloads configuration when its file changes on disk.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor write bursts into one reload.
const DefaultDebounce = 250 * time.Millisecond

// ErrWatcherClosed is returned by operations on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Handler is called with the changed path after each debounced change.
type Handler func(path string)

// Watcher monitors a single configuration file using fsnotify.
//
// The parent directory is watched rather than the file itself, so
// atomic save strategies (write temp file, rename over target) still
// produce events.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	path     string
	handler  Handler
	debounce time.Duration
	timer    *time.Timer
	closed   bool
	done     chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce interval for change events.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New starts watching path and calls handler after each debounced
// change. Close releases the watch.
func New(path string, handler Handler, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		handler:  handler,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.schedule()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event still fires.
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Name != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// schedule arms the debounce timer, restarting it if already pending.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if !closed {
			w.handler(w.path)
		}
	})
}
