package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DropWatcher = (*Watcher)(nil)

const defaultDebounce = 400 * time.Millisecond

// ErrAlreadyWatching is returned when Watch is called on a busy watcher.
var ErrAlreadyWatching = errors.New("watcher already running")

// Watcher reports accepted files created in a drop folder.
// Bursts of events for one path are debounced into a single callback.
type Watcher struct {
	debounce time.Duration

	mu      sync.Mutex
	running bool
	timers  map[string]*time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long a path must be quiet before it is reported.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// NewWatcher creates a watcher.
func NewWatcher(opts ...WatcherOption) *Watcher {
	w := &Watcher{
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks until ctx is cancelled or Close is called.
// The directory is created if it does not exist.
func (w *Watcher) Watch(ctx context.Context, dir string, onFile func(path string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyWatching
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.running = false
		w.mu.Unlock()
	}()

	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return err
	}
	logger.Debug("files: watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, onFile)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Debug("files: watcher error: %v", err)
		}
	}
}

// Close stops a running Watch.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return nil
}

func (w *Watcher) handleEvent(ev fsnotify.Event, onFile func(path string)) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
			w.cancel(ev.Name)
		}
		return
	}
	if domain.KindFromExtension(ev.Name) == domain.MimeKindOther {
		return
	}
	w.schedule(ev.Name, onFile)
}

func (w *Watcher) schedule(path string, onFile func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return
		}
		logger.Debug("files: dropped %s", path)
		onFile(path)
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}
