package assets

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

var ErrWatcherClosed = errors.New("assets: watcher closed")

// Watcher reports changes to individual files. Notifications are collected in
// the background and handed to callbacks by Dispatch, on the caller's
// goroutine, so callbacks may touch the GL context.
type Watcher struct {
	fs  *fsnotify.Watcher
	log *slog.Logger

	mu       sync.Mutex
	handlers map[string][]func()
	dirs     map[string]bool
	pending  map[string]bool
	closed   bool

	done chan struct{}
	wg   sync.WaitGroup
}

func NewWatcher(log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	w := &Watcher{
		fs:       fsw,
		log:      log,
		handlers: make(map[string][]func()),
		dirs:     make(map[string]bool),
		pending:  make(map[string]bool),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch calls onChange from Dispatch after path is written or replaced. The
// parent directory is watched so that editors that save by rename are seen.
func (w *Watcher) Watch(path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("assets: watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.handlers[abs] = append(w.handlers[abs], onChange)
	w.log.Debug("watching asset", "path", abs)
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			w.mu.Lock()
			if _, watched := w.handlers[name]; watched {
				w.pending[name] = true
			}
			w.mu.Unlock()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("asset watcher error", "err", err)
		}
	}
}

// Dispatch runs the callbacks of every file changed since the last call and
// returns how many files changed.
func (w *Watcher) Dispatch() int {
	w.mu.Lock()
	var calls []func()
	n := 0
	for name := range w.pending {
		calls = append(calls, w.handlers[name]...)
		delete(w.pending, name)
		n++
		w.log.Info("asset changed", "path", name)
	}
	w.mu.Unlock()

	for _, fn := range calls {
		fn()
	}
	return n
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
