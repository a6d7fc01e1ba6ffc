// Package watcher re-runs generation when binding sources change.
package watcher

import (
	"context"
	"goforeigner/internal/logger"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Filter reports whether a changed file should trigger a run.
type Filter func(path string) bool

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	filter    Filter
	onChange  func([]string)

	callbackMu sync.Mutex
	pendingMu  sync.Mutex
	pending    map[string]struct{}
	timer      *time.Timer
}

func New(debounce time.Duration, filter Filter, onChange func([]string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	if filter == nil {
		filter = func(string) bool { return true }
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		filter:    filter,
		onChange:  onChange,
		pending:   make(map[string]struct{}),
	}, nil
}

// Add watches root and every directory below it.
func (w *Watcher) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.fsWatcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

// Run delivers debounced change batches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				logger.Warn("Could not watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.filter(event.Name) {
		return
	}
	logger.Debug("Source changed", "path", event.Name, "op", event.Op.String())
	w.schedule(event.Name)
}

func (w *Watcher) schedule(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *Watcher) stopTimer() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) Close() error {
	w.stopTimer()
	return w.fsWatcher.Close()
}
