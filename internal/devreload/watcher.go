package devreload

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events, such as an editor's
// write-rename-chmod sequence or a wasm rebuild, into one notification.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes below a directory tree. Newly created
// directories are watched as they appear.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
}

// NewWatcher watches root and every directory below it. onChange runs
// once per burst of events with the last path that changed.
func NewWatcher(root string, debounce time.Duration, onChange func(path string)) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsnotify: fsWatch,
		debounce: debounce,
		onChange: onChange,
	}
	if err := w.addRecursive(root); err != nil {
		fsWatch.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsnotify.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			w.handle(e)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := w.addRecursive(e.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("watch new directory", "path", e.Name, "error", err)
			}
		}
	}
	if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if strings.HasPrefix(filepath.Base(e.Name), ".") {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = e.Name
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	path := w.pending
	w.pending = ""
	w.timer = nil
	w.mu.Unlock()

	if path != "" {
		w.onChange(path)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	w.fsnotify.Close()
}
