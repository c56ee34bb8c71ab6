package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/richard-senior/barchart/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange once a burst of filesystem events in a directory
// has been quiet for the debounce window. Editors tend to write a file
// several times per save.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	onChange func()

	mu      sync.Mutex
	pending time.Time
}

// New watches dir for files matching pattern (a filepath.Match glob, empty
// for everything).
func New(dir, pattern string, debounce time.Duration, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		pattern:  pattern,
		debounce: debounce,
		onChange: onChange,
	}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("reload: watch %s: %w", w.dir, err)
	}
	logger.Info("watching %s for changes", w.dir)

	ticker := time.NewTicker(w.debounce / 5)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error on %s: %v", w.dir, err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if w.pattern != "" {
		if ok, _ := filepath.Match(w.pattern, filepath.Base(event.Name)); !ok {
			return
		}
	}
	logger.Debug("%s %s", event.Op, event.Name)

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	due := !w.pending.IsZero() && time.Since(w.pending) >= w.debounce
	if due {
		w.pending = time.Time{}
	}
	w.mu.Unlock()

	if due {
		w.onChange()
	}
}
