package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"artcat/internal/config"
	"artcat/internal/logger"
)

var log = logger.ForComponent("watch")

// Watcher reruns the inventory pipeline when artifact files change
// under the configured roots. Events are debounced so one save, one
// rescan.
type Watcher struct {
	cfg       config.WatchConfig
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	onChange  func(paths []string)
	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
}

func New(cfg config.WatchConfig, onChange func(paths []string)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:       cfg,
		fsWatcher: fsWatcher,
		onChange:  onChange,
	}
	w.debouncer = NewDebouncer(time.Duration(cfg.DebounceWindow), cfg.MaxBatchSize, w.flush)

	return w, nil
}

// AddRoot watches path and every non-ignored directory beneath it. A
// missing root is skipped silently, mirroring the scanner.
func (w *Watcher) AddRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		log.Debug("watch root absent, skipping", "path", path)
		return nil
	}

	if !info.IsDir() {
		path = filepath.Dir(path)
	}

	if err := w.fsWatcher.Add(path); err != nil {
		return err
	}
	log.Info("watching root", "path", path)

	return w.walkAndAdd(path)
}

func (w *Watcher) walkAndAdd(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fullPath := filepath.Join(path, entry.Name())
		if w.shouldIgnore(fullPath) {
			continue
		}
		if err := w.fsWatcher.Add(fullPath); err != nil {
			log.Debug("failed to watch directory", "path", fullPath, "error", err)
			continue
		}
		w.walkAndAdd(fullPath)
	}

	return nil
}

func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	go w.handleEvents(ctx)
}

func (w *Watcher) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldIgnore(event.Name) {
					if err := w.fsWatcher.Add(event.Name); err == nil {
						w.walkAndAdd(event.Name)
					}
				}
			}

			if w.shouldIgnore(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.debouncer.Add(FileEvent{Path: event.Name, Timestamp: time.Now()})

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) flush(events []FileEvent) {
	paths := make([]string, 0, len(events))
	for _, event := range events {
		paths = append(paths, event.Path)
	}

	log.Info("change batch flushed", "count", len(paths))
	if w.onChange != nil {
		w.onChange(paths)
	}
}

func (w *Watcher) shouldIgnore(path string) bool {
	basename := filepath.Base(path)
	if strings.HasPrefix(basename, ".") {
		return true
	}

	for _, pattern := range w.cfg.IgnorePatterns {
		if match, _ := doublestar.Match(pattern, filepath.ToSlash(path)); match {
			return true
		}
	}

	return false
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	w.debouncer.Stop()
	return w.fsWatcher.Close()
}
