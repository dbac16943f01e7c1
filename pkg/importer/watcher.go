package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mapforge/strata/pkg/telemetry/logging"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Path is the map file or directory to watch. Directories are watched
	// recursively.
	Path string

	// Debounce is the quiet period before a change triggers an import.
	// Editors save maps in several writes; the debounce collapses them
	// into one import. Default: 250ms.
	Debounce time.Duration

	// Extensions lists the file extensions that trigger imports.
	// Default: [".vmf"].
	Extensions []string
}

// DefaultWatcherConfig watches path for .vmf changes with a 250ms debounce.
func DefaultWatcherConfig(path string) *WatcherConfig {
	return &WatcherConfig{
		Path:       path,
		Debounce:   250 * time.Millisecond,
		Extensions: []string{".vmf"},
	}
}

// Watcher re-imports map sources when they change on disk. Hidden files and
// directories are always skipped; editors drop temp dotfiles next to the map
// while saving.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   *WatcherConfig
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the configured path.
func NewWatcher(config *WatcherConfig, logger *slog.Logger) (*Watcher, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Path == "" {
		return nil, fmt.Errorf("watch path cannot be empty")
	}
	if config.Debounce <= 0 {
		config.Debounce = 250 * time.Millisecond
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".vmf"}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		config:   config,
		logger:   logging.Component(logger, "importer.watcher"),
		debounce: NewDebouncer(config.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing change events until the context is cancelled or
// Stop is called. onChange receives the path of the changed file; its error
// is logged, not returned, so one bad save does not end the watch.
func (w *Watcher) Watch(ctx context.Context, onChange func(path string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("watching for map changes",
		"path", w.config.Path,
		"debounce", w.config.Debounce,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped", "reason", "context cancelled")
			return nil

		case <-w.stopCh:
			w.logger.Info("watch stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("map change detected", "path", event.Name, "op", event.Op.String())

			// Last event wins: a burst of writes imports the final state.
			changed := event.Name
			w.debounce.Trigger(func() {
				w.logger.Info("reimporting changed map", "path", changed)
				if err := onChange(changed); err != nil {
					w.logger.Error("reimport failed", "path", changed, "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Stop ends the watch and waits for Watch to return. Safe to call once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.debounce.Stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(filepath.Base(p), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		// fsnotify watches directories; file events arrive through them.
		if info.IsDir() {
			if err := w.watcher.Add(p); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", p, err)
			}
		}
		return nil
	})
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, want := range w.config.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// Debouncer coalesces rapid triggers into one callback after a quiet period.
// The last callback passed to Trigger wins.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger arms the debouncer. callback runs after the quiet period unless a
// newer trigger replaces it first.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}

		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()

		if cb != nil {
			cb()
		}
	})
}

// Stop cancels any pending callback. The debouncer cannot be reused after.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
