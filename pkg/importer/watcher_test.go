package importer

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"mapforge/strata/internal/vmftest"
)

func TestNewWatcherValidation(t *testing.T) {
	if _, err := NewWatcher(nil, nil); err == nil {
		t.Error("NewWatcher(nil) error = nil, want error")
	}
	if _, err := NewWatcher(&WatcherConfig{}, nil); err == nil {
		t.Error("NewWatcher(empty path) error = nil, want error")
	}
}

func TestDefaultWatcherConfig(t *testing.T) {
	config := DefaultWatcherConfig("maps")

	if config.Path != "maps" {
		t.Errorf("config.Path = %q, want maps", config.Path)
	}
	if config.Debounce != 250*time.Millisecond {
		t.Errorf("config.Debounce = %v, want 250ms", config.Debounce)
	}
	if len(config.Extensions) != 1 || config.Extensions[0] != ".vmf" {
		t.Errorf("config.Extensions = %v, want [.vmf]", config.Extensions)
	}
}

func TestWatchSingleFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "arena.vmf")
	if err := os.WriteFile(tmpFile, []byte(vmftest.BasicWorld()), 0o644); err != nil {
		t.Fatal(err)
	}

	config := DefaultWatcherConfig(tmpFile)
	config.Debounce = 50 * time.Millisecond

	watcher, err := NewWatcher(config, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	changed := make(chan string, 10)
	onChange := func(path string) error {
		select {
		case changed <- path:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, onChange)
	}()

	// Give the watch loop time to register the path.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(tmpFile, []byte(vmftest.GroupedWorld()), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if path != tmpFile {
			t.Errorf("onChange path = %q, want %q", path, tmpFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("onChange not called after file modification")
	}
}

func TestWatchDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	config := DefaultWatcherConfig(tmpDir)
	config.Debounce = 50 * time.Millisecond

	watcher, err := NewWatcher(config, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	changed := make(chan string, 10)
	onChange := func(path string) error {
		select {
		case changed <- path:
		default:
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, onChange)
	}()

	time.Sleep(100 * time.Millisecond)

	newFile := filepath.Join(tmpDir, "arena.vmf")
	if err := os.WriteFile(newFile, []byte(vmftest.BasicWorld()), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if path != newFile {
			t.Errorf("onChange path = %q, want %q", path, newFile)
		}
	case <-time.After(2 * time.Second):
		t.Error("onChange not called after creating map in watched directory")
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "arena.vmf")
	if err := os.WriteFile(tmpFile, []byte(vmftest.BasicWorld()), 0o644); err != nil {
		t.Fatal(err)
	}

	config := DefaultWatcherConfig(tmpFile)
	config.Debounce = 200 * time.Millisecond

	watcher, err := NewWatcher(config, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	var imports atomic.Int32
	onChange := func(string) error {
		imports.Add(1)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, onChange)
	}()

	time.Sleep(100 * time.Millisecond)

	// Rapid writes inside the debounce window, like an editor saving in
	// chunks.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte(vmftest.BasicWorld()), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(30 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)

	count := imports.Load()
	if count == 0 {
		t.Error("onChange was never called")
	}
	if count > 2 {
		t.Errorf("onChange called %d times, want <= 2 after debouncing", count)
	}
}

func TestWatcherStop(t *testing.T) {
	watcher, err := NewWatcher(DefaultWatcherConfig(t.TempDir()), discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, func(string) error { return nil })
	}()

	time.Sleep(50 * time.Millisecond)

	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}

	watcher.mu.Lock()
	running := watcher.running
	watcher.mu.Unlock()
	if running {
		t.Error("watcher still running after Stop()")
	}
}

func TestWatcherDoubleWatch(t *testing.T) {
	watcher, err := NewWatcher(DefaultWatcherConfig(t.TempDir()), discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Watch(ctx, func(string) error { return nil })
	}()

	time.Sleep(50 * time.Millisecond)

	if err := watcher.Watch(ctx, func(string) error { return nil }); err == nil {
		t.Error("second Watch() error = nil, want already-running error")
	}
}

func TestShouldProcess(t *testing.T) {
	watcher, err := NewWatcher(DefaultWatcherConfig(t.TempDir()), discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = watcher.watcher.Close() }()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"vmf write", fsnotify.Event{Name: "maps/arena.vmf", Op: fsnotify.Write}, true},
		{"vmf create", fsnotify.Event{Name: "maps/arena.vmf", Op: fsnotify.Create}, true},
		{"uppercase extension", fsnotify.Event{Name: "maps/ARENA.VMF", Op: fsnotify.Write}, true},
		{"chmod ignored", fsnotify.Event{Name: "maps/arena.vmf", Op: fsnotify.Chmod}, false},
		{"wrong extension", fsnotify.Event{Name: "maps/arena.txt", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "maps/.arena.vmf.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watcher.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%q, %v) = %v, want %v", tt.event.Name, tt.event.Op, got, tt.want)
			}
		})
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)
	defer debouncer.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		debouncer.Trigger(func() { calls.Add(1) })
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	if count := calls.Load(); count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}

func TestDebouncerLastCallbackWins(t *testing.T) {
	debouncer := NewDebouncer(50 * time.Millisecond)
	defer debouncer.Stop()

	got := make(chan string, 1)
	debouncer.Trigger(func() { got <- "first" })
	debouncer.Trigger(func() { got <- "second" })

	select {
	case name := <-got:
		if name != "second" {
			t.Errorf("callback = %q, want second", name)
		}
	case <-time.After(time.Second):
		t.Fatal("no callback ran")
	}
}

func TestDebouncerStop(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)

	var calls atomic.Int32
	debouncer.Trigger(func() { calls.Add(1) })
	debouncer.Stop()

	time.Sleep(200 * time.Millisecond)

	if count := calls.Load(); count != 0 {
		t.Errorf("callback ran %d times after Stop(), want 0", count)
	}
}
