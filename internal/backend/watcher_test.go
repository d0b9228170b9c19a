package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

func writeMenu(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload event")
	}
	return Event{}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	writeMenu(t, path, "items:\n  - id: a\n")

	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	writeMenu(t, path, "items:\n  - id: a\n  - id: b\n")
	evt := nextEvent(t, w)
	if evt.Err != nil {
		t.Fatalf("unexpected reload error: %v", evt.Err)
	}
	if evt.Definition == nil || len(evt.Definition.Items) != 2 {
		t.Fatalf("expected two entries, got %#v", evt.Definition)
	}
	if evt.Path != path {
		t.Fatalf("expected path %q, got %q", path, evt.Path)
	}
}

func TestWatcherReportsInvalidDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	writeMenu(t, path, "items:\n  - id: a\n")

	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	writeMenu(t, path, "items:\n  - id: a\n  - id: a\n")
	evt := nextEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	writeMenu(t, path, "items:\n  - id: a\n")

	restore := loadDefinition
	t.Cleanup(func() { loadDefinition = restore })
	loads := make(chan string, 4)
	loadDefinition = func(p string) (*menu.Definition, error) {
		loads <- p
		return &menu.Definition{}, nil
	}

	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	writeMenu(t, filepath.Join(dir, "other.yaml"), "x")
	writeMenu(t, path, "items: []\n")
	nextEvent(t, w)
	if got := <-loads; got != path {
		t.Fatalf("expected load of %q, got %q", path, got)
	}
}

func TestStopClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	writeMenu(t, path, "items: []\n")
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "menu.yaml"), 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func settleWatcher(t *testing.T, interval time.Duration) *Watcher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return &Watcher{path: "/menus/menu.yaml", interval: interval, ctx: ctx, cancel: cancel}
}

func TestSettleWaitsForQuietPeriod(t *testing.T) {
	w := settleWatcher(t, 60*time.Millisecond)
	changes := make(chan fsnotify.Event)
	go func() {
		for i := 0; i < 3; i++ {
			time.Sleep(20 * time.Millisecond)
			changes <- fsnotify.Event{Name: w.path, Op: fsnotify.Write}
		}
	}()
	start := time.Now()
	if !w.settle(changes) {
		t.Fatalf("expected settle to complete")
	}
	if elapsed := time.Since(start); elapsed < 120*time.Millisecond {
		t.Fatalf("expected each change to restart the quiet period, settled after %v", elapsed)
	}
}

func TestSettleIgnoresOtherFiles(t *testing.T) {
	w := settleWatcher(t, 40*time.Millisecond)
	changes := make(chan fsnotify.Event, 4)
	for i := 0; i < 4; i++ {
		changes <- fsnotify.Event{Name: "/menus/other.yaml", Op: fsnotify.Write}
	}
	start := time.Now()
	if !w.settle(changes) {
		t.Fatalf("expected settle to complete")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("unrelated changes should not extend the quiet period, took %v", elapsed)
	}
}

func TestSettleStopsOnCancelOrClose(t *testing.T) {
	w := settleWatcher(t, time.Minute)
	closed := make(chan fsnotify.Event)
	close(closed)
	if w.settle(closed) {
		t.Fatalf("expected closed change stream to abort")
	}
	w.cancel()
	if w.settle(make(chan fsnotify.Event)) {
		t.Fatalf("expected cancelled watcher to abort")
	}
	if !settleWatcher(t, 0).settle(nil) {
		t.Fatalf("expected zero interval to settle immediately")
	}
}

func TestWatcherCoalescesBurstIntoOneReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	writeMenu(t, path, "items: []\n")

	var mu sync.Mutex
	loads := 0
	prev := loadDefinition
	t.Cleanup(func() { loadDefinition = prev })
	loadDefinition = func(string) (*menu.Definition, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		return &menu.Definition{}, nil
	}

	w, err := NewWatcher(path, 150*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writeMenu(t, path, "items: []\n")
	}
	nextEvent(t, w)
	select {
	case evt := <-w.Events():
		t.Fatalf("expected a single reload for the burst, got another: %#v", evt)
	case <-time.After(400 * time.Millisecond):
	}
	mu.Lock()
	defer mu.Unlock()
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}
