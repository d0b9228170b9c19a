package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/tmux-popup-menu/internal/menu"
)

// Event conveys a reloaded menu definition or the error that prevented it.
type Event struct {
	Path       string
	Definition *menu.Definition
	Err        error
}

// loadDefinition is replaced in tests.
var loadDefinition = menu.Load

// Watcher reloads a menu definition file whenever it changes on disk.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	fs     *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher watches path and publishes a reload once changes have been quiet
// for interval.
// The containing directory is watched so editors that replace the file by
// rename are still seen.
func NewWatcher(path string, interval time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve menu path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		fs:       fsw,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.watch()

	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if !w.settle(w.fs.Events) {
				return
			}
			def, err := loadDefinition(w.path)
			if !w.emit(Event{Path: w.path, Definition: def, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// settle absorbs further changes to the file until it has been quiet for the
// watcher interval, so a truncate followed by a write loads once.
func (w *Watcher) settle(changes <-chan fsnotify.Event) bool {
	if w.interval <= 0 {
		return true
	}
	timer := time.NewTimer(w.interval)
	defer timer.Stop()
	for {
		select {
		case <-w.ctx.Done():
			return false
		case ev, ok := <-changes:
			if !ok {
				return false
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.interval)
		case <-timer.C:
			return true
		}
	}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
