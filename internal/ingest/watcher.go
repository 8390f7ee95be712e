package ingest

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period a burst of export-file events must
// observe before an ingestion run fires. Device exports arrive as a
// sequence of small writes; the debounce collapses them into one pass.
const DefaultDebounce = 300 * time.Millisecond

// watchState tracks where the watcher sits in its debounce cycle.
type watchState int

const (
	stateIdle watchState = iota
	stateDebouncing
)

// Watcher observes the export directory and triggers the ingestion run
// after each debounced burst of matching file events. Only one debounce
// timer is live at a time; a new event cancels and restarts it.
type Watcher struct {
	dir      string
	debounce time.Duration
	run      func() error
	log      *slog.Logger

	mu    sync.Mutex
	state watchState
	timer *time.Timer

	fsw  *fsnotify.Watcher
	done chan struct{}
}

func NewWatcher(dir string, debounce time.Duration, run func() error, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		run:      run,
		log:      log,
	}
}

// Start registers the directory watch and begins handling events on a
// background goroutine until Stop is called.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	go w.loop()

	w.log.Info("watching export directory", "dir", w.dir, "debounce", w.debounce)
	return nil
}

// Stop tears down the directory watch and cancels any pending trigger.
func (w *Watcher) Stop() {
	if w.fsw == nil {
		return
	}
	w.fsw.Close()
	<-w.done

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.state = stateIdle
	w.mu.Unlock()
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			name := filepath.Base(ev.Name)
			if !MatchesExportName(name) {
				continue
			}
			w.bump(name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// bump arms or re-arms the debounce timer, so a burst of writes ends in
// exactly one ingestion run after the quiet period.
func (w *Watcher) bump(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == stateDebouncing && w.timer != nil {
		w.timer.Stop()
	}
	w.state = stateDebouncing
	w.timer = time.AfterFunc(w.debounce, w.fire)
	w.log.Debug("export file changed", "file", name)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	w.state = stateIdle
	w.mu.Unlock()

	if err := w.run(); err != nil {
		w.log.Error("ingestion run failed", "error", err)
	}
}
