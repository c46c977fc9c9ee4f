package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/ui/tui"
	"github.com/drake/dwbox/window"
)

// reloadDelay is how long a source must stay quiet before it is reloaded.
// Editors usually write a file in several steps.
const reloadDelay = 150 * time.Millisecond

// watcher reloads layout sources when they change on disk and hands the
// fresh scenarios to send.
type watcher struct {
	fs     *fsnotify.Watcher
	paths  map[string]bool
	load   func() ([]tui.Scenario, error)
	send   func(tea.Msg)
	logger *log.Logger
	delay  time.Duration

	// Reloads run one at a time on the window loop. The tree is unused.
	win    *window.Window
	cancel func() // pending reload; only touched on the loop goroutine
}

func newWatcher(paths []string, load func() ([]tui.Scenario, error), send func(tea.Msg), logger *log.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &watcher{
		fs:     fw,
		paths:  make(map[string]bool),
		load:   load,
		send:   send,
		logger: logger,
		delay:  reloadDelay,
	}

	// Watch directories: editors often replace a file instead of writing it.
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", p, err)
		}
		w.paths[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.win = window.New(box.NewVBox(0), box.PlacerFunc(func(box.Widget, box.Rect) {}), window.WithLogger(logger))
	return w, nil
}

// run delivers reloads until ctx is cancelled or done is closed. It
// releases the watcher when it returns.
func (w *watcher) run(ctx context.Context, done <-chan struct{}) error {
	defer w.fs.Close()

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	go w.win.Run(ctx)
	defer func() {
		w.win.Close()
		<-w.win.Done()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.paths[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.logger.Printf("[DEBUG] watch: %s %s", ev.Op, ev.Name)
			if err := w.win.Post(w.schedule); err != nil {
				return nil
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Printf("[ERROR] watch: %v", err)
		}
	}
}

// schedule restarts the quiet period before a reload.
func (w *watcher) schedule(*box.Box) error {
	if w.cancel != nil {
		w.cancel()
	}
	cancel, err := w.win.PostAfter(w.delay, w.reload)
	if err != nil {
		return err
	}
	w.cancel = cancel
	return nil
}

func (w *watcher) reload(*box.Box) error {
	w.cancel = nil
	scenarios, err := w.load()
	if err != nil {
		// Keep the error on screen until the next good save.
		w.logger.Printf("[ERROR] reload: %v", err)
		scenarios = []tui.Scenario{{
			Name:  "reload",
			Build: func() (*box.Box, error) { return nil, err },
		}}
	}
	w.send(tui.ScenariosMsg(scenarios))
	return nil
}
