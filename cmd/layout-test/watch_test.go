package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/config"
	"github.com/drake/dwbox/ui/tui"
)

const watchedLayout = `
[root]
orientation = "vertical"

[[root.items]]
widget = "%s"
hexpand = true
vexpand = true
`

func writeLayout(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// startWatcher runs a watcher on path and returns the messages it sends.
func startWatcher(t *testing.T, path string) (*watcher, <-chan tea.Msg) {
	t.Helper()
	t.Setenv(config.EnvDir, t.TempDir())

	msgs := make(chan tea.Msg, 16)
	load := func() ([]tui.Scenario, error) {
		sc, _, _, err := loadScenarios("default", path, "", quiet)
		return sc, err
	}
	w, err := newWatcher([]string{path}, load, func(m tea.Msg) { msgs <- m }, quiet)
	if err != nil {
		t.Fatal(err)
	}
	w.delay = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx, nil) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("run: %v", err)
		}
	})
	return w, msgs
}

func nextScenarios(t *testing.T, msgs <-chan tea.Msg) tui.ScenariosMsg {
	t.Helper()
	select {
	case m := <-msgs:
		sc, ok := m.(tui.ScenariosMsg)
		if !ok {
			t.Fatalf("message = %T, want tui.ScenariosMsg", m)
		}
		return sc
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
	return nil
}

func leafNames(root *box.Box) []string {
	var names []string
	root.Walk(func(b *box.Box, _ int) bool {
		for _, it := range b.Items() {
			if it.Widget() != nil {
				names = append(names, it.Widget().Name())
			}
		}
		return true
	})
	return names
}

func TestWatcherReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	writeLayout(t, path, fmt.Sprintf(watchedLayout, "body"))
	_, msgs := startWatcher(t, path)

	writeLayout(t, path, fmt.Sprintf(watchedLayout, "main"))

	// Writes may arrive as several events; the last reload wins.
	var sc tui.ScenariosMsg
	deadline := time.After(5 * time.Second)
	for {
		sc = nextScenarios(t, msgs)
		// A reload may catch the file half written.
		if root, err := sc[0].Build(); err == nil {
			if names := leafNames(root); len(names) == 1 && names[0] == "main" {
				break
			}
		}
		select {
		case <-deadline:
			t.Fatal("reloaded layout never showed main")
		default:
		}
	}
	if sc[0].Name != path {
		t.Errorf("scenario = %q, want %q", sc[0].Name, path)
	}
}

func TestWatcherReportsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	writeLayout(t, path, fmt.Sprintf(watchedLayout, "body"))
	_, msgs := startWatcher(t, path)

	writeLayout(t, path, "[root\n")

	// An empty intermediate read still builds; wait for the parse error.
	deadline := time.After(5 * time.Second)
	for {
		sc := nextScenarios(t, msgs)
		if len(sc) != 1 {
			t.Fatalf("got %d scenarios, want 1", len(sc))
		}
		if _, err := sc[0].Build(); err != nil {
			return
		}
		select {
		case <-deadline:
			t.Fatal("broken layout never reported")
		default:
		}
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	writeLayout(t, path, fmt.Sprintf(watchedLayout, "body"))
	w, msgs := startWatcher(t, path)
	w.delay = 100 * time.Millisecond

	for i := 0; i < 5; i++ {
		if err := w.win.Post(w.schedule); err != nil {
			t.Fatal(err)
		}
	}
	nextScenarios(t, msgs)

	select {
	case m := <-msgs:
		t.Errorf("second reload %T after a single burst", m)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.toml")
	writeLayout(t, path, fmt.Sprintf(watchedLayout, "body"))
	_, msgs := startWatcher(t, path)

	writeLayout(t, filepath.Join(dir, "notes.txt"), "hello")

	select {
	case m := <-msgs:
		t.Errorf("reload %T for an unrelated file", m)
	case <-time.After(200 * time.Millisecond):
	}
}
