// layout-test is a testbed for the box layout engine. It shows builtin
// scenarios, TOML layout files or Lua layout scripts in the terminal, or
// renders one of them to a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/config"
	"github.com/drake/dwbox/debug"
	"github.com/drake/dwbox/event"
	"github.com/drake/dwbox/lua"
	"github.com/drake/dwbox/ui/snapshot"
	"github.com/drake/dwbox/ui/tui"
	"github.com/drake/dwbox/ui/tui/widget"
	"github.com/drake/dwbox/window"
)

// thumbSize bounds both sides of a -thumb image.
const thumbSize = 320

func main() {
	scenario := flag.String("scenario", "default", "Builtin scenario shown first (default, nested, toolbar)")
	file := flag.String("file", "", "TOML layout file")
	script := flag.String("script", "", "Lua layout script")
	pngOut := flag.String("png", "", "Render to this PNG file, or - for stdout, instead of the terminal")
	size := flag.String("size", "", "Window size for -png, WxH (default from the layout, else 80x24)")
	scale := flag.Float64("scale", 8, "Pixels per layout unit for -png")
	thumb := flag.String("thumb", "", "Also write a thumbnail of the -png output to this file")
	watch := flag.Bool("watch", true, "Reload -file and -script when they change")
	flag.Parse()

	logger := debug.Logger()

	scenarios, defW, defH, err := loadScenarios(*scenario, *file, *script, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *pngOut == "" {
		if err := runTUI(scenarios, *scenario, *file, *script, *watch, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := defW, defH
	if *size != "" {
		if width, height, err = parseSize(*size); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := renderPNG(scenarios[0], width, height, *scale, *pngOut, *thumb, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI shows the scenarios in the terminal until the user quits or the
// process gets SIGTERM. With watch set, edits to the layout file or script
// replace the scenarios on screen.
func runTUI(scenarios []tui.Scenario, first, file, script string, watch bool, logger *log.Logger) error {
	program := tui.NewProgram(tui.NewModel(scenarios, tui.WithAnimation(true), tui.WithLogger(logger)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	go func() {
		select {
		case <-ctx.Done():
			program.Quit()
		case <-program.Done():
		}
	}()

	if watch {
		var paths []string
		for _, p := range []string{file, script} {
			if p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			load := func() ([]tui.Scenario, error) {
				sc, _, _, err := loadScenarios(first, file, script, logger)
				return sc, err
			}
			w, err := newWatcher(paths, load, program.Send, logger)
			if err != nil {
				return err
			}
			go func() {
				if err := w.run(ctx, program.Done()); err != nil {
					logger.Printf("[ERROR] %v", err)
				}
			}()
		}
	}

	return program.Run()
}

// loadScenarios picks what to show. A -file or -script replaces the
// builtins; with neither, a layout.toml or layout.lua in the config
// directory is shown before them.
func loadScenarios(first, file, script string, logger *log.Logger) ([]tui.Scenario, int, int, error) {
	width, height := 80, 24
	var scenarios []tui.Scenario

	if file == "" && script == "" {
		file, script = config.Sources()
		builtin, err := builtinScenarios(first)
		if err != nil {
			return nil, 0, 0, err
		}
		scenarios = builtin
	}

	if script != "" {
		sc, w, h, err := scriptScenario(script, logger)
		if err != nil {
			return nil, 0, 0, err
		}
		if w > 0 && h > 0 {
			width, height = w, h
		}
		scenarios = append([]tui.Scenario{sc}, scenarios...)
	}
	if file != "" {
		f, err := config.Load(file)
		if err != nil {
			return nil, 0, 0, err
		}
		if f.Window.Width > 0 && f.Window.Height > 0 {
			width, height = f.Window.Width, f.Window.Height
		}
		scenarios = append([]tui.Scenario{fileScenario(file, f)}, scenarios...)
	}
	return scenarios, width, height, nil
}

func fileScenario(path string, f *config.File) tui.Scenario {
	return tui.Scenario{
		Name: path,
		Build: func() (*box.Box, error) {
			root, _, err := f.Build(widget.New)
			return root, err
		},
	}
}

// scriptScenario runs the script once up front to report errors and read
// dw.size, then again on every Build so each build gets fresh widgets.
func scriptScenario(path string, logger *log.Logger) (tui.Scenario, int, int, error) {
	engine := lua.NewEngine(&host{logger: logger})
	build := func() (*box.Box, error) {
		if err := engine.Init(); err != nil {
			return nil, err
		}
		if err := engine.DoFile(path); err != nil {
			return nil, err
		}
		if engine.Root() == nil {
			return nil, fmt.Errorf("%s: script did not call dw.root", path)
		}
		return engine.Root(), nil
	}
	if _, err := build(); err != nil {
		return tui.Scenario{}, 0, 0, err
	}
	w, h := engine.Size()
	return tui.Scenario{Name: path, Build: build}, w, h, nil
}

// host creates terminal widgets for Lua scripts.
type host struct {
	logger *log.Logger
}

func (h *host) NewWidget(kind, name, text string) box.Widget {
	return widget.New(kind, name, text)
}

func (h *host) Print(text string) {
	h.logger.Println("[LUA] " + text)
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, want positive WxH", s)
	}
	return w, h, nil
}

// renderPNG lays out the scenario through a window loop and saves the
// result. An out of "-" writes the PNG to stdout.
func renderPNG(sc tui.Scenario, width, height int, scale float64, out, thumb string, stdout io.Writer, logger *log.Logger) error {
	root, err := sc.Build()
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	r := snapshot.NewRenderer(width, height, scale)
	win := window.New(root, r, window.WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	debug.NewMonitor(ctx, win).Start()

	result := make(chan event.Event, 1)
	win.Events().Connect(event.Configure, func(ev event.Event) bool {
		result <- ev
		return true
	})

	go win.Run(ctx)
	if err := win.Resize(width, height); err != nil {
		return err
	}

	var ev event.Event
	select {
	case ev = <-result:
	case <-ctx.Done():
		return fmt.Errorf("layout did not finish: %w", ctx.Err())
	}
	win.Close()
	<-win.Done()

	if ev.Err != nil {
		return ev.Err
	}
	debug.Dump(logger, root, ev.Layout)
	if ev.Layout.Skipped {
		return errors.New("layout skipped: the root has nothing to expand")
	}
	if out == "-" {
		if err := r.Encode(stdout); err != nil {
			return err
		}
	} else if err := r.SavePNG(out); err != nil {
		return err
	}
	if thumb != "" {
		return r.SaveThumbnail(thumb, thumbSize, thumbSize)
	}
	return nil
}
