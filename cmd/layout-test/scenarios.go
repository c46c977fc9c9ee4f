package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
	"github.com/drake/dwbox/ui/tui"
	"github.com/drake/dwbox/ui/tui/widget"
)

var (
	auto  = box.Hints{Width: box.Auto, Height: box.Auto}
	fill  = box.Hints{Width: box.Auto, Height: box.Auto, HSize: box.Expand, VSize: box.Expand}
	hfill = box.Hints{Width: box.Auto, Height: 1, HSize: box.Expand}
)

// packer collects pack errors so scenario code reads top to bottom.
type packer struct {
	errs []error
}

func (p *packer) end(b *box.Box, child any, h box.Hints) {
	if err := b.PackEnd(child, h); err != nil {
		p.errs = append(p.errs, err)
	}
}

func (p *packer) err() error { return errors.Join(p.errs...) }

// framed returns a box whose handle is a titled frame, padded so children
// sit inside the border.
func framed(o box.Orientation, title string) *box.Box {
	b := box.New(o, 1)
	b.SetHandle(widget.NewFrame(title, title))
	return b
}

var builtins = map[string]func() (*box.Box, error){
	"default": defaultScenario,
	"nested":  nestedScenario,
	"toolbar": toolbarScenario,
}

// scenarioNames returns the builtin names with first moved to the front.
func scenarioNames(first string) ([]string, error) {
	if _, ok := builtins[first]; !ok {
		return nil, fmt.Errorf("unknown scenario %q", first)
	}
	names := []string{first}
	var rest []string
	for name := range builtins {
		if name != first {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...), nil
}

func builtinScenarios(first string) ([]tui.Scenario, error) {
	names, err := scenarioNames(first)
	if err != nil {
		return nil, err
	}
	scenarios := make([]tui.Scenario, len(names))
	for i, name := range names {
		scenarios[i] = tui.Scenario{Name: name, Build: builtins[name]}
	}
	return scenarios, nil
}

// defaultScenario is a framed window with a title, a sidebar next to a
// body and a progress bar at the bottom.
func defaultScenario() (*box.Box, error) {
	var p packer
	root := framed(box.Vertical, "dwbox")
	p.end(root, widget.NewLabel("title", "Dynamic box layout"), hfill)

	row := box.NewHBox(0)
	side := framed(box.Vertical, "files")
	for _, name := range []string{"open", "save", "close"} {
		p.end(side, widget.NewButton(name, name), box.Hints{Width: 12, Height: 1})
	}
	p.end(row, side, box.Hints{VSize: box.Expand})
	p.end(row, widget.NewLabel("body", "body expands both ways"), fill)
	p.end(root, row, fill)

	p.end(root, percent.NewControl("progress", 100), hfill)
	return root, p.err()
}

// nestedScenario alternates orientation four levels deep. Every level
// holds one fixed leaf and one expanding child.
func nestedScenario() (*box.Box, error) {
	var p packer
	root := box.NewVBox(0)
	parent := root
	for depth := 0; depth < 4; depth++ {
		name := fmt.Sprintf("fixed%d", depth)
		p.end(parent, widget.NewLabel(name, name), box.Hints{Width: 10, Height: 3, Pad: 1})

		o := box.Horizontal
		if parent.Orientation() == box.Horizontal {
			o = box.Vertical
		}
		child := framed(o, fmt.Sprintf("level%d", depth+1))
		p.end(parent, child, box.Hints{HSize: box.Expand, VSize: box.Expand})
		parent = child
	}
	p.end(parent, widget.NewLabel("leaf", "leaf"), fill)
	return root, p.err()
}

// toolbarScenario is a row of buttons with a spacer and a status line.
func toolbarScenario() (*box.Box, error) {
	var p packer
	root := box.NewVBox(0)

	bar := box.NewHBox(0)
	for _, name := range []string{"new", "open", "save"} {
		p.end(bar, widget.NewButton(name, name), auto)
	}
	p.end(bar, widget.NewLabel("spacer", ""), box.Hints{Width: 0, Height: 1, HSize: box.Expand})
	p.end(bar, widget.NewButton("help", "help"), auto)
	p.end(root, bar, box.Hints{HSize: box.Expand})

	p.end(root, widget.NewLabel("editor", "editor"), fill)

	status := box.NewHBox(0)
	p.end(status, widget.NewLabel("status", "ready"), hfill)
	p.end(status, percent.NewControl("load", 10), box.Hints{Width: 20, Height: 1})
	p.end(root, status, box.Hints{HSize: box.Expand})
	return root, p.err()
}
