package tui

import (
	"strings"
	"testing"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
	"github.com/drake/dwbox/ui/tui/style"
	"github.com/drake/dwbox/ui/tui/widget"
)

type leaf string

func (l leaf) Name() string { return string(l) }

func TestCanvasLabel(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Place(widget.NewLabel("l", "hi"), box.Rect{X: 1, Y: 1, Width: 5, Height: 1})

	lines := c.Lines()
	if lines[1] != " hi       " {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[0] != strings.Repeat(" ", 10) {
		t.Errorf("line 0 = %q, want blank", lines[0])
	}
}

func TestCanvasFrame(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Place(widget.NewFrame("f", "ab"), box.Rect{Width: 6, Height: 3})

	want := []string{
		"┌ab──┐    ",
		"│    │    ",
		"└────┘    ",
	}
	for i, line := range c.Lines() {
		if line != want[i] {
			t.Errorf("line %d = %q, want %q", i, line, want[i])
		}
	}
}

func TestCanvasFrameDrawnUnderChildren(t *testing.T) {
	root := box.NewVBox(1)
	root.SetHandle(widget.NewFrame("frame", ""))
	root.PackEnd(widget.NewLabel("body", "x"), box.Hints{Width: box.Auto, Height: box.Auto, HSize: box.Expand, VSize: box.Expand})

	c := NewCanvas(5, 3)
	if _, err := box.Resize(root, 5, 3, c); err != nil {
		t.Fatal(err)
	}
	want := "┌───┐\n│x  │\n└───┘"
	if got := c.String(); got != want {
		t.Errorf("canvas =\n%s\nwant\n%s", got, want)
	}
}

func TestCanvasPercent(t *testing.T) {
	c := NewCanvas(4, 1)
	bar := percent.NewControl("p", 10)
	bar.SetPos(5)
	c.Place(bar, box.Rect{Width: 4, Height: 1})
	if got := c.String(); got != "██░░" {
		t.Errorf("bar = %q, want %q", got, "██░░")
	}
}

func TestCanvasButtonAndUnknown(t *testing.T) {
	c := NewCanvas(12, 2)
	c.Place(widget.NewButton("b", "OK"), box.Rect{Width: 8, Height: 1})
	c.Place(leaf("thing"), box.Rect{Y: 1, Width: 12, Height: 1})

	lines := c.Lines()
	if lines[0] != " [ OK ]     " {
		t.Errorf("button line = %q", lines[0])
	}
	if lines[1] != "thing       " {
		t.Errorf("unknown line = %q", lines[1])
	}
}

func TestCanvasClips(t *testing.T) {
	c := NewCanvas(10, 1)
	l := widget.NewLabel("l", "hello")
	c.Place(l, box.Rect{X: 8, Width: 5, Height: 1})
	if got := c.String(); got != "        he" {
		t.Errorf("clipped = %q", got)
	}

	// The recorded rect is unclipped.
	if r, ok := c.Rect(l); !ok || r.Width != 5 {
		t.Errorf("Rect = %v, %v", r, ok)
	}
}

func TestCanvasRenderKeepsText(t *testing.T) {
	c := NewCanvas(6, 1)
	c.Place(widget.NewLabel("l", "abc"), box.Rect{Width: 3, Height: 1})

	out := c.Render(style.DefaultStyles())
	if !strings.Contains(out, "abc") {
		t.Errorf("Render() = %q, want it to contain the label", out)
	}
}

func TestCanvasReset(t *testing.T) {
	c := NewCanvas(3, 1)
	l := widget.NewLabel("l", "abc")
	c.Place(l, box.Rect{Width: 3, Height: 1})
	c.Reset(2, 2)

	if w, h := c.Size(); w != 2 || h != 2 {
		t.Errorf("Size() = %dx%d, want 2x2", w, h)
	}
	if _, ok := c.Rect(l); ok {
		t.Error("Reset kept placements")
	}
	if got := c.String(); got != "  \n  " {
		t.Errorf("canvas = %q, want blank", got)
	}
}
