package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
	"github.com/drake/dwbox/ui/tui/style"
	"github.com/drake/dwbox/ui/tui/util"
	"github.com/drake/dwbox/ui/tui/widget"
)

// Compile-time check that Canvas implements box.Placer
var _ box.Placer = (*Canvas)(nil)

type cellKind uint8

const (
	kindBlank cellKind = iota
	kindLabel
	kindButton
	kindFrame
	kindBarFill
	kindBarRest
	kindUnknown
)

// cell is one terminal column. A wide rune occupies its own cell and a
// following cell with r == 0.
type cell struct {
	r    rune
	kind cellKind
}

// Canvas is the terminal Placer. It draws every placed widget into a grid
// of cells clipped to its size. Later placements draw over earlier ones,
// so container frames placed before their children stay underneath.
type Canvas struct {
	width, height int
	cells         [][]cell
	rects         map[box.Widget]box.Rect
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Reset(width, height)
	return c
}

// Reset clears the canvas and changes its size.
func (c *Canvas) Reset(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		row := make([]cell, c.width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	c.rects = make(map[box.Widget]box.Rect)
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Rect returns where w was last placed.
func (c *Canvas) Rect(w box.Widget) (box.Rect, bool) {
	r, ok := c.rects[w]
	return r, ok
}

// Place implements box.Placer.
func (c *Canvas) Place(w box.Widget, r box.Rect) {
	c.rects[w] = r
	if r.Empty() {
		return
	}

	switch w := w.(type) {
	case *widget.Frame:
		c.drawFrame(r, w.Title)
	case *widget.Label:
		c.fill(r, ' ', kindLabel)
		c.put(r.X, r.Y+(r.Height-1)/2, util.Fit(w.Text, r.Width), kindLabel, r.Right())
	case *widget.Button:
		c.fill(r, ' ', kindButton)
		c.put(r.X, r.Y+(r.Height-1)/2, util.Center(w.Caption(), r.Width), kindButton, r.Right())
	case *percent.Control:
		filled := min(int(w.Fraction()*float64(r.Width)), r.Width)
		for y := r.Y; y < r.Bottom(); y++ {
			c.put(r.X, y, strings.Repeat("█", filled), kindBarFill, r.Right())
			c.put(r.X+filled, y, strings.Repeat("░", r.Width-filled), kindBarRest, r.Right())
		}
	default:
		c.fill(r, ' ', kindUnknown)
		c.put(r.X, r.Y, util.Fit(w.Name(), r.Width), kindUnknown, r.Right())
	}
}

func (c *Canvas) drawFrame(r box.Rect, title string) {
	if r.Height == 1 || r.Width == 1 {
		c.fill(r, '·', kindFrame)
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, cell{'─', kindFrame})
		c.set(x, bottom, cell{'─', kindFrame})
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, cell{'│', kindFrame})
		c.set(right, y, cell{'│', kindFrame})
	}
	c.set(r.X, r.Y, cell{'┌', kindFrame})
	c.set(right, r.Y, cell{'┐', kindFrame})
	c.set(r.X, bottom, cell{'└', kindFrame})
	c.set(right, bottom, cell{'┘', kindFrame})

	if title != "" && r.Width > 2 {
		c.put(r.X+1, r.Y, runewidth.Truncate(util.StripANSI(title), r.Width-2, ""), kindFrame, right)
	}
}

func (c *Canvas) fill(r box.Rect, ch rune, kind cellKind) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.set(x, y, cell{ch, kind})
		}
	}
}

// put writes s from column x on row y, stopping before column limit.
func (c *Canvas) put(x, y int, s string, kind cellKind, limit int) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		c.set(x, y, cell{ch, kind})
		if w == 2 {
			c.set(x+1, y, cell{0, kind})
		}
		x += w
	}
}

func (c *Canvas) set(x, y int, v cell) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = v
}

// Lines returns the unstyled rows.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var sb strings.Builder
		for _, v := range row {
			if v.r != 0 {
				sb.WriteRune(v.r)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// String returns the unstyled canvas.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Render returns the canvas with styles applied to runs of cells of the
// same kind.
func (c *Canvas) Render(s style.Styles) string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var sb, run strings.Builder
		kind := kindBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := styleFor(s, kind); ok {
				sb.WriteString(st.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for _, v := range row {
			if v.r == 0 {
				continue
			}
			if v.kind != kind {
				flush()
				kind = v.kind
			}
			run.WriteRune(v.r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(s style.Styles, k cellKind) (lipgloss.Style, bool) {
	switch k {
	case kindLabel:
		return s.Label, true
	case kindButton:
		return s.Button, true
	case kindFrame:
		return s.Frame, true
	case kindBarFill:
		return s.BarFill, true
	case kindBarRest:
		return s.BarRest, true
	case kindUnknown:
		return s.Unknown, true
	}
	return lipgloss.Style{}, false
}
