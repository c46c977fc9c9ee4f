// Package debug provides runtime monitoring and layout diagnostics.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/drake/dwbox/box"
)

// Enabled returns true if debug mode is active (DWBOX_DEBUG=1).
func Enabled() bool {
	return os.Getenv("DWBOX_DEBUG") == "1"
}

// Logger returns a stderr logger when debug mode is active, and a logger
// that discards everything otherwise.
func Logger() *log.Logger {
	if !Enabled() {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", log.LstdFlags)
}

// Dump logs the geometry of every box and placed widget of a layout.
func Dump(logger *log.Logger, root *box.Box, l *box.Layout) {
	if l == nil {
		logger.Println("[DEBUG] layout: none")
		return
	}
	if l.Skipped {
		logger.Printf("[DEBUG] layout %dx%d skipped (no expandable content)", l.Width, l.Height)
		return
	}
	logger.Printf("[DEBUG] layout %dx%d", l.Width, l.Height)
	for _, line := range Tree(root, l) {
		logger.Println("[DEBUG]   " + line)
	}
}

// Tree renders the box tree with the state computed by l, one line per
// box or leaf.
func Tree(root *box.Box, l *box.Layout) []string {
	var lines []string
	var walk func(b *box.Box, depth int)
	walk = func(b *box.Box, depth int) {
		indent := strings.Repeat("  ", depth)
		st, _ := l.State(b)
		// Footprint of the sizes the items actually got.
		cw, _, _ := box.CountSize(b, box.Horizontal)
		ch, _, _ := box.CountSize(b, box.Vertical)
		lines = append(lines, fmt.Sprintf("%s%s pad=%d rect=%v natural=%dx%d up=%dx%d counted=%dx%d ratio=%.3f,%.3f",
			indent, b.Orientation(), b.Pad(), st.Rect,
			st.MinWidth, st.MinHeight, st.UpX, st.UpY, cw, ch, st.XRatio, st.YRatio))
		for _, it := range b.Items() {
			if it.Box() != nil {
				walk(it.Box(), depth+1)
				continue
			}
			h := it.Hints()
			r, ok := l.WidgetRect(it.Widget())
			where := "unplaced"
			if ok {
				where = r.String()
			}
			lines = append(lines, fmt.Sprintf("%s  %s %s h=%s v=%s pad=%d",
				indent, it.Widget().Name(), where, h.HSize, h.VSize, h.Pad))
		}
	}
	walk(root, 0)
	return lines
}
