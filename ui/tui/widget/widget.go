// Package widget holds the terminal leaves a box tree can be built from.
package widget

import (
	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/ui/tui/util"
)

// Compile-time checks
var (
	_ box.Preferred = (*Label)(nil)
	_ box.Preferred = (*Button)(nil)
	_ box.Preferred = (*Frame)(nil)
)

// Label is one line of text.
type Label struct {
	name string
	Text string
}

// NewLabel creates a label showing text.
func NewLabel(name, text string) *Label {
	return &Label{name: name, Text: text}
}

func (l *Label) Name() string { return l.name }

// PreferredSize is the display width of the text on one row.
func (l *Label) PreferredSize() (int, int) {
	return max(util.VisibleLen(l.Text), 1), 1
}

// Button is a label drawn as "[ text ]".
type Button struct {
	name string
	Text string
}

// NewButton creates a button with the given caption.
func NewButton(name, text string) *Button {
	return &Button{name: name, Text: text}
}

func (b *Button) Name() string { return b.name }

// PreferredSize adds the brackets and inner spaces to the caption width.
func (b *Button) PreferredSize() (int, int) {
	return util.VisibleLen(b.Text) + 4, 1
}

// Caption returns the text as it is drawn.
func (b *Button) Caption() string { return "[ " + b.Text + " ]" }

// Frame is a bordered container used as a box handle. Title is drawn in
// the top border.
type Frame struct {
	name  string
	Title string
}

// NewFrame creates a frame.
func NewFrame(name, title string) *Frame {
	return &Frame{name: name, Title: title}
}

func (f *Frame) Name() string { return f.name }

// PreferredSize is the smallest frame that shows its border.
func (f *Frame) PreferredSize() (int, int) {
	return max(util.VisibleLen(f.Title)+2, 2), 2
}

// New creates a widget by kind: "button", "frame" or a label for
// anything else.
func New(kind, name, text string) box.Widget {
	switch kind {
	case "button":
		return NewButton(name, text)
	case "frame":
		return NewFrame(name, text)
	default:
		return NewLabel(name, text)
	}
}
