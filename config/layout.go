package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/drake/dwbox/box"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidLayout is returned for layout files that decode but describe
// an impossible tree.
var ErrInvalidLayout = errors.New("invalid layout")

// File is a layout description.
//
//	[window]
//	width = 80
//	height = 24
//
//	[root]
//	orientation = "vertical"
//
//	[[root.items]]
//	widget = "title"
//	height = 1
//	hexpand = true
type File struct {
	Window Size    `toml:"window"`
	Root   BoxNode `toml:"root"`
}

// Size is the initial window size.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// BoxNode describes a box and its items.
type BoxNode struct {
	Orientation string     `toml:"orientation"` // "horizontal" (default) or "vertical"
	Pad         int        `toml:"pad"`
	Name        string     `toml:"name"`  // Optional native container widget
	Title       string     `toml:"title"` // Text of the container widget
	Items       []ItemNode `toml:"items"`
}

// ItemNode describes one item; exactly one of Widget and Box is set.
// A missing width or height means Auto.
type ItemNode struct {
	Widget  string   `toml:"widget"`
	Kind    string   `toml:"kind"` // "label" (default), "button", ...
	Text    string   `toml:"text"`
	Box     *BoxNode `toml:"box"`
	Width   *int     `toml:"width"`
	Height  *int     `toml:"height"`
	HExpand bool     `toml:"hexpand"`
	VExpand bool     `toml:"vexpand"`
	Pad     int      `toml:"pad"`
}

// Factory creates the native widget for a name. kind is "frame" for box
// containers and the item's kind, "label" by default, for leaves.
type Factory func(kind, name, text string) box.Widget

// Load reads and parses a layout file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a layout. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, err
	}
	if f.Window.Width < 0 || f.Window.Height < 0 {
		return nil, fmt.Errorf("%w: negative window size", ErrInvalidLayout)
	}
	return &f, nil
}

// Build creates the box tree and its leaves through newWidget. Widgets are
// returned by name; names must be unique.
func (f *File) Build(newWidget Factory) (*box.Box, map[string]box.Widget, error) {
	widgets := make(map[string]box.Widget)
	root, err := buildBox(&f.Root, "root", newWidget, widgets)
	if err != nil {
		return nil, nil, err
	}
	return root, widgets, nil
}

func buildBox(n *BoxNode, path string, newWidget Factory, widgets map[string]box.Widget) (*box.Box, error) {
	var o box.Orientation
	switch n.Orientation {
	case "", "horizontal", "h":
		o = box.Horizontal
	case "vertical", "v":
		o = box.Vertical
	default:
		return nil, fmt.Errorf("%w: %s: orientation %q", ErrInvalidLayout, path, n.Orientation)
	}

	b := box.New(o, n.Pad)
	if n.Name != "" {
		w, err := addWidget("frame", n.Name, n.Title, path, newWidget, widgets)
		if err != nil {
			return nil, err
		}
		b.SetHandle(w)
	}

	for i := range n.Items {
		it := &n.Items[i]
		itemPath := fmt.Sprintf("%s.items[%d]", path, i)

		var child any
		switch {
		case it.Box != nil && it.Widget != "":
			return nil, fmt.Errorf("%w: %s: both widget and box set", ErrInvalidLayout, itemPath)
		case it.Box != nil:
			sub, err := buildBox(it.Box, itemPath+".box", newWidget, widgets)
			if err != nil {
				return nil, err
			}
			child = sub
		case it.Widget != "":
			kind := it.Kind
			if kind == "" {
				kind = "label"
			}
			w, err := addWidget(kind, it.Widget, it.Text, itemPath, newWidget, widgets)
			if err != nil {
				return nil, err
			}
			child = w
		default:
			return nil, fmt.Errorf("%w: %s: neither widget nor box set", ErrInvalidLayout, itemPath)
		}

		if err := b.PackEnd(child, it.hints()); err != nil {
			return nil, fmt.Errorf("%s: %w", itemPath, err)
		}
	}
	return b, nil
}

func addWidget(kind, name, text, path string, newWidget Factory, widgets map[string]box.Widget) (box.Widget, error) {
	if _, dup := widgets[name]; dup {
		return nil, fmt.Errorf("%w: %s: duplicate widget %q", ErrInvalidLayout, path, name)
	}
	w := newWidget(kind, name, text)
	if w == nil {
		return nil, fmt.Errorf("%w: %s: no widget created for %q", ErrInvalidLayout, path, name)
	}
	widgets[name] = w
	return w, nil
}

func (it *ItemNode) hints() box.Hints {
	h := box.Hints{Width: box.Auto, Height: box.Auto, Pad: it.Pad}
	if it.Width != nil {
		h.Width = *it.Width
	}
	if it.Height != nil {
		h.Height = *it.Height
	}
	if it.HExpand {
		h.HSize = box.Expand
	}
	if it.VExpand {
		h.VSize = box.Expand
	}
	return h
}
