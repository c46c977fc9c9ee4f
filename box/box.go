package box

import (
	"fmt"
	"slices"
)

// Orientation is the axis a box lays its items out along.
type Orientation uint8

const (
	Horizontal Orientation = iota // Items placed left to right
	Vertical                      // Items placed top to bottom
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Cross returns the perpendicular orientation.
func (o Orientation) Cross() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

// Policy controls whether an item grows along an axis.
type Policy uint8

const (
	Fixed  Policy = iota // Keep the natural size
	Expand               // Claim the space left after fixed siblings
)

func (p Policy) String() string {
	if p == Expand {
		return "expand"
	}
	return "fixed"
}

// Auto requests the natural size of an item instead of a literal size.
// Leaves resolve it through Preferred, falling back to one pixel.
const Auto = -1

// Widget is an opaque native leaf handle. The box tree never owns widgets.
type Widget interface {
	Name() string
}

// Preferred is implemented by widgets that can report a native size.
// It is consulted for items packed with an Auto width or height.
type Preferred interface {
	PreferredSize() (width, height int)
}

// Placer is the native move and resize primitive.
type Placer interface {
	Place(w Widget, r Rect)
}

// PlacerFunc adapts a function to the Placer interface.
type PlacerFunc func(w Widget, r Rect)

// Place implements Placer.
func (f PlacerFunc) Place(w Widget, r Rect) { f(w, r) }

// Hints are the per-item layout attributes given when packing.
type Hints struct {
	Width  int // Requested width, or Auto
	Height int // Requested height, or Auto
	HSize  Policy
	VSize  Policy
	Pad    int // Added on every side of the item
}

func (h Hints) validate() error {
	if h.Pad < 0 || h.Width < Auto || h.Height < Auto {
		return fmt.Errorf("%w: width=%d height=%d pad=%d", ErrInvalidHints, h.Width, h.Height, h.Pad)
	}
	return nil
}

// policy returns the size policy along o.
func (h Hints) policy(o Orientation) Policy {
	if o == Vertical {
		return h.VSize
	}
	return h.HSize
}

// Item is one slot of a Box. Exactly one of Widget and Box is set.
type Item struct {
	widget Widget
	box    *Box
	hints  Hints

	// Last computed geometry; starts as the request.
	width, height  int
	xratio, yratio float64
}

// Widget returns the leaf widget, or nil for a nested box.
func (it *Item) Widget() Widget { return it.widget }

// Box returns the nested box, or nil for a leaf.
func (it *Item) Box() *Box { return it.box }

// Hints returns the attributes the item was packed with.
func (it *Item) Hints() Hints { return it.hints }

// Size returns the size computed by the last successful Resize.
func (it *Item) Size() (width, height int) { return it.width, it.height }

// OrigSize returns the size originally requested, before any scaling.
func (it *Item) OrigSize() (width, height int) { return it.hints.Width, it.hints.Height }

// Ratio returns the scale ratios used to size the item in the last Resize.
func (it *Item) Ratio() (x, y float64) { return it.xratio, it.yratio }

func (it *Item) name() string {
	if it.widget != nil {
		return it.widget.Name()
	}
	return "box"
}

// natural returns the unscaled size of a leaf along o.
func (it *Item) natural(o Orientation) int {
	v := it.hints.Width
	if o == Vertical {
		v = it.hints.Height
	}
	if v != Auto {
		return v
	}
	if p, ok := it.widget.(Preferred); ok {
		w, h := p.PreferredSize()
		if o == Vertical {
			w = h
		}
		return max(w, 1)
	}
	return 1
}

// current returns the last computed size of a leaf along o, resolving
// a never laid out Auto request like natural does.
func (it *Item) current(o Orientation) int {
	v := it.width
	if o == Vertical {
		v = it.height
	}
	if v == Auto {
		return it.natural(o)
	}
	return v
}

// Box is a layout container holding items along one orientation.
type Box struct {
	orient Orientation
	pad    int
	items  []*Item

	handle Widget // native container, placed like a leaf when set
	parent *Box

	width, height int
	destroyed     bool
}

// New creates an empty box.
func New(o Orientation, pad int) *Box {
	return &Box{orient: o, pad: max(pad, 0)}
}

// NewHBox creates an empty horizontal box.
func NewHBox(pad int) *Box { return New(Horizontal, pad) }

// NewVBox creates an empty vertical box.
func NewVBox(pad int) *Box { return New(Vertical, pad) }

func (b *Box) Orientation() Orientation { return b.orient }
func (b *Box) Pad() int                 { return b.pad }
func (b *Box) Len() int                 { return len(b.items) }
func (b *Box) Parent() *Box             { return b.parent }
func (b *Box) Destroyed() bool          { return b.destroyed }

// Width returns the width computed by the last Resize. It is stale until
// the first layout completes.
func (b *Box) Width() int { return b.width }

// Height returns the height computed by the last Resize.
func (b *Box) Height() int { return b.height }

// Handle returns the native container widget, if any.
func (b *Box) Handle() Widget { return b.handle }

// SetHandle attaches a native container widget that is placed with the
// box's own rectangle on every Resize.
func (b *Box) SetHandle(w Widget) { b.handle = w }

// Item returns the item at index i, or nil when out of range.
func (b *Box) Item(i int) *Item {
	if i < 0 || i >= len(b.items) {
		return nil
	}
	return b.items[i]
}

// Items returns a copy of the item list in layout order.
func (b *Box) Items() []*Item {
	return slices.Clone(b.items)
}

// PackStart inserts child before every existing item.
func (b *Box) PackStart(child any, h Hints) error {
	return b.insert(0, child, h)
}

// PackEnd appends child after every existing item.
func (b *Box) PackEnd(child any, h Hints) error {
	return b.insert(len(b.items), child, h)
}

// PackAt inserts child at index, shifting later items along.
func (b *Box) PackAt(index int, child any, h Hints) error {
	return b.insert(index, child, h)
}

func (b *Box) insert(index int, child any, h Hints) error {
	if b.destroyed {
		return fmt.Errorf("pack: %w", ErrDanglingReference)
	}
	if index < 0 || index > len(b.items) {
		return fmt.Errorf("pack at %d of %d: %w", index, len(b.items), ErrIndex)
	}
	if err := h.validate(); err != nil {
		return err
	}

	it := &Item{hints: h, width: h.Width, height: h.Height, xratio: 1, yratio: 1}
	switch c := child.(type) {
	case nil:
		return ErrInvalidChild
	case *Box:
		if c == nil {
			return ErrInvalidChild
		}
		if c.destroyed {
			return fmt.Errorf("pack: %w", ErrDanglingReference)
		}
		if c.parent != nil {
			return ErrAlreadyPacked
		}
		for p := b; p != nil; p = p.parent {
			if p == c {
				return ErrCycle
			}
		}
		c.parent = b
		it.box = c
	case Widget:
		it.widget = c
	default:
		return fmt.Errorf("%w: %T", ErrInvalidChild, child)
	}

	b.items = slices.Insert(b.items, index, it)
	return nil
}

// Unpack removes the item at index and returns its child, either a Widget
// or a *Box. A removed box is detached and may be packed elsewhere.
func (b *Box) Unpack(index int) (any, error) {
	if b.destroyed {
		return nil, fmt.Errorf("unpack: %w", ErrDanglingReference)
	}
	if index < 0 || index >= len(b.items) {
		return nil, fmt.Errorf("unpack %d of %d: %w", index, len(b.items), ErrIndex)
	}
	it := b.items[index]
	b.items = slices.Delete(b.items, index, index+1)
	if it.box != nil {
		it.box.parent = nil
		return it.box, nil
	}
	return it.widget, nil
}

// UnpackChild removes the item holding child.
func (b *Box) UnpackChild(child any) error {
	i := b.IndexOf(child)
	if i < 0 {
		return fmt.Errorf("unpack: child not in box: %w", ErrIndex)
	}
	_, err := b.Unpack(i)
	return err
}

// IndexOf returns the index of the item holding child, or -1.
func (b *Box) IndexOf(child any) int {
	return slices.IndexFunc(b.items, func(it *Item) bool {
		if c, ok := child.(*Box); ok {
			return it.box == c
		}
		return it.widget != nil && it.widget == child
	})
}

// Destroy detaches the box from its parent and destroys every nested box.
// Leaf widgets are only dropped; they belong to the platform.
func (b *Box) Destroy() {
	if b.destroyed {
		return
	}
	if b.parent != nil {
		if i := b.parent.IndexOf(b); i >= 0 {
			b.parent.items = slices.Delete(b.parent.items, i, i+1)
		}
		b.parent = nil
	}
	b.destroy()
}

func (b *Box) destroy() {
	for _, it := range b.items {
		if it.box != nil {
			it.box.parent = nil
			it.box.destroy()
		}
		it.widget = nil
		it.box = nil
	}
	b.items = nil
	b.handle = nil
	b.destroyed = true
}

// Walk calls fn for b and every nested box in depth-first layout order.
// Returning false from fn skips the box's children.
func (b *Box) Walk(fn func(b *Box, depth int) bool) {
	b.walk(fn, 0)
}

func (b *Box) walk(fn func(b *Box, depth int) bool, depth int) {
	if !fn(b, depth) {
		return
	}
	for _, it := range b.items {
		if it.box != nil {
			it.box.walk(fn, depth+1)
		}
	}
}
