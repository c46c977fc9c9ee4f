package box

// BoxState is the per-resize scratch state of one box.
type BoxState struct {
	Depth int
	Rect  Rect // Allocation given by the parent (or the window for the root)

	// Measure pass. UsedX/UsedY are the natural extents including padding,
	// UpX/UpY the part of them taken by non-expanding items.
	UsedX, UsedY int
	UpX, UpY     int

	// Items expanding along each axis.
	ExpandX, ExpandY int

	// Natural size before ratio scaling.
	MinWidth, MinHeight int

	// Scale applied to the expandable part of the box.
	XRatio, YRatio float64

	ParentXRatio, ParentYRatio float64
	ParentPad                  int
}

// Placement is one call made to the Placer.
type Placement struct {
	Widget Widget
	Rect   Rect
	Depth  int
}

// Layout is the result of one Resize.
type Layout struct {
	Width, Height int

	// Skipped is set when the resize was degenerate and nothing was placed.
	Skipped bool

	boxes      map[*Box]*BoxState
	items      map[*Item]*itemState
	placements []Placement
}

type itemState struct {
	natW, natH int
}

func newLayout(w, h int) *Layout {
	return &Layout{
		Width:  w,
		Height: h,
		boxes:  make(map[*Box]*BoxState),
		items:  make(map[*Item]*itemState),
	}
}

// State returns a copy of the scratch state computed for b.
func (l *Layout) State(b *Box) (BoxState, bool) {
	st, ok := l.boxes[b]
	if !ok {
		return BoxState{}, false
	}
	return *st, true
}

// Ratio returns the x and y ratios derived for b.
func (l *Layout) Ratio(b *Box) (x, y float64, ok bool) {
	st, ok := l.boxes[b]
	if !ok {
		return 0, 0, false
	}
	return st.XRatio, st.YRatio, true
}

// BoxRect returns the rectangle allocated to b.
func (l *Layout) BoxRect(b *Box) (Rect, bool) {
	st, ok := l.boxes[b]
	if !ok || l.Skipped {
		return Rect{}, false
	}
	return st.Rect, true
}

// WidgetRect returns the rectangle w was placed at.
func (l *Layout) WidgetRect(w Widget) (Rect, bool) {
	for _, p := range l.placements {
		if p.Widget == w {
			return p.Rect, true
		}
	}
	return Rect{}, false
}

// Placements returns the Placer calls in the order they were made.
func (l *Layout) Placements() []Placement {
	return append([]Placement(nil), l.placements...)
}
