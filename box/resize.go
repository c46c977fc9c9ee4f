package box

import (
	"fmt"
	"math"
)

// Tolerance for float noise when flooring scaled sizes.
const eps = 1e-9

// Resize lays out the tree rooted at root into a width x height window and
// hands each leaf's final rectangle to p.
//
// Layout runs in two passes. The measure pass computes every box's natural
// extent and the part of it taken by fixed items. The place pass derives a
// ratio for the expandable part of each box from the space its parent gave
// it, sizes the items and recurses into nested boxes.
//
// A resize with no expandable content along either axis of the root, or
// with a zero width or height, is skipped: nothing is placed and the
// returned Layout has Skipped set. An axis counts as expandable when any
// item expands along it, even one whose natural size is zero; such items
// share the window equally.
//
// Resize mutates the computed sizes stored on the tree and must not be
// called concurrently for the same tree.
func Resize(root *Box, width, height int, p Placer) (*Layout, error) {
	if p == nil {
		return nil, ErrNoPlacer
	}
	if root == nil || root.destroyed {
		return nil, fmt.Errorf("resize: %w", ErrDanglingReference)
	}

	l := newLayout(width, height)
	if width <= 0 || height <= 0 {
		l.Skipped = true
		return l, nil
	}

	s := &solver{layout: l, placer: p, seen: make(map[*Box]bool)}

	st, err := s.measure(root, 0)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if degenerate(st.UsedX, st.UpX, st.ExpandX) || degenerate(st.UsedY, st.UpY, st.ExpandY) {
		l.Skipped = true
		return l, nil
	}

	r := Rect{Width: width, Height: height}
	if root.handle != nil {
		s.emit(root.handle, r, 0)
	}
	s.place(root, st, r)
	return l, nil
}

// degenerate reports an axis with nothing to scale.
func degenerate(used, up, expand int) bool {
	return used == up && expand == 0
}

// ratio scales the expandable part of a box (used - up) to fill alloc.
func ratio(alloc, used, up int) float64 {
	if used == up {
		return 1
	}
	return float64(alloc-up) / float64(used-up)
}

type solver struct {
	layout *Layout
	placer Placer
	seen   map[*Box]bool
}

func (s *solver) emit(w Widget, r Rect, depth int) {
	s.placer.Place(w, r)
	s.layout.placements = append(s.layout.placements, Placement{Widget: w, Rect: r, Depth: depth})
}

// measure is the first pass. It records the natural and fixed extents of b
// and returns its state; nested boxes are measured before their parent's
// arithmetic continues.
func (s *solver) measure(b *Box, depth int) (*BoxState, error) {
	if b == nil || b.destroyed {
		return nil, ErrDanglingReference
	}
	if s.seen[b] {
		return nil, ErrCycle
	}
	s.seen[b] = true

	st := &BoxState{
		Depth:        depth,
		XRatio:       1,
		YRatio:       1,
		ParentXRatio: 1,
		ParentYRatio: 1,
	}
	s.layout.boxes[b] = st

	for i, it := range b.items {
		var nw, nh int
		switch {
		case it.box != nil:
			cst, err := s.measure(it.box, depth+1)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			nw, nh = cst.MinWidth, cst.MinHeight
		case it.widget != nil:
			nw, nh = it.natural(Horizontal), it.natural(Vertical)
		default:
			return nil, fmt.Errorf("item %d: %w", i, ErrDanglingReference)
		}
		s.layout.items[it] = &itemState{natW: nw, natH: nh}

		pad2 := 2 * it.hints.Pad
		w, h := nw+pad2, nh+pad2
		fw, fh := w, h
		if it.hints.HSize == Expand {
			fw = pad2
			st.ExpandX++
		}
		if it.hints.VSize == Expand {
			fh = pad2
			st.ExpandY++
		}

		st.UsedX = accumulate(b.orient, Horizontal, st.UsedX, w)
		st.UpX = accumulate(b.orient, Horizontal, st.UpX, fw)
		st.UsedY = accumulate(b.orient, Vertical, st.UsedY, h)
		st.UpY = accumulate(b.orient, Vertical, st.UpY, fh)
	}

	if len(b.items) > 0 {
		pad2 := 2 * b.pad
		st.UsedX += pad2
		st.UsedY += pad2
		st.UpX += pad2
		st.UpY += pad2
	}
	st.MinWidth, st.MinHeight = st.UsedX, st.UsedY
	return st, nil
}

// place is the second pass. r is the rectangle the parent allocated to b.
// Nested boxes are placed recursively with a ratio derived from their own
// allocation rather than inherited from the root.
func (s *solver) place(b *Box, st *BoxState, r Rect) {
	st.Rect = r
	st.XRatio = ratio(r.Width, st.UsedX, st.UpX)
	st.YRatio = ratio(r.Height, st.UsedY, st.UpY)
	b.width, b.height = r.Width, r.Height

	mainAlloc, crossAlloc := r.Width, r.Height
	if b.orient == Vertical {
		mainAlloc, crossAlloc = r.Height, r.Width
	}
	sizes := s.distribute(b, st, mainAlloc)
	cross := b.orient.Cross()

	cursor := b.pad
	for i, it := range b.items {
		is := s.layout.items[it]
		pad := it.hints.Pad

		crossSize := is.natH
		if b.orient == Vertical {
			crossSize = is.natW
		}
		if it.hints.policy(cross) == Expand {
			crossSize = max(crossAlloc-2*b.pad-2*pad, 0)
		}

		var ir Rect
		if b.orient == Horizontal {
			ir = Rect{X: r.X + cursor + pad, Y: r.Y + b.pad + pad, Width: sizes[i], Height: crossSize}
		} else {
			ir = Rect{X: r.X + b.pad + pad, Y: r.Y + cursor + pad, Width: crossSize, Height: sizes[i]}
		}

		it.width, it.height = ir.Width, ir.Height
		it.xratio, it.yratio = 1, 1
		if it.hints.HSize == Expand {
			it.xratio = st.XRatio
		}
		if it.hints.VSize == Expand {
			it.yratio = st.YRatio
		}

		if it.box != nil {
			cst := s.layout.boxes[it.box]
			cst.Rect = ir
			cst.ParentXRatio, cst.ParentYRatio = st.XRatio, st.YRatio
			cst.ParentPad = b.pad
			it.box.width, it.box.height = ir.Width, ir.Height
		}

		// Zero sized items keep their slot but are never handed to the platform.
		cursor += sizes[i] + 2*pad
		if ir.Empty() {
			continue
		}

		if it.box != nil {
			if it.box.handle != nil {
				s.emit(it.box.handle, ir, st.Depth+1)
			}
			s.place(it.box, s.layout.boxes[it.box], ir)
			continue
		}
		s.emit(it.widget, ir, st.Depth)
	}
}

// distribute returns the main-axis size of every item of b given alloc.
//
// Fixed items keep their natural size. Expanding items grow by
// natural*ratio - natural, or by an equal share of the spare room when
// none of them has a natural extent to scale. Growth is floored; only the
// root box adds back a pixel to an item once truncation has lost a whole
// one, so nested boxes never compound the correction.
func (s *solver) distribute(b *Box, st *BoxState, alloc int) []int {
	used, up, expanders, r := st.UsedX, st.UpX, st.ExpandX, st.XRatio
	if b.orient == Vertical {
		used, up, expanders, r = st.UsedY, st.UpY, st.ExpandY, st.YRatio
	}

	sizes := make([]int, len(b.items))
	var carry float64
	for i, it := range b.items {
		is := s.layout.items[it]
		nat := is.natW
		if b.orient == Vertical {
			nat = is.natH
		}
		if it.hints.policy(b.orient) != Expand {
			sizes[i] = nat
			continue
		}

		var vector float64
		if used > up {
			vector = float64(nat)*r - float64(nat)
		} else {
			vector = float64(alloc-used) / float64(expanders)
		}
		v := int(math.Floor(vector + eps))
		if st.Depth == 0 {
			carry += vector - float64(v)
			if carry >= 1-eps {
				v++
				carry--
			}
		}
		sizes[i] = max(nat+v, 0)
	}
	return sizes
}
