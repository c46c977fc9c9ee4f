package box

import "fmt"

// CountSize returns the natural footprint of b along o.
//
// When o matches the box's orientation the item extents are summed,
// otherwise the largest one is taken. size uses each leaf's last computed
// size; origSize uses the sizes the items were packed with. Item and box
// padding are included. An empty box yields 0, 0.
func CountSize(b *Box, o Orientation) (size, origSize int, err error) {
	return countSize(b, o, make(map[*Box]bool))
}

func countSize(b *Box, o Orientation, seen map[*Box]bool) (int, int, error) {
	if b == nil || b.destroyed {
		return 0, 0, ErrDanglingReference
	}
	if seen[b] {
		return 0, 0, ErrCycle
	}
	seen[b] = true

	if len(b.items) == 0 {
		return 0, 0, nil
	}

	var size, orig int
	for i, it := range b.items {
		var s, os int
		if it.box != nil {
			var err error
			s, os, err = countSize(it.box, o, seen)
			if err != nil {
				return 0, 0, fmt.Errorf("item %d: %w", i, err)
			}
		} else {
			s = it.current(o)
			os = it.natural(o)
		}
		s += 2 * it.hints.Pad
		os += 2 * it.hints.Pad

		size = accumulate(b.orient, o, size, s)
		orig = accumulate(b.orient, o, orig, os)
	}

	return size + 2*b.pad, orig + 2*b.pad, nil
}

// accumulate folds the extent v of one item along o into total for a box
// laid out along orient: summed along the box axis, largest across it.
func accumulate(orient, o Orientation, total, v int) int {
	if orient == o {
		return total + v
	}
	return max(total, v)
}
