// Package percent bridges logical positions of a percent bar and the
// 0-1000 fixed-point value the native control stores.
package percent

// Scale is the fixed-point resolution of the stored value.
const Scale = 1000

// Bar holds the state a native percent control keeps as per-widget data.
type Bar struct {
	rng   int
	fixed int
}

// New returns a bar with the given logical range. A negative range is
// treated as zero.
func New(rng int) *Bar {
	return &Bar{rng: max(rng, 0)}
}

// Range returns the logical range.
func (b *Bar) Range() int { return b.rng }

// SetRange changes the logical range. The stored fixed-point value is kept,
// so the logical position follows the new range proportionally. A negative
// range is treated as zero.
func (b *Bar) SetRange(rng int) { b.rng = max(rng, 0) }

// Fixed returns the stored 0-1000 value.
func (b *Bar) Fixed() int { return b.fixed }

// Pos converts the stored fixed-point value back to a logical position.
func (b *Bar) Pos() int {
	return int(float64(b.fixed) / Scale * float64(b.rng))
}

// SetPos stores pos as a fixed-point fraction of the range.
// It does nothing while the range is zero.
func (b *Bar) SetPos(pos int) {
	if b.rng == 0 {
		return
	}
	b.fixed = int(float64(pos) / float64(b.rng) * Scale)
}
