package snapshot

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
)

type leaf string

func (l leaf) Name() string { return string(l) }

func rgb8(r *Renderer, x, y int) (uint8, uint8, uint8) {
	cr, cg, cb, _ := r.Image().At(x, y).RGBA()
	return uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)
}

func TestPlacePaintsRect(t *testing.T) {
	r := NewRenderer(20, 4, 10, WithLabels(false))

	bar := percent.NewControl("load", 100)
	bar.SetPos(50)
	r.Place(bar, box.Rect{X: 0, Y: 0, Width: 10, Height: 2})

	if cr, cg, _ := rgb8(r, 10, 10); cr > 100 || cg < 100 {
		t.Errorf("filled part = (%d, %d), want green", cr, cg)
	}
	if cr, _, _ := rgb8(r, 80, 10); cr < 150 {
		t.Errorf("empty part red = %d, want widget color", cr)
	}
	if cr, cg, cb := rgb8(r, 150, 30); cr != 255 || cg != 255 || cb != 255 {
		t.Errorf("outside = (%d, %d, %d), want white", cr, cg, cb)
	}
	if r.Placed() != 1 {
		t.Errorf("Placed() = %d, want 1", r.Placed())
	}
}

func TestResizeIntoRenderer(t *testing.T) {
	root := box.NewHBox(0)
	root.PackEnd(leaf("left"), box.Hints{Width: 5, Height: box.Auto, VSize: box.Expand})
	root.PackEnd(leaf("right"), box.Hints{Width: 5, Height: box.Auto, HSize: box.Expand, VSize: box.Expand})

	r := NewRenderer(40, 10, 4)
	l, err := box.Resize(root, 40, 10, r)
	if err != nil {
		t.Fatal(err)
	}
	if l.Skipped {
		t.Fatal("layout skipped")
	}
	if r.Placed() != 2 {
		t.Errorf("Placed() = %d, want 2", r.Placed())
	}

	r.Clear()
	if r.Placed() != 0 {
		t.Errorf("Placed() after Clear = %d, want 0", r.Placed())
	}
}

func TestEncodeAndSave(t *testing.T) {
	r := NewRenderer(20, 4, 10)
	r.Place(leaf("a"), box.Rect{Width: 20, Height: 4})

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 40 {
		t.Errorf("bounds = %v, want 200x40", b)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatal(err)
	}
}

func TestColorForIsStable(t *testing.T) {
	r1, g1, b1 := colorFor("sidebar")
	r2, g2, b2 := colorFor("sidebar")
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Error("colorFor is not deterministic")
	}
	for _, c := range []float64{r1, g1, b1} {
		if c < 0.6 || c >= 1 {
			t.Errorf("channel %v out of [0.6, 1)", c)
		}
	}
}

func TestThumbnail(t *testing.T) {
	r := NewRenderer(40, 10, 10)
	r.Place(leaf("a"), box.Rect{Width: 40, Height: 10})

	thumb := r.Thumbnail(100, 100)
	if b := thumb.Bounds(); b.Dx() != 100 || b.Dy() != 25 {
		t.Errorf("thumbnail = %v, want 100x25", b)
	}

	small := NewRenderer(4, 2, 1)
	if b := small.Thumbnail(100, 100).Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("small thumbnail = %v, want unchanged 4x2", b)
	}

	path := filepath.Join(t.TempDir(), "thumb.jpg")
	if err := r.SaveThumbnail(path, 50, 50); err != nil {
		t.Fatal(err)
	}
}
