// Package snapshot renders a laid out box tree to a PNG.
package snapshot

import (
	"hash/fnv"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
	"github.com/fogleman/gg"
)

// Renderer is a box.Placer that paints every placed widget as a
// rectangle. Layout units are multiplied by Scale to get pixels.
type Renderer struct {
	context *gg.Context
	scale   float64
	labels  bool
	placed  int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLabels draws each widget's name inside its rectangle.
func WithLabels(on bool) Option {
	return func(r *Renderer) { r.labels = on }
}

// NewRenderer creates a white canvas for a width x height layout.
func NewRenderer(width, height int, scale float64, opts ...Option) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	r := &Renderer{
		context: gg.NewContext(int(float64(width)*scale), int(float64(height)*scale)),
		scale:   scale,
		labels:  true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Clear()
	return r
}

// Clear paints the whole canvas white.
func (r *Renderer) Clear() {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	r.placed = 0
}

// Place implements box.Placer.
func (r *Renderer) Place(w box.Widget, rect box.Rect) {
	r.placed++
	x := float64(rect.X) * r.scale
	y := float64(rect.Y) * r.scale
	width := float64(rect.Width) * r.scale
	height := float64(rect.Height) * r.scale

	cr, cg, cb := colorFor(w.Name())
	r.context.SetRGB(cr, cg, cb)
	r.context.DrawRectangle(x, y, width, height)
	r.context.Fill()

	if c, ok := w.(*percent.Control); ok {
		r.context.SetRGB(0.2, 0.5, 0.3)
		r.context.DrawRectangle(x, y, width*c.Fraction(), height)
		r.context.Fill()
	}

	r.context.SetRGB(0.2, 0.2, 0.2)
	r.context.SetLineWidth(1)
	r.context.DrawRectangle(x+0.5, y+0.5, width-1, height-1)
	r.context.Stroke()

	if r.labels {
		r.drawName(w.Name(), x, y, width, height)
	}
}

func (r *Renderer) drawName(name string, x, y, width, height float64) {
	tw, th := r.context.MeasureString(name)
	if tw > width-2 || th > height-2 {
		return
	}
	r.context.SetRGB(0, 0, 0)
	r.context.DrawStringAnchored(name, x+width/2, y+height/2, 0.5, 0.5)
}

// Placed returns the number of Place calls since the last Clear.
func (r *Renderer) Placed() int { return r.placed }

// Image returns the canvas.
func (r *Renderer) Image() image.Image { return r.context.Image() }

// SavePNG writes the canvas to filename.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// Encode writes the canvas as PNG to w.
func (r *Renderer) Encode(w io.Writer) error {
	return r.context.EncodePNG(w)
}

// Thumbnail returns the canvas scaled down to fit maxWidth x maxHeight,
// keeping its aspect ratio. A canvas that already fits is returned as is.
func (r *Renderer) Thumbnail(maxWidth, maxHeight int) image.Image {
	return imaging.Fit(r.context.Image(), maxWidth, maxHeight, imaging.Lanczos)
}

// SaveThumbnail writes Thumbnail(maxWidth, maxHeight) to filename. The
// format follows the file extension.
func (r *Renderer) SaveThumbnail(filename string, maxWidth, maxHeight int) error {
	return imaging.Save(r.Thumbnail(maxWidth, maxHeight), filename)
}

// colorFor picks a stable pastel color for a widget name.
func colorFor(name string) (float64, float64, float64) {
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()
	return 0.6 + float64(v&0xff)/640,
		0.6 + float64(v>>8&0xff)/640,
		0.6 + float64(v>>16&0xff)/640
}
