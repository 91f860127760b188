package pixpaint

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/esimov/pixpaint/imop"
)

// Canvas is an in-memory drawing surface backed by a non-premultiplied RGBA
// buffer. It implements Surface, so it can be handed to a Filler directly.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img      *image.NRGBA
	comp     *imop.Composite
	revision uint64

	// OnCommit, when set, is called each time the buffer is flushed.
	OnCommit func(img *image.NRGBA)
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a width x height canvas painted with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{
		img:  imaging.New(width, height, bg),
		comp: imop.InitOp(),
	}
}

// CanvasFromImage creates a canvas holding a copy of img, moved to the origin.
func CanvasFromImage(img image.Image) *Canvas {
	return &Canvas{
		img:  imaging.Clone(img),
		comp: imop.InitOp(),
	}
}

// Image returns the backing buffer. It is owned by the canvas.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Revision is incremented on every Commit.
func (c *Canvas) Revision() uint64 {
	return c.revision
}

// Pixel returns the color at (x, y) or Sentinel when out of bounds on either axis.
func (c *Canvas) Pixel(x, y int) Color {
	if !image.Pt(x, y).In(c.img.Rect) {
		return Sentinel
	}
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	return Color{R: int(s[0]), G: int(s[1]), B: int(s[2]), A: int(s[3])}
}

// SetPixel writes col at (x, y) without bounds checking.
func (c *Canvas) SetPixel(x, y int, col Color) {
	n := col.NRGBA()
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = n.R, n.G, n.B, n.A
}

// Commit publishes the current buffer.
func (c *Canvas) Commit() {
	c.revision++
	if c.OnCommit != nil {
		c.OnCommit(c.img)
	}
}

// Snapshot returns a deep copy of the buffer.
func (c *Canvas) Snapshot() *image.NRGBA {
	return imaging.Clone(c.img)
}

// Restore replaces the buffer content with snap and commits.
func (c *Canvas) Restore(snap *image.NRGBA) {
	c.load(snap)
	c.Commit()
}

// load copies snap into the buffer without committing.
func (c *Canvas) load(snap *image.NRGBA) {
	if snap.Rect.Eq(c.img.Rect) && len(snap.Pix) == len(c.img.Pix) {
		copy(c.img.Pix, snap.Pix)
		return
	}
	c.img = imaging.Clone(snap)
}

// Compose lays layer over the canvas inside r using source-over blending.
// The caller commits.
func (c *Canvas) Compose(layer *image.NRGBA, r image.Rectangle) {
	c.composite(imop.SrcOver, layer, r)
}

// ClearRect makes the pixels inside r fully transparent and commits.
func (c *Canvas) ClearRect(r image.Rectangle) {
	r = r.Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	mask := image.NewNRGBA(r)
	draw.Draw(mask, r, image.Opaque, image.Point{}, draw.Src)
	c.composite(imop.DstOut, mask, r)
	c.Commit()
}

func (c *Canvas) composite(op string, src *image.NRGBA, r image.Rectangle) {
	// The operation names are package constants, Set cannot fail here.
	_ = c.comp.Set(op)
	c.comp.Apply(c.img, src, r)
}
