// Package imop implements the Porter-Duff composition operations used for
// mixing a graphic element with its backdrop.
//
// The image/draw core package implements only the source-over-destination
// and source operators. The painting session needs more: strokes are laid
// over the canvas with SrcOver and the eraser punches transparent holes
// with DstOut.
package imop

import (
	"fmt"
	"image"
	"image/color"
)

// The supported composite operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a transparent bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composite operation.
type Composite struct {
	current string
	ops     map[string]struct{}
}

// InitOp returns a Composite with SrcOver as the active operation.
func InitOp() *Composite {
	op := &Composite{
		current: SrcOver,
		ops:     make(map[string]struct{}),
	}
	for _, o := range []string{
		Clear, Copy, Dst, SrcOver, DstOver, SrcIn, DstIn,
		SrcOut, DstOut, SrcAtop, DstAtop, Xor,
	} {
		op.ops[o] = struct{}{}
	}
	return op
}

// Set activates one of the supported composite operations.
func (op *Composite) Set(cop string) error {
	if _, ok := op.ops[cop]; !ok {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composite operation.
func (op *Composite) Get() string {
	return op.current
}

// Draw composes src over backdrop with the active operation and stores the
// result into bitmap. The images are expected to share the same bounds.
func (op *Composite) Draw(bitmap *Bitmap, src, backdrop *image.NRGBA) {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	r := src.Bounds().Intersect(backdrop.Bounds()).Intersect(bitmap.Img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			bitmap.Img.SetNRGBA(x, y, op.mix(src.NRGBAAt(x, y), backdrop.NRGBAAt(x, y)))
		}
	}
}

// Apply composes src onto dst in place, restricted to the rectangle r.
func (op *Composite) Apply(dst, src *image.NRGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			if s.A == 0 && op.current == SrcOver {
				continue
			}
			dst.SetNRGBA(x, y, op.mix(s, dst.NRGBAAt(x, y)))
		}
	}
}

// mix applies the Porter-Duff formula of the active operation on a single
// source and backdrop pixel. The math is done on premultiplied values and
// the result is converted back to non-premultiplied color.
func (op *Composite) mix(s, b color.NRGBA) color.NRGBA {
	as := float64(s.A) / 255
	ab := float64(b.A) / 255

	// premultiplied channels
	rs, gs, bs := float64(s.R)/255*as, float64(s.G)/255*as, float64(s.B)/255*as
	rb, gb, bb := float64(b.R)/255*ab, float64(b.G)/255*ab, float64(b.B)/255*ab

	// fs and fb are the Porter-Duff fractions of source and backdrop.
	var fs, fb float64
	switch op.current {
	case Clear:
		fs, fb = 0, 0
	case Copy:
		fs, fb = 1, 0
	case Dst:
		fs, fb = 0, 1
	case SrcOver:
		fs, fb = 1, 1-as
	case DstOver:
		fs, fb = 1-ab, 1
	case SrcIn:
		fs, fb = ab, 0
	case DstIn:
		fs, fb = 0, as
	case SrcOut:
		fs, fb = 1-ab, 0
	case DstOut:
		fs, fb = 0, 1-as
	case SrcAtop:
		fs, fb = ab, 1-as
	case DstAtop:
		fs, fb = 1-ab, as
	case Xor:
		fs, fb = 1-ab, 1-as
	}

	an := as*fs + ab*fb
	if an <= 0 {
		return color.NRGBA{}
	}
	rn := (rs*fs + rb*fb) / an
	gn := (gs*fs + gb*fb) / an
	bn := (bs*fs + bb*fb) / an

	return color.NRGBA{
		R: toByte(rn),
		G: toByte(gn),
		B: toByte(bn),
		A: toByte(an),
	}
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
