package pixpaint

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

var footprintColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xc0}

// drawFootprint outlines the area painted or erased under the cursor.
func (g *Gui) drawFootprint(ops *op.Ops) {
	var size float32
	switch t := g.sess.Tool().(type) {
	case Eraser:
		g.drawSquare(ops, g.cursor, float32(t.Size))
		return
	case Brush:
		size = float32(t.Size)
	case Pencil:
		size = float32(t.Width)
	default:
		return
	}
	if size < 2 {
		return
	}
	c := point(g.cursor)
	g.drawCircle(ops, c, size/2)
}

// drawSquare outlines the size by size square with its top left corner at p.
func (g *Gui) drawSquare(ops *op.Ops, p image.Point, size float32) {
	orig := point(p)

	var path clip.Path
	path.Begin(ops)
	path.MoveTo(orig)
	path.LineTo(orig.Add(f32.Pt(size, 0)))
	path.LineTo(orig.Add(f32.Pt(size, size)))
	path.LineTo(orig.Add(f32.Pt(0, size)))
	path.Close()

	strokePath(ops, path.End())
}

// drawCircle outlines a circle of the given radius centered on c.
func (g *Gui) drawCircle(ops *op.Ops, c f32.Point, radius float32) {
	const segments = 32

	var path clip.Path
	path.Begin(ops)
	path.MoveTo(c.Add(f32.Pt(radius, 0)))
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		path.LineTo(c.Add(f32.Pt(
			radius*float32(math.Cos(a)),
			radius*float32(math.Sin(a)),
		)))
	}
	path.Close()

	strokePath(ops, path.End())
}

func strokePath(ops *op.Ops, spec clip.PathSpec) {
	defer clip.Stroke{Path: spec, Width: 1}.Op().Push(ops).Pop()
	paint.ColorOp{Color: footprintColor}.Add(ops)
	paint.PaintOp{}.Add(ops)
}

// point converts the pixel coordinate to a Gio f32.Point.
func point(p image.Point) f32.Point {
	return f32.Point{X: float32(p.X), Y: float32(p.Y)}
}
