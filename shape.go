package pixpaint

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// findDistance returns the euclidean distance between two points.
func findDistance(p1, p2 image.Point) float64 {
	return math.Hypot(float64(p2.X-p1.X), float64(p2.Y-p1.Y))
}

// trianglePoints returns the apex and the two base vertices of the triangle
// inscribed in the box spanned by start and cur. The apex sits in the middle
// of the start row, the base lies on the cur row.
func trianglePoints(start, cur image.Point) [3]gg.Point {
	return [3]gg.Point{
		{X: float64(start.X) + float64(cur.X-start.X)/2, Y: float64(start.Y)},
		{X: float64(start.X), Y: float64(cur.Y)},
		{X: float64(cur.X), Y: float64(cur.Y)},
	}
}

// shapeBounds returns the device rectangle touched by stroking t between
// start and cur, padded by the stroke width.
func shapeBounds(t Tool, start, cur image.Point, width float64) image.Rectangle {
	var r image.Rectangle
	switch t.(type) {
	case Circle:
		rad := int(math.Ceil(findDistance(start, cur)))
		r = image.Rect(start.X-rad, start.Y-rad, start.X+rad, start.Y+rad)
	default:
		r = image.Rectangle{Min: start, Max: cur}.Canon()
	}
	pad := int(math.Ceil(width/2)) + 1
	return r.Inset(-pad)
}

// strokeShape rasterizes the shape tool t dragged from start to cur and lays
// it over the canvas. It does not commit.
func strokeShape(c *Canvas, t Tool, start, cur image.Point, col Color) {
	var width float64
	switch t := t.(type) {
	case Line:
		width = t.Width
	case Rectangle:
		width = t.Width
	case Circle:
		width = t.Width
	case Triangle:
		width = t.Width
	default:
		return
	}

	b := c.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(col.NRGBA())
	dc.SetLineWidth(width)
	dc.SetLineJoinRound()

	x0, y0 := float64(start.X), float64(start.Y)
	x1, y1 := float64(cur.X), float64(cur.Y)

	switch t.(type) {
	case Line:
		dc.SetLineCapRound()
		dc.DrawLine(x0, y0, x1, y1)
	case Rectangle:
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	case Circle:
		dc.DrawCircle(x0, y0, findDistance(start, cur))
	case Triangle:
		pts := trianglePoints(start, cur)
		dc.MoveTo(pts[0].X, pts[0].Y)
		dc.LineTo(pts[1].X, pts[1].Y)
		dc.LineTo(pts[2].X, pts[2].Y)
		dc.ClosePath()
	}
	dc.Stroke()

	c.Compose(imaging.Clone(dc.Image()), shapeBounds(t, start, cur, width))
}

// strokeSegment draws one freehand segment with round caps. It does not commit.
func strokeSegment(c *Canvas, from, to image.Point, width float64, col Color) {
	b := c.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(col.NRGBA())
	dc.SetLineWidth(width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
	dc.Stroke()

	c.Compose(imaging.Clone(dc.Image()), shapeBounds(Line{}, from, to, width))
}
