package pixpaint

import (
	"image"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
)

func TestShape_TrianglePoints(t *testing.T) {
	assert := assert.New(t)

	pts := trianglePoints(image.Pt(10, 20), image.Pt(30, 60))
	assert.Equal([3]gg.Point{{X: 20, Y: 20}, {X: 10, Y: 60}, {X: 30, Y: 60}}, pts)

	// Dragging up and left mirrors the triangle.
	pts = trianglePoints(image.Pt(30, 60), image.Pt(10, 20))
	assert.Equal([3]gg.Point{{X: 20, Y: 60}, {X: 30, Y: 20}, {X: 10, Y: 20}}, pts)
}

func TestShape_Bounds(t *testing.T) {
	assert := assert.New(t)

	r := shapeBounds(Rectangle{}, image.Pt(10, 10), image.Pt(2, 4), 2)
	assert.Equal(image.Rect(0, 2, 12, 12), r)

	r = shapeBounds(Circle{}, image.Pt(10, 10), image.Pt(13, 14), 0)
	assert.Equal(image.Rect(4, 4, 16, 16), r)
}

func TestShape_Distance(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5.0, findDistance(image.Pt(0, 0), image.Pt(3, 4)))
}

func TestShape_Stroke(t *testing.T) {
	tests := []struct {
		tool    Tool
		start   image.Point
		cur     image.Point
		on, off image.Point
	}{
		{Line{Width: 3}, image.Pt(5, 20), image.Pt(35, 20), image.Pt(20, 20), image.Pt(20, 30)},
		{Rectangle{Width: 3}, image.Pt(5, 5), image.Pt(35, 35), image.Pt(5, 20), image.Pt(20, 20)},
		{Circle{Width: 3}, image.Pt(20, 20), image.Pt(30, 20), image.Pt(30, 20), image.Pt(20, 20)},
		{Triangle{Width: 3}, image.Pt(5, 5), image.Pt(35, 35), image.Pt(20, 35), image.Pt(20, 25)},
	}
	for _, tc := range tests {
		t.Run(tc.tool.Name(), func(t *testing.T) {
			assert := assert.New(t)

			c := newCanvas(40, 40, white)
			strokeShape(c, tc.tool, tc.start, tc.cur, red)

			assert.Equal(red, c.Pixel(tc.on.X, tc.on.Y))
			assert.Equal(white, c.Pixel(tc.off.X, tc.off.Y))
			assert.Equal(uint64(0), c.Revision())
		})
	}
}

func TestShape_StrokeSegment(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(20, 20, white)
	strokeSegment(c, image.Pt(2, 10), image.Pt(18, 10), 4, black)
	assert.Equal(black, c.Pixel(10, 10))
	assert.Equal(white, c.Pixel(10, 2))
}
