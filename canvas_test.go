package pixpaint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas_PixelBounds(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(3, 2, white)
	assert.Equal(image.Rect(0, 0, 3, 2), c.Bounds())
	assert.Equal(white, c.Pixel(2, 1))

	// Both axes are checked.
	for _, p := range []image.Point{{-1, 0}, {3, 0}, {0, -1}, {0, 2}, {2, 5}, {5, 1}} {
		assert.Equal(Sentinel, c.Pixel(p.X, p.Y), "point %v", p)
	}
}

func TestCanvas_CommitAndRevision(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(2, 2, white)
	var got *image.NRGBA
	c.OnCommit = func(img *image.NRGBA) { got = img }

	c.SetPixel(0, 0, red)
	assert.Equal(uint64(0), c.Revision())
	assert.Nil(got)

	c.Commit()
	assert.Equal(uint64(1), c.Revision())
	assert.Same(c.Image(), got)
}

func TestCanvas_SnapshotRestore(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(4, 4, white)
	snap := c.Snapshot()
	c.SetPixel(1, 1, red)
	assert.Equal(white, FromNRGBA(snap.NRGBAAt(1, 1)))

	c.Restore(snap)
	assert.Equal(white, c.Pixel(1, 1))
	assert.Equal(uint64(1), c.Revision())
}

func TestCanvas_FromImageMovesToOrigin(t *testing.T) {
	assert := assert.New(t)

	src := image.NewRGBA(image.Rect(-2, -2, 3, 3))
	src.Set(-2, -2, color.RGBA{R: 255, A: 255})

	c := CanvasFromImage(src)
	assert.Equal(image.Rect(0, 0, 5, 5), c.Bounds())
	assert.Equal(red, c.Pixel(0, 0))
}

func TestCanvas_ClearRect(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(5, 5, red)
	c.ClearRect(image.Rect(3, 3, 10, 10))

	assert.Equal(0, c.Pixel(3, 3).A)
	assert.Equal(0, c.Pixel(4, 4).A)
	assert.Equal(red, c.Pixel(2, 2))
	assert.Equal(uint64(1), c.Revision())

	// Fully outside: nothing to clear, nothing to commit.
	c.ClearRect(image.Rect(10, 10, 12, 12))
	assert.Equal(uint64(1), c.Revision())
}

func TestCanvas_Compose(t *testing.T) {
	assert := assert.New(t)

	c := newCanvas(4, 4, white)
	layer := image.NewNRGBA(c.Bounds())
	layer.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	layer.SetNRGBA(2, 2, color.NRGBA{B: 255, A: 128})

	c.Compose(layer, c.Bounds())
	assert.Equal(red, c.Pixel(1, 1))
	assert.Equal(white, c.Pixel(0, 0))

	half := c.Pixel(2, 2)
	assert.Equal(255, half.A)
	assert.InDelta(127, half.R, 2)
	assert.Equal(255, half.B)
}
