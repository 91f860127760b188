package pixpaint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage_DecodeNormalizes(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	testCases := []struct {
		name string
		img  image.Image
	}{
		{name: "NRGBA", img: makeNRGBAImage(rect)},
		{name: "Gray", img: image.NewGray(rect)},
		{name: "Paletted", img: image.NewPaletted(rect, palette.Plan9)},
		{name: "YCbCr-420", img: image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			assert.NoError(png.Encode(&buf, tc.img))

			img, err := Decode(&buf)
			assert.NoError(err)
			assert.Equal(image.Rect(0, 0, 16, 16), img.Bounds())
		})
	}
}

func TestImage_EncodeFormats(t *testing.T) {
	src := makeNRGBAImage(image.Rect(0, 0, 8, 8))

	for _, ext := range []string{"", ".png", ".PNG", ".jpg", ".jpeg", ".bmp"} {
		t.Run("ext"+ext, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			assert.NoError(Encode(&buf, src, ext))

			img, err := Decode(&buf)
			assert.NoError(err)
			assert.Equal(src.Bounds(), img.Bounds())
		})
	}
}

func TestImage_EncodeUnsupported(t *testing.T) {
	assert := assert.New(t)

	for _, ext := range []string{".gif", ".tiff", "png"} {
		err := Encode(&bytes.Buffer{}, image.NewNRGBA(image.Rect(0, 0, 1, 1)), ext)
		assert.True(errors.Is(err, ErrUnsupportedFormat), "ext %q", ext)
	}
}

func TestImage_PNGIsLossless(t *testing.T) {
	assert := assert.New(t)

	src := makeNRGBAImage(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	assert.NoError(Encode(&buf, src, ".png"))

	img, err := Decode(&buf)
	assert.NoError(err)
	assert.Equal(src.Pix, img.Pix)
}

func TestImage_SaveAndLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := makeNRGBAImage(image.Rect(0, 0, 4, 4))

	path := filepath.Join(dir, "out.bmp")
	assert.NoError(SaveImage(path, src))

	img, err := LoadImage(path)
	assert.NoError(err)
	assert.Equal(src.Bounds(), img.Bounds())

	// A failed encode leaves no file behind.
	bad := filepath.Join(dir, "out.tiff")
	assert.Error(SaveImage(bad, src))
	_, err = os.Stat(bad)
	assert.True(os.IsNotExist(err))
}

func TestImage_LoadGIF(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "in.gif")
	f, err := os.Create(path)
	assert.NoError(err)
	assert.NoError(gif.Encode(f, image.NewPaletted(image.Rect(0, 0, 3, 2), palette.Plan9), nil))
	assert.NoError(f.Close())

	img, err := LoadImage(path)
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestImage_LoadRejectsText(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "notes.png")
	assert.NoError(os.WriteFile(path, []byte("just some text, not an image"), 0644))

	_, err := LoadImage(path)
	assert.Error(err)
	assert.Contains(err.Error(), "not an image")
}

func TestImage_Extensions(t *testing.T) {
	assert := assert.New(t)

	assert.True(isValidExtension(".GIF"))
	assert.True(isValidExtension(".jpeg"))
	assert.False(isValidExtension(".tiff"))
	assert.True(isEncodable(".bmp"))
	assert.False(isEncodable(".gif"))
}

func makeNRGBAImage(r image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 16),
				G: uint8(y * 16),
				B: uint8((x + y) * 8),
				A: 0xff,
			})
		}
	}
	return img
}
