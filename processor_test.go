package pixpaint

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/esimov/pixpaint/utils"
	"github.com/stretchr/testify/assert"
)

func newTestProcessor() *Processor {
	sp := utils.NewSpinner("", time.Millisecond, false)
	sp.SetWriter(io.Discard)
	return &Processor{
		FillColor: "#ff0000",
		Logger:    log.New(io.Discard, "", 0),
		Spinner:   sp,
	}
}

func writePNG(t *testing.T, path string, c *Canvas) {
	t.Helper()
	if err := SaveImage(path, c.Image()); err != nil {
		t.Fatalf("cannot write %s: %v", path, err)
	}
}

func TestProcessor_FillsSeeds(t *testing.T) {
	assert := assert.New(t)

	var in bytes.Buffer
	assert.NoError(Encode(&in, ringCanvas().Image(), ".png"))

	p := newTestProcessor()
	p.Seeds = []image.Point{{X: 2, Y: 2}, {X: 0, Y: 0}}
	p.FillColor = "#00ff00"

	var out bytes.Buffer
	assert.NoError(p.Process(&in, &out))

	img, err := Decode(&out)
	assert.NoError(err)
	c := CanvasFromImage(img)
	assert.Equal(green, c.Pixel(2, 2))
	assert.Equal(green, c.Pixel(0, 3))
	assert.Equal(black, c.Pixel(1, 1))
}

func TestProcessor_InvalidColor(t *testing.T) {
	assert := assert.New(t)

	p := newTestProcessor()
	p.Seeds = []image.Point{{X: 0, Y: 0}}
	p.FillColor = "notacolor"

	var out bytes.Buffer
	err := p.Process(nil, &out)
	var perr *ColorParseError
	assert.True(errors.As(err, &perr))
	assert.Zero(out.Len())
}

func TestProcessor_BlankCanvas(t *testing.T) {
	assert := assert.New(t)

	p := newTestProcessor()
	p.Width, p.Height = 12, 8
	p.Background = "#0000ff"

	c, err := p.BlankCanvas()
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 12, 8), c.Bounds())
	assert.Equal(MustParseHex("#0000ff"), c.Pixel(11, 7))

	// Unset dimensions come from the recipe.
	p = newTestProcessor()
	p.Recipe = &Recipe{Width: 5, Height: 6}
	c, err = p.BlankCanvas()
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 5, 6), c.Bounds())
	assert.Equal(white, c.Pixel(0, 0))

	p.Background = "bad"
	_, err = p.BlankCanvas()
	assert.Error(err)
}

func TestProcessor_Recipe(t *testing.T) {
	assert := assert.New(t)

	rc, err := ParseRecipe(strings.NewReader(sampleRecipe))
	assert.NoError(err)

	p := newTestProcessor()
	p.Recipe = rc

	var out bytes.Buffer
	assert.NoError(p.Process(nil, &out))

	img, err := Decode(&out)
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 40, 30), img.Bounds())
	assert.Equal(red, CanvasFromImage(img).Pixel(20, 15))
}

func TestOps_ExecuteFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writePNG(t, in, newCanvas(10, 10, white))

	// A stale, longer destination is truncated.
	assert.NoError(os.WriteFile(out, bytes.Repeat([]byte{1}, 1<<16), 0644))

	p := newTestProcessor()
	p.Seeds = []image.Point{{X: 5, Y: 5}}
	op := &Ops{Src: in, Dst: out, PipeName: "-"}
	assert.NoError(op.Execute(context.Background(), p))

	img, err := LoadImage(out)
	assert.NoError(err)
	col := CanvasFromImage(img).Pixel(5, 5)
	assert.InDelta(255, col.R, 3)
	assert.InDelta(0, col.G, 3)
}

func TestOps_ExecuteRejectsOutputFormat(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, newCanvas(2, 2, white))

	op := &Ops{Src: in, Dst: filepath.Join(dir, "out.gif"), PipeName: "-"}
	err := op.Execute(context.Background(), newTestProcessor())
	assert.True(errors.Is(err, ErrUnsupportedFormat))
}

func TestOps_ExecuteBlank(t *testing.T) {
	assert := assert.New(t)

	out := filepath.Join(t.TempDir(), "blank.bmp")
	p := newTestProcessor()
	p.Width, p.Height = 6, 4
	p.Seeds = []image.Point{{X: 0, Y: 0}}

	op := &Ops{Dst: out, PipeName: "-"}
	assert.NoError(op.Execute(context.Background(), p))

	img, err := LoadImage(out)
	assert.NoError(err)
	assert.Equal(image.Rect(0, 0, 6, 4), img.Bounds())
	assert.Equal(red, CanvasFromImage(img).Pixel(5, 3))
}

func TestOps_ExecuteDirectory(t *testing.T) {
	assert := assert.New(t)

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "painted")

	writePNG(t, filepath.Join(src, "a.png"), newCanvas(4, 4, white))
	assert.NoError(os.MkdirAll(filepath.Join(src, "nested"), 0755))
	writePNG(t, filepath.Join(src, "nested", "b.png"), newCanvas(3, 3, black))
	assert.NoError(os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0644))

	f, err := os.Create(filepath.Join(src, "c.gif"))
	assert.NoError(err)
	assert.NoError(gif.Encode(f, image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9), nil))
	assert.NoError(f.Close())

	p := newTestProcessor()
	p.Seeds = []image.Point{{X: 0, Y: 0}}
	op := &Ops{Src: src, Dst: dst, PipeName: "-", Workers: 2}
	assert.NoError(op.Execute(context.Background(), p))

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		img, err := LoadImage(filepath.Join(dst, name))
		if assert.NoError(err, name) {
			assert.Equal(red, CanvasFromImage(img).Pixel(0, 0), name)
		}
	}
	_, err = os.Stat(filepath.Join(dst, "notes.txt"))
	assert.True(os.IsNotExist(err))
}

func TestOps_ExecuteMissingSource(t *testing.T) {
	assert := assert.New(t)

	op := &Ops{Src: filepath.Join(t.TempDir(), "missing.png"), Dst: "out.png", PipeName: "-"}
	assert.Error(op.Execute(context.Background(), newTestProcessor()))
}

func TestOps_OutputName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("a.png", outputName("/x/a.png"))
	assert.Equal("b.jpeg", outputName("b.jpeg"))
	assert.Equal("c.png", outputName("dir/c.gif"))
}
