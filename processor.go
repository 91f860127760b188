package pixpaint

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/esimov/pixpaint/utils"
)

// Processor options. A Processor paints a source image (or a blank canvas)
// headlessly: it flood fills the given seeds, then replays the recipe.
type Processor struct {
	Seeds      []image.Point
	FillColor  string
	Tolerance  int
	Recipe     *Recipe
	Width      int
	Height     int
	Background string
	UndoLimit  int
	Debug      bool
	Preview    bool
	Logger     *log.Logger
	Spinner    *utils.Spinner
}

// Process paints the image read from r and encodes the result into w.
// When r is nil a blank canvas is used. The output format follows the
// extension of w when it is a file, PNG otherwise.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	canvas, err := p.newCanvas(r)
	if err != nil {
		return err
	}
	if err := p.Paint(canvas); err != nil {
		return err
	}
	return encodeTo(w, canvas.Image())
}

// Paint applies the seed fills and the recipe on canvas.
func (p *Processor) Paint(canvas *Canvas) error {
	f := Filler{Tolerance: p.Tolerance}
	for _, seed := range p.Seeds {
		stats, err := f.Fill(canvas, seed, p.FillColor)
		if err != nil {
			return err
		}
		p.debugf("fill at %v: %d pixels in %d layers", seed, stats.Filled, stats.Layers)
	}

	if p.Recipe == nil {
		return nil
	}
	sess, err := p.NewSession(canvas)
	if err != nil {
		return err
	}
	return p.Recipe.Replay(sess)
}

// NewSession creates a session on canvas configured from the processor options.
func (p *Processor) NewSession(canvas *Canvas) (*Session, error) {
	opts := []SessionOption{
		WithUndoLimit(p.UndoLimit),
		WithTolerance(p.Tolerance),
	}
	if p.FillColor != "" {
		opts = append(opts, WithColor(p.FillColor))
	}
	if p.Debug {
		opts = append(opts, WithLogger(p.logger()))
	}
	return NewSession(canvas, opts...)
}

// newCanvas decodes the source image or creates a blank canvas.
func (p *Processor) newCanvas(r io.Reader) (*Canvas, error) {
	if r == nil {
		return p.BlankCanvas()
	}
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return CanvasFromImage(img), nil
}

// BlankCanvas returns an empty canvas using the processor dimensions and
// background, falling back to the recipe and then to the defaults.
func (p *Processor) BlankCanvas() (*Canvas, error) {
	rc := Recipe{Width: p.Width, Height: p.Height, Background: p.Background}
	if p.Recipe != nil {
		if rc.Width == 0 {
			rc.Width = p.Recipe.Width
		}
		if rc.Height == 0 {
			rc.Height = p.Recipe.Height
		}
		if rc.Background == "" {
			rc.Background = p.Recipe.Background
		}
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc.NewCanvas(), nil
}

func (p *Processor) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.New(os.Stderr, "pixpaint: ", 0)
}

func (p *Processor) debugf(format string, args ...any) {
	if p.Debug {
		p.logger().Printf(format, args...)
	}
}

// encodeTo encodes img into w. Files are encoded by their extension.
func encodeTo(w io.Writer, img image.Image) error {
	if f, ok := w.(*os.File); ok {
		ext := filepath.Ext(f.Name())
		if ext != "" && f != os.Stdout {
			return Encode(w, img, ext)
		}
	}
	if err := Encode(w, img, ".png"); err != nil {
		return fmt.Errorf("could not encode the image: %w", err)
	}
	return nil
}
