package pixpaint

import (
	"fmt"
	"image"
	"io"
	"log"
)

// Session is the state of one drawing surface: the canvas, the selected tool
// and color, the undo history and the state of the current pointer drag.
// Every handler operates on its own session, so independent canvases can
// live side by side.
//
// A Session is not safe for concurrent use.
type Session struct {
	canvas  *Canvas
	history *History
	logger  *log.Logger

	tool      Tool
	color     Color
	lineWidth float64
	brushSize float64
	tolerance int

	dragging bool
	start    image.Point
	last     image.Point
	saved    *image.NRGBA
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	undoLimit int
	tool      string
	color     string
	lineWidth float64
	brushSize float64
	tolerance int
	logger    *log.Logger
}

// WithUndoLimit sets the number of undo steps kept.
func WithUndoLimit(n int) SessionOption {
	return func(c *sessionConfig) { c.undoLimit = n }
}

// WithTool selects the initial tool by name.
func WithTool(name string) SessionOption {
	return func(c *sessionConfig) { c.tool = name }
}

// WithColor selects the initial color as #RRGGBB.
func WithColor(hex string) SessionOption {
	return func(c *sessionConfig) { c.color = hex }
}

// WithLineWidth sets the stroke width of the shape tools and the pencil.
func WithLineWidth(w float64) SessionOption {
	return func(c *sessionConfig) { c.lineWidth = w }
}

// WithBrushSize sets the size of the brush and the eraser.
func WithBrushSize(size float64) SessionOption {
	return func(c *sessionConfig) { c.brushSize = size }
}

// WithTolerance sets the color tolerance of the paint bucket.
func WithTolerance(tol int) SessionOption {
	return func(c *sessionConfig) { c.tolerance = tol }
}

// WithLogger enables debug output of the session operations.
func WithLogger(l *log.Logger) SessionOption {
	return func(c *sessionConfig) { c.logger = l }
}

// NewSession creates a session drawing on canvas. Without options the line
// tool is selected with a black color, a line width of 3 and a brush size of 4.
func NewSession(canvas *Canvas, opts ...SessionOption) (*Session, error) {
	cfg := sessionConfig{
		undoLimit: DefaultUndoLimit,
		tool:      toolLine,
		color:     DefaultColor,
		lineWidth: DefaultLineWidth,
		brushSize: DefaultBrushSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	col, err := ParseHex(cfg.color)
	if err != nil {
		return nil, err
	}
	tool, err := ParseTool(cfg.tool, cfg.lineWidth, cfg.brushSize)
	if err != nil {
		return nil, err
	}

	s := &Session{
		canvas:    canvas,
		history:   NewHistory(cfg.undoLimit),
		logger:    cfg.logger,
		color:     col,
		lineWidth: cfg.lineWidth,
		brushSize: cfg.brushSize,
		tolerance: cfg.tolerance,
	}
	s.tool = s.configure(tool)
	return s, nil
}

// Canvas returns the surface the session draws on.
func (s *Session) Canvas() *Canvas { return s.canvas }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Color returns the active color.
func (s *Session) Color() Color { return s.color }

// UndoLevels returns the number of available undo steps.
func (s *Session) UndoLevels() int { return s.history.Len() }

// Dragging reports whether a pointer drag is in progress.
func (s *Session) Dragging() bool { return s.dragging }

// LineWidth returns the stroke width used by the shape tools and the pencil.
func (s *Session) LineWidth() float64 { return s.lineWidth }

// BrushSize returns the size used by the brush and the eraser.
func (s *Session) BrushSize() float64 { return s.brushSize }

// SetTool activates t. The session line width, brush size and tolerance are applied to it.
func (s *Session) SetTool(t Tool) {
	s.tool = s.configure(t)
	s.debugf("tool: %s", t.Name())
}

// SelectTool activates the tool with the given name.
func (s *Session) SelectTool(name string) error {
	t, err := ParseTool(name, s.lineWidth, s.brushSize)
	if err != nil {
		return err
	}
	s.SetTool(t)
	return nil
}

func (s *Session) configure(t Tool) Tool {
	t = withBrushSize(withLineWidth(t, s.lineWidth), s.brushSize)
	if _, ok := t.(PaintBucket); ok {
		t = PaintBucket{Tolerance: s.tolerance}
	}
	return t
}

// SetColor changes the active color. A malformed color leaves it unchanged.
func (s *Session) SetColor(hex string) error {
	col, err := ParseHex(hex)
	if err != nil {
		return err
	}
	s.color = col
	s.debugf("color: %s", col.Hex())
	return nil
}

// SetLineWidth changes the stroke width of the shape tools and the pencil.
func (s *Session) SetLineWidth(w float64) {
	s.lineWidth = w
	s.tool = withLineWidth(s.tool, w)
}

// SetTolerance changes the color tolerance of the paint bucket.
func (s *Session) SetTolerance(tol int) {
	s.tolerance = tol
	s.tool = s.configure(s.tool)
}

// SetBrushSize changes the size of the brush and the eraser.
func (s *Session) SetBrushSize(size float64) {
	s.brushSize = size
	s.tool = withBrushSize(s.tool, size)
}

// PointerDown starts an interaction at p. The canvas state is saved on the
// undo history first.
func (s *Session) PointerDown(p image.Point) {
	snap := s.canvas.Snapshot()
	s.history.Push(snap)
	if isShape(s.tool) {
		// Snapshots are never written to, the history copy can be shared.
		s.saved = snap
	}

	s.dragging = true
	s.start, s.last = p, p

	switch t := s.tool.(type) {
	case PaintBucket:
		f := Filler{Tolerance: t.Tolerance}
		stats := f.FillColor(s.canvas, p, s.color)
		s.debugf("fill at %v with %s: %d pixels, %d visits, %d layers",
			p, s.color.Hex(), stats.Filled, stats.Visited, stats.Layers)
	case Eraser:
		s.erase(p, t.Size)
	case Pencil, Brush:
		// The freehand path starts here, segments are added on move.
	case Line, Rectangle, Circle, Triangle:
		// Shapes are rubber-banded on move.
	}
}

// PointerMove continues the interaction at p. Moves without a preceding
// PointerDown are ignored.
func (s *Session) PointerMove(p image.Point) {
	if !s.dragging {
		return
	}
	switch t := s.tool.(type) {
	case Line, Rectangle, Circle, Triangle:
		if s.saved == nil {
			// The tool changed during the drag.
			s.saved = s.canvas.Snapshot()
		}
		s.canvas.load(s.saved)
		strokeShape(s.canvas, t, s.start, p, s.color)
		s.canvas.Commit()
	case Pencil:
		strokeSegment(s.canvas, s.last, p, t.Width, s.color)
		s.canvas.Commit()
	case Brush:
		strokeSegment(s.canvas, s.last, p, t.Size, s.color)
		s.canvas.Commit()
	case Eraser:
		s.erase(p, t.Size)
	case PaintBucket:
	}
	s.last = p
}

// PointerUp ends the current interaction.
func (s *Session) PointerUp() {
	s.dragging = false
	s.saved = nil
}

// Undo restores the canvas as it was before the last interaction.
func (s *Session) Undo() error {
	snap, err := s.history.Pop()
	if err != nil {
		return err
	}
	s.PointerUp()
	s.canvas.Restore(snap)
	s.debugf("undo: %d steps left", s.history.Len())
	return nil
}

// Export encodes the canvas in the format given by the file extension ext.
func (s *Session) Export(w io.Writer, ext string) error {
	if err := Encode(w, s.canvas.Image(), ext); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func (s *Session) erase(p image.Point, size int) {
	s.canvas.ClearRect(image.Rect(p.X, p.Y, p.X+size, p.Y+size))
}

func (s *Session) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
