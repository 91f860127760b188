package pixpaint

import (
	"errors"
	"fmt"
	"strings"
)

// Default tool parameters.
const (
	DefaultLineWidth = 3
	DefaultBrushSize = 4
	DefaultColor     = "#000000"
)

// ErrUnknownTool is returned by ParseTool for unsupported tool names.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is one of the drawing tools: Line, Rectangle, Circle, Triangle,
// PaintBucket, Pencil, Brush or Eraser. The set is closed.
type Tool interface {
	// Name returns the tag used on the command line and in recipes.
	Name() string
	isTool()
}

type (
	// Line strokes a straight segment from the press point to the pointer.
	Line struct{ Width float64 }
	// Rectangle strokes an axis aligned rectangle spanned by the press point and the pointer.
	Rectangle struct{ Width float64 }
	// Circle strokes a circle centered on the press point through the pointer.
	Circle struct{ Width float64 }
	// Triangle strokes an isosceles triangle inscribed in the dragged box.
	Triangle struct{ Width float64 }
	// PaintBucket flood fills the region under the pointer.
	PaintBucket struct{ Tolerance int }
	// Pencil draws a thin freehand line.
	Pencil struct{ Width float64 }
	// Brush draws a thick freehand line.
	Brush struct{ Size float64 }
	// Eraser clears a square of Size pixels under the pointer.
	Eraser struct{ Size int }
)

const (
	toolLine        = "line"
	toolRectangle   = "rectangle"
	toolCircle      = "circle"
	toolTriangle    = "triangle"
	toolPaintBucket = "paint-bucket"
	toolPencil      = "pencil"
	toolBrush       = "brush"
	toolEraser      = "eraser"
)

func (Line) Name() string        { return toolLine }
func (Rectangle) Name() string   { return toolRectangle }
func (Circle) Name() string      { return toolCircle }
func (Triangle) Name() string    { return toolTriangle }
func (PaintBucket) Name() string { return toolPaintBucket }
func (Pencil) Name() string      { return toolPencil }
func (Brush) Name() string       { return toolBrush }
func (Eraser) Name() string      { return toolEraser }

func (Line) isTool()        {}
func (Rectangle) isTool()   {}
func (Circle) isTool()      {}
func (Triangle) isTool()    {}
func (PaintBucket) isTool() {}
func (Pencil) isTool()      {}
func (Brush) isTool()       {}
func (Eraser) isTool()      {}

// ToolNames lists the supported tool tags.
func ToolNames() []string {
	return []string{
		toolLine, toolRectangle, toolCircle, toolTriangle,
		toolPaintBucket, toolPencil, toolBrush, toolEraser,
	}
}

// ParseTool returns the tool identified by name. Shape tools and the pencil
// take lineWidth, the brush and the eraser take brushSize.
func ParseTool(name string, lineWidth, brushSize float64) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case toolLine:
		return Line{Width: lineWidth}, nil
	case toolRectangle:
		return Rectangle{Width: lineWidth}, nil
	case toolCircle:
		return Circle{Width: lineWidth}, nil
	case toolTriangle:
		return Triangle{Width: lineWidth}, nil
	case toolPaintBucket, "bucket", "fill":
		return PaintBucket{}, nil
	case toolPencil:
		return Pencil{Width: lineWidth}, nil
	case toolBrush:
		return Brush{Size: brushSize}, nil
	case toolEraser:
		return Eraser{Size: int(brushSize)}, nil
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownTool, name, strings.Join(ToolNames(), ", "))
}

// withLineWidth returns t with its stroke width replaced, for the tools that have one.
func withLineWidth(t Tool, w float64) Tool {
	switch t := t.(type) {
	case Line:
		t.Width = w
		return t
	case Rectangle:
		t.Width = w
		return t
	case Circle:
		t.Width = w
		return t
	case Triangle:
		t.Width = w
		return t
	case Pencil:
		t.Width = w
		return t
	}
	return t
}

// withBrushSize returns t with its brush size replaced, for the brush and the eraser.
func withBrushSize(t Tool, size float64) Tool {
	switch t := t.(type) {
	case Brush:
		t.Size = size
		return t
	case Eraser:
		t.Size = int(size)
		return t
	}
	return t
}

// isShape reports whether t is rubber-banded from the press snapshot.
func isShape(t Tool) bool {
	switch t.(type) {
	case Line, Rectangle, Circle, Triangle:
		return true
	}
	return false
}
