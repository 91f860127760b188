package pixpaint

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Default canvas size of a recipe without explicit dimensions.
const (
	DefaultCanvasWidth  = 640
	DefaultCanvasHeight = 480
)

// Recipe describes a drawing as a list of steps replayed on a session.
//
//	width: 200
//	height: 100
//	background: "#ffffff"
//	steps:
//	  - tool: rectangle
//	    color: "#000000"
//	    width: 2
//	    points: [[10, 10], [90, 60]]
//	  - tool: paint-bucket
//	    color: "#ff0000"
//	    points: [[50, 30]]
//	  - undo: true
type Recipe struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Steps      []Step `yaml:"steps"`
}

// Step is one pointer interaction: press on the first point, drag through
// the others and release. Tool, color and sizes persist for the next steps.
type Step struct {
	Tool      string  `yaml:"tool,omitempty"`
	Color     string  `yaml:"color,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	Size      float64 `yaml:"size,omitempty"`
	Tolerance *int    `yaml:"tolerance,omitempty"`
	Points    [][]int `yaml:"points,omitempty"`
	Undo      bool    `yaml:"undo,omitempty"`
}

// ParseRecipe decodes and validates a YAML recipe.
func ParseRecipe(r io.Reader) (*Recipe, error) {
	var rc Recipe

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not decode the recipe: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

// LoadRecipe reads the recipe file at path.
func LoadRecipe(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the recipe: %w", err)
	}
	defer f.Close()

	return ParseRecipe(f)
}

// Validate checks the recipe for malformed colors, tools and points.
func (rc *Recipe) Validate() error {
	if rc.Width < 0 || rc.Height < 0 {
		return fmt.Errorf("invalid canvas size %dx%d", rc.Width, rc.Height)
	}
	if rc.Background != "" {
		if _, err := ParseHex(rc.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	for i, st := range rc.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	if st.Undo {
		if st.Tool != "" || len(st.Points) > 0 {
			return errors.New("an undo step takes no tool or points")
		}
		return nil
	}
	if st.Color != "" {
		if _, err := ParseHex(st.Color); err != nil {
			return err
		}
	}
	if st.Tool != "" {
		if _, err := ParseTool(st.Tool, DefaultLineWidth, DefaultBrushSize); err != nil {
			return err
		}
	}
	if st.Width < 0 || st.Size < 0 {
		return errors.New("negative width or size")
	}
	for _, p := range st.Points {
		if len(p) != 2 {
			return fmt.Errorf("point %v: expected [x, y]", p)
		}
	}
	return nil
}

// NewCanvas returns a blank canvas sized and painted as the recipe asks.
func (rc *Recipe) NewCanvas() *Canvas {
	w, h := rc.Width, rc.Height
	if w == 0 {
		w = DefaultCanvasWidth
	}
	if h == 0 {
		h = DefaultCanvasHeight
	}
	bg := MustParseHex("#ffffff")
	if rc.Background != "" {
		bg = MustParseHex(rc.Background)
	}
	return NewCanvas(w, h, bg.NRGBA())
}

// Replay performs the recipe steps on s.
func (rc *Recipe) Replay(s *Session) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	for i, st := range rc.Steps {
		if err := st.apply(s); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (st Step) apply(s *Session) error {
	if st.Undo {
		return s.Undo()
	}
	if st.Color != "" {
		if err := s.SetColor(st.Color); err != nil {
			return err
		}
	}
	if st.Width > 0 {
		s.SetLineWidth(st.Width)
	}
	if st.Size > 0 {
		s.SetBrushSize(st.Size)
	}
	if st.Tolerance != nil {
		s.SetTolerance(*st.Tolerance)
	}
	if st.Tool != "" {
		if err := s.SelectTool(st.Tool); err != nil {
			return err
		}
	}
	if len(st.Points) == 0 {
		return nil
	}

	s.PointerDown(image.Pt(st.Points[0][0], st.Points[0][1]))
	for _, p := range st.Points[1:] {
		s.PointerMove(image.Pt(p[0], p[1]))
	}
	s.PointerUp()
	return nil
}
