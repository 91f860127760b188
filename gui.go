package pixpaint

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const statusHeight = 28

var (
	defaultBkgColor    = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	defaultStatusColor = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

// Palette holds the colors selected with the keys 1 to 9.
var Palette = [9]string{
	"#000000", "#ffffff", "#ff0000",
	"#00ff00", "#0000ff", "#ffff00",
	"#ff00ff", "#00ffff", "#808080",
}

// toolKeys maps the tool shortcuts to the tool names.
var toolKeys = map[string]string{
	"L": toolLine,
	"R": toolRectangle,
	"C": toolCircle,
	"T": toolTriangle,
	"B": toolPaintBucket,
	"P": toolPencil,
	"U": toolBrush,
	"E": toolEraser,
}

// shortcuts is the key set handled by the paint window.
const shortcuts = key.Set("Short-Z|Short-Shift-S|[L,R,C,T,B,P,U,E,1,2,3,4,5,6,7,8,9," + key.NameEscape + "]")

// Gui is a paint window hosting a Session. All the session calls happen
// on the window event loop.
type Gui struct {
	cfg struct {
		window struct {
			w, h  int
			title string
		}
		savePath string
	}
	sess *Session
	th   *material.Theme

	cursor image.Point
	hover  bool
	status string
	quit   bool

	imgRev uint64
	imgOp  paint.ImageOp
	hasImg bool
}

// NewGUI creates the paint window state for s. Short-Shift-S saves the
// canvas into savePath, or DefaultExportName when savePath is empty.
func NewGUI(s *Session, savePath string) *Gui {
	if savePath == "" {
		savePath = DefaultExportName
	}
	g := &Gui{sess: s}
	b := s.Canvas().Bounds()
	g.cfg.window.w, g.cfg.window.h = b.Dx(), b.Dy()
	g.cfg.window.title = "Pixpaint"
	g.cfg.savePath = savePath
	g.status = g.toolStatus()

	return g
}

// Run opens the window and serves its events until it gets closed.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.window.title),
		app.Size(unit.Dp(g.cfg.window.w), unit.Dp(g.cfg.window.h+statusHeight)),
	)
	g.th = material.NewTheme(gofont.Collection())
	g.sess.Canvas().OnCommit = func(*image.NRGBA) { w.Invalidate() }
	defer func() { g.sess.Canvas().OnCommit = nil }()

	var ops op.Ops
	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			g.handleEvents(gtx)
			if g.quit {
				w.Perform(system.ActionClose)
			}
			g.draw(gtx)
			e.Frame(gtx.Ops)
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// handleEvents dispatches the queued input events of the frame.
func (g *Gui) handleEvents(gtx C) {
	for _, ev := range gtx.Events(g) {
		switch e := ev.(type) {
		case key.Event:
			if e.State == key.Press {
				g.handleKey(e.Name, e.Modifiers)
			}
		case pointer.Event:
			g.handlePointer(e.Type, image.Pt(int(e.Position.X), int(e.Position.Y)))
		}
	}
}

// handlePointer drives the session with the pointer events over the canvas.
func (g *Gui) handlePointer(typ pointer.Type, p image.Point) {
	g.cursor = p
	g.hover = true

	switch typ {
	case pointer.Press:
		g.sess.PointerDown(p)
	case pointer.Drag:
		g.sess.PointerMove(p)
	case pointer.Release, pointer.Cancel:
		g.sess.PointerUp()
	case pointer.Leave:
		g.hover = false
	}
}

// handleKey runs the action bound to the key name.
func (g *Gui) handleKey(name string, mods key.Modifiers) {
	switch {
	case name == key.NameEscape:
		g.quit = true
	case name == "Z" && mods.Contain(key.ModShortcut):
		if err := g.sess.Undo(); err != nil {
			g.status = "Nothing to undo"
			return
		}
		g.status = fmt.Sprintf("Undo (%d left)", g.sess.UndoLevels())
	case name == "S" && mods.Contain(key.ModShortcut|key.ModShift):
		g.save()
	case len(name) == 1 && name[0] >= '1' && name[0] <= '9':
		hex := Palette[name[0]-'1']
		if err := g.sess.SetColor(hex); err != nil {
			g.status = err.Error()
			return
		}
		g.status = g.toolStatus()
	default:
		tool, ok := toolKeys[name]
		if !ok {
			return
		}
		if err := g.sess.SelectTool(tool); err != nil {
			g.status = err.Error()
			return
		}
		g.status = g.toolStatus()
	}
}

func (g *Gui) save() {
	path := g.cfg.savePath
	ext := strings.ToLower(filepath.Ext(path))
	if !isEncodable(ext) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if err := SaveImage(path, g.sess.Canvas().Image()); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "Saved as " + filepath.Base(path)
}

func (g *Gui) toolStatus() string {
	return fmt.Sprintf("%s  %s", g.sess.Tool().Name(), g.sess.Color().Hex())
}

// draw lays out the canvas, the cursor footprint and the status line.
func (g *Gui) draw(gtx C) {
	paint.Fill(gtx.Ops, defaultBkgColor)

	canvas := g.sess.Canvas()
	size := canvas.Bounds().Size()
	if !g.hasImg || g.imgRev != canvas.Revision() {
		g.imgOp = paint.NewImageOp(canvas.Image())
		g.imgRev = canvas.Revision()
		g.hasImg = true
	}

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	g.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Leave,
	}.Add(gtx.Ops)
	if g.hover {
		g.drawFootprint(gtx.Ops)
	}
	area.Pop()

	key.InputOp{Tag: g, Keys: shortcuts}.Add(gtx.Ops)
	key.FocusOp{Tag: g}.Add(gtx.Ops)

	g.drawStatus(gtx, size.Y)
}

// drawStatus displays the status line under the canvas.
func (g *Gui) drawStatus(gtx C, top int) {
	if g.th == nil {
		return
	}
	defer op.Offset(image.Pt(0, top)).Push(gtx.Ops).Pop()

	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(statusHeight))
	layout.Inset{Left: unit.Dp(6), Top: unit.Dp(4)}.Layout(gtx, func(gtx C) D {
		lbl := material.Label(g.th, unit.Sp(14), g.status)
		lbl.Color = defaultStatusColor
		return lbl.Layout(gtx)
	})
}
