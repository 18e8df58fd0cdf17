package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"cineboard/pkg/engine"
	"cineboard/pkg/geom"
	"cineboard/pkg/render"
)

// boardSurface is the interactive canvas widget. It translates desktop
// mouse events into world-coordinate pointer events, feeds them to the
// engine, and blits rendered frames into a fyne image.
type boardSurface struct {
	widget.BaseWidget

	eng  *engine.Engine
	rend *render.Renderer
	cfg  *Config

	vp      geom.Viewport
	img     *canvas.Image
	pressed bool

	// onFrame runs after every redraw, for status display.
	onFrame func()
}

var (
	_ desktop.Mouseable = (*boardSurface)(nil)
	_ desktop.Hoverable = (*boardSurface)(nil)
	_ fyne.Scrollable   = (*boardSurface)(nil)
)

func newBoardSurface(eng *engine.Engine, rend *render.Renderer, cfg *Config) *boardSurface {
	s := &boardSurface{
		eng:  eng,
		rend: rend,
		cfg:  cfg,
		vp:   geom.NewViewport(),
	}
	s.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.img.FillMode = canvas.ImageFillStretch
	s.ExtendBaseWidget(s)
	return s
}

func (s *boardSurface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s, objects: []fyne.CanvasObject{s.img}}
}

func (s *boardSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	wx, wy := s.vp.ScreenToWorld(float64(ev.Position.X), float64(ev.Position.Y))
	shift := ev.Modifier&fyne.KeyModifierShift != 0
	s.pressed = true
	s.eng.PointerDown(wx, wy, shift)
	s.redraw()
}

func (s *boardSurface) MouseUp(ev *desktop.MouseEvent) {
	if !s.pressed {
		return
	}
	wx, wy := s.vp.ScreenToWorld(float64(ev.Position.X), float64(ev.Position.Y))
	s.pressed = false
	s.eng.PointerUp(wx, wy)
	s.redraw()
}

func (s *boardSurface) MouseIn(*desktop.MouseEvent) {}
func (s *boardSurface) MouseOut()                   {}

func (s *boardSurface) MouseMoved(ev *desktop.MouseEvent) {
	if !s.pressed {
		return
	}
	wx, wy := s.vp.ScreenToWorld(float64(ev.Position.X), float64(ev.Position.Y))
	s.eng.PointerMove(wx, wy)
	s.redraw()
}

// Scrolled zooms around the cursor with Ctrl held, otherwise pans.
func (s *boardSurface) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Modifiers&fyne.KeyModifierControl > 0 {
		factor := 1.0 + float64(ev.Scrolled.DY)*0.01
		scale := s.vp.Scale * factor
		if scale < s.cfg.View.MinZoom {
			scale = s.cfg.View.MinZoom
		}
		if scale > s.cfg.View.MaxZoom {
			scale = s.cfg.View.MaxZoom
		}
		s.vp = s.vp.ZoomAtPoint(float64(ev.Position.X), float64(ev.Position.Y), scale)
		s.eng.SetViewScale(s.vp.Scale)
	} else {
		s.vp.OffsetX += float64(ev.Scrolled.DX)
		s.vp.OffsetY += float64(ev.Scrolled.DY)
	}
	s.redraw()
}

func (s *boardSurface) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		s.eng.KeyDown(engine.KeyEscape)
	case fyne.KeyDelete:
		s.eng.KeyDown(engine.KeyDelete)
	case fyne.KeyBackspace:
		s.eng.KeyDown(engine.KeyBackspace)
	default:
		return
	}
	s.redraw()
}

// CanvasRect returns the world-space rectangle currently visible in
// the widget.
func (s *boardSurface) CanvasRect() geom.Rect {
	sz := s.Size()
	x, y := s.vp.ScreenToWorld(0, 0)
	return geom.Rect{
		X:      x,
		Y:      y,
		Width:  float64(sz.Width) / s.vp.Scale,
		Height: float64(sz.Height) / s.vp.Scale,
	}
}

// worldCenter is where toolbar actions place new nodes.
func (s *boardSurface) worldCenter() (float64, float64) {
	c := s.CanvasRect().Center()
	return c.X, c.Y
}

func (s *boardSurface) redraw() {
	sz := s.Size()
	w, h := int(sz.Width), int(sz.Height)
	if w <= 0 || h <= 0 {
		return
	}
	s.rend.Resize(w, h)
	s.img.Image = s.rend.Render(s.eng, s.vp)
	s.img.Refresh()
	if s.onFrame != nil {
		s.onFrame()
	}
}

type surfaceRenderer struct {
	s       *boardSurface
	objects []fyne.CanvasObject
}

func (r *surfaceRenderer) Destroy()                     {}
func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *surfaceRenderer) MinSize() fyne.Size           { return fyne.NewSize(640, 480) }

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.s.img.Resize(size)
	r.s.img.Move(fyne.NewPos(0, 0))
	r.s.redraw()
}

func (r *surfaceRenderer) Refresh() {
	r.s.redraw()
	canvas.Refresh(r.s)
}
