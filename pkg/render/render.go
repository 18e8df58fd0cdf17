// Package render rasterizes a canvas to an image with fogleman/gg.
// Nodes draw in z-index order with per-variant chrome; edges draw
// beneath them, anchored on node boundaries.
package render

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
	"cineboard/pkg/geom"
	"cineboard/pkg/layout"
)

const (
	cornerRadius  = 6.0
	arrowSize     = 10.0
	labelFontSize = 13.0
)

type Renderer struct {
	width  int
	height int
	face   font.Face
}

// NewRenderer creates a renderer for the given output size in pixels.
func NewRenderer(width, height int) (*Renderer, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing builtin font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: labelFontSize})
	return &Renderer{width: width, height: height, face: face}, nil
}

// Resize changes the output size for subsequent frames.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws the engine's current state through the viewport and
// returns the finished frame.
func (r *Renderer) Render(e *engine.Engine, vp geom.Viewport) image.Image {
	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(0.13, 0.13, 0.15)
	dc.Clear()

	dc.Translate(vp.OffsetX, vp.OffsetY)
	dc.Scale(vp.Scale, vp.Scale)
	dc.SetFontFace(r.face)

	rects := e.RenderRects()
	nodes := e.Nodes()

	for _, ed := range e.Edges() {
		r.drawEdge(dc, e, ed, vp.Scale)
	}

	for _, n := range byZAscending(nodes) {
		if layout.Hidden(n, nodes) {
			continue
		}
		rect, ok := rects[n.ID]
		if !ok {
			// Not laid out this frame; skip rather than crash.
			continue
		}
		r.drawNode(dc, n, rect, e.IsSelected(n.ID), vp.Scale)
	}

	if from, to, ok := e.ConnectGhost(); ok {
		dc.SetDash(6, 4)
		dc.SetRGBA(0.8, 0.8, 0.9, 0.8)
		dc.SetLineWidth(1.5 / vp.Scale)
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()
		dc.SetDash()
	}

	if box, ok := e.Marquee(); ok {
		dc.SetRGBA(0.3, 0.5, 0.9, 0.15)
		dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		dc.Fill()
		dc.SetRGBA(0.3, 0.5, 0.9, 0.7)
		dc.SetLineWidth(1 / vp.Scale)
		dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		dc.Stroke()
	}

	return dc.Image()
}

func (r *Renderer) drawNode(dc *gg.Context, n *board.Node, rect geom.Rect, selected bool, scale float64) {
	fill := nodeFill(n.Type)
	dc.SetRGB(fill[0], fill[1], fill[2])
	dc.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, cornerRadius)
	dc.Fill()

	if n.IsColumn() {
		h := layout.HeaderHeight
		if rect.Height < h {
			h = rect.Height
		}
		dc.SetRGB(0.24, 0.26, 0.32)
		dc.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, h, cornerRadius)
		dc.Fill()
		if n.Column != nil && n.Column.Title != "" {
			dc.SetRGB(0.9, 0.9, 0.92)
			dc.DrawStringAnchored(n.Column.Title, rect.X+10, rect.Y+layout.HeaderHeight/2, 0, 0.35)
		}
	} else if title := nodeTitle(n); title != "" {
		dc.SetRGB(0.12, 0.12, 0.14)
		dc.DrawStringAnchored(title, rect.X+8, rect.Y+16, 0, 0.35)
	}

	dc.SetLineWidth(1 / scale)
	dc.SetRGB(0.1, 0.1, 0.12)
	if selected {
		dc.SetLineWidth(2 / scale)
		dc.SetRGB(0.35, 0.55, 0.95)
	}
	dc.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, cornerRadius)
	dc.Stroke()
}

func (r *Renderer) drawEdge(dc *gg.Context, e *engine.Engine, ed *board.Edge, scale float64) {
	p1, p2, ok := e.EdgeSegment(ed.ID)
	if !ok {
		return
	}

	if e.SelectedEdge() == ed.ID {
		dc.SetRGB(0.35, 0.55, 0.95)
		dc.SetLineWidth(2.5 / scale)
	} else {
		dc.SetRGB(0.6, 0.6, 0.65)
		dc.SetLineWidth(1.5 / scale)
	}
	dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	dc.Stroke()

	drawArrowhead(dc, p1, p2, scale)

	if ed.Label != "" {
		mx := (p1.X + p2.X) / 2
		my := (p1.Y + p2.Y) / 2
		dc.SetRGB(0.85, 0.85, 0.9)
		dc.DrawStringAnchored(ed.Label, mx, my-6, 0.5, 0)
	}
}

func drawArrowhead(dc *gg.Context, from, to geom.Point, scale float64) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux := dx / l
	uy := dy / l
	s := arrowSize / scale

	bx := to.X - ux*s
	by := to.Y - uy*s
	dc.MoveTo(to.X, to.Y)
	dc.LineTo(bx-uy*s/2, by+ux*s/2)
	dc.LineTo(bx+uy*s/2, by-ux*s/2)
	dc.ClosePath()
	dc.Fill()
}

func nodeFill(t board.NodeType) [3]float64 {
	switch t {
	case board.NodeColumn:
		return [3]float64{0.18, 0.19, 0.23}
	case board.NodeImage:
		return [3]float64{0.55, 0.58, 0.62}
	case board.NodePrompt:
		return [3]float64{0.93, 0.87, 0.7}
	case board.NodeVideo:
		return [3]float64{0.62, 0.55, 0.68}
	default: // note
		return [3]float64{0.95, 0.93, 0.82}
	}
}

func nodeTitle(n *board.Node) string {
	switch {
	case n.Note != nil:
		return n.Note.Title
	case n.Prompt != nil:
		return n.Prompt.Title
	case n.Video != nil:
		return n.Video.Filename
	case n.Image != nil:
		return n.Image.Src
	}
	return ""
}

func byZAscending(nodes []*board.Node) []*board.Node {
	out := make([]*board.Node, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}
