package render

import (
	"image"
	"image/color"
	"testing"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
	"cineboard/pkg/geom"
)

func pixelNear(t *testing.T, img image.Image, x, y int, want [3]float64, what string) {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	c := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
	wr := uint8(want[0] * 255)
	wg := uint8(want[1] * 255)
	wb := uint8(want[2] * 255)
	const tol = 12
	if absDiff(c.R, wr) > tol || absDiff(c.G, wg) > tol || absDiff(c.B, wb) > tol {
		t.Errorf("%s: pixel (%d,%d) = %v, want near (%d,%d,%d)", what, x, y, c, wr, wg, wb)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestRenderDrawsNodeFill(t *testing.T) {
	n := &board.Node{
		ID: "n", Type: board.NodeNote,
		X: 100, Y: 100, Width: 200, Height: 120, ZIndex: 1,
		Note: &board.NoteData{},
	}
	e := engine.New(engine.WithNodes([]*board.Node{n}))

	r, err := NewRenderer(400, 400)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img := r.Render(e, geom.NewViewport())

	pixelNear(t, img, 200, 160, nodeFill(board.NodeNote), "note body")
	pixelNear(t, img, 10, 10, [3]float64{0.13, 0.13, 0.15}, "background")
}

func TestRenderRespectsZOrder(t *testing.T) {
	lo := &board.Node{ID: "lo", Type: board.NodeNote, X: 0, Y: 0, Width: 200, Height: 120, ZIndex: 1, Note: &board.NoteData{}}
	hi := &board.Node{ID: "hi", Type: board.NodePrompt, X: 50, Y: 30, Width: 200, Height: 120, ZIndex: 2, Prompt: &board.PromptData{}}
	e := engine.New(engine.WithNodes([]*board.Node{lo, hi}))

	r, err := NewRenderer(300, 200)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img := r.Render(e, geom.NewViewport())

	// The overlap region shows the higher node's fill.
	pixelNear(t, img, 120, 90, nodeFill(board.NodePrompt), "overlap")
}

func TestRenderHidesCollapsedChildren(t *testing.T) {
	col := &board.Node{
		ID: "c", Type: board.NodeColumn,
		X: 0, Y: 0, Width: 240, Height: 116, ZIndex: 1,
		Column: &board.ColumnData{Collapsed: true, ChildOrder: []string{"a"}},
	}
	child := &board.Node{
		ID: "a", Type: board.NodeNote,
		Width: 200, Height: 120, ZIndex: 2, ParentID: "c",
		Note: &board.NoteData{},
	}
	e := engine.New(engine.WithNodes([]*board.Node{col, child}))

	r, err := NewRenderer(400, 400)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	img := r.Render(e, geom.NewViewport())

	// Below the collapsed header there is only background.
	pixelNear(t, img, 120, 200, [3]float64{0.13, 0.13, 0.15}, "area under collapsed column")
}

func TestRenderAppliesViewport(t *testing.T) {
	n := &board.Node{
		ID: "n", Type: board.NodeNote,
		X: 0, Y: 0, Width: 100, Height: 100, ZIndex: 1,
		Note: &board.NoteData{},
	}
	e := engine.New(engine.WithNodes([]*board.Node{n}))

	r, err := NewRenderer(400, 400)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	vp := geom.Viewport{Scale: 2, OffsetX: 100, OffsetY: 100}
	img := r.Render(e, vp)

	// World (50,50) maps to screen (200,200).
	pixelNear(t, img, 200, 200, nodeFill(board.NodeNote), "scaled node")
	pixelNear(t, img, 50, 50, [3]float64{0.13, 0.13, 0.15}, "outside the node")
}
