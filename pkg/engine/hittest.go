package engine

import (
	"sort"

	"cineboard/pkg/board"
	"cineboard/pkg/geom"
	"cineboard/pkg/layout"
)

// Handle geometry, in world units at scale 1. Handles scale inversely
// with zoom so they keep a constant on-screen size.
const (
	resizeHandleSize   = 12.0
	connectorHitRadius = 10.0
)

// HitTest classifies the world point: the topmost visible node wins
// (handles before body), then the closest edge within tolerance, then
// the background. Hidden nodes (children of collapsed columns) are
// never hit.
func (e *Engine) HitTest(x, y float64) Target {
	rects := e.RenderRects()

	for _, n := range e.nodesByZDescending() {
		if layout.Hidden(n, e.nodes) {
			continue
		}
		r, ok := rects[n.ID]
		if !ok {
			// Present but not laid out this frame: skip, not crash.
			continue
		}
		if e.resizable(n) && resizeHandleRect(r, e.viewScale).Contains(x, y) {
			return Target{Kind: TargetNodeResize, ID: n.ID}
		}
		if connectorHit(r, x, y, e.viewScale) {
			return Target{Kind: TargetNodeConnector, ID: n.ID}
		}
		if r.Contains(x, y) {
			// Children render inside the column body; a containing child
			// wins over the column regardless of stacking order.
			if n.IsColumn() && !n.Collapsed() {
				if t, ok := e.childAt(n, x, y, rects); ok {
					return t
				}
			}
			return Target{Kind: TargetNodeBody, ID: n.ID}
		}
	}

	if id, ok := e.edgeAt(x, y, rects); ok {
		return Target{Kind: TargetEdge, ID: id}
	}
	return Target{Kind: TargetBackground}
}

// childAt hit-tests a column's laid-out children.
func (e *Engine) childAt(col *board.Node, x, y float64, rects map[string]geom.Rect) (Target, bool) {
	for _, n := range e.nodes {
		if n.ParentID != col.ID {
			continue
		}
		r, ok := rects[n.ID]
		if !ok {
			continue
		}
		if connectorHit(r, x, y, e.viewScale) {
			return Target{Kind: TargetNodeConnector, ID: n.ID}, true
		}
		if r.Contains(x, y) {
			return Target{Kind: TargetNodeBody, ID: n.ID}, true
		}
	}
	return Target{}, false
}

// edgeAt returns the closest edge within the hit tolerance of the
// point. Edges with hidden or missing endpoints are skipped.
func (e *Engine) edgeAt(x, y float64, rects map[string]geom.Rect) (string, bool) {
	tol := geom.EdgeHitTolerance / e.viewScale
	bestID := ""
	bestDist := tol

	for _, ed := range e.edges {
		p1, p2, ok := e.edgeSegment(ed, rects)
		if !ok {
			continue
		}
		d := geom.DistToSegment(x, y, p1.X, p1.Y, p2.X, p2.Y)
		if d <= bestDist {
			bestDist = d
			bestID = ed.ID
		}
	}
	return bestID, bestID != ""
}

// edgeSegment returns the rendered segment of an edge, each endpoint
// anchored on its node's boundary toward the other node's center.
func (e *Engine) edgeSegment(ed *board.Edge, rects map[string]geom.Rect) (geom.Point, geom.Point, bool) {
	from := e.node(ed.From)
	to := e.node(ed.To)
	if from == nil || to == nil {
		return geom.Point{}, geom.Point{}, false
	}
	if layout.Hidden(from, e.nodes) || layout.Hidden(to, e.nodes) {
		return geom.Point{}, geom.Point{}, false
	}
	rf, okF := rects[from.ID]
	rt, okT := rects[to.ID]
	if !okF || !okT {
		return geom.Point{}, geom.Point{}, false
	}
	cf := rf.Center()
	ct := rt.Center()
	return geom.EdgeAnchor(rf, ct.X, ct.Y), geom.EdgeAnchor(rt, cf.X, cf.Y), true
}

// EdgeSegment exposes the rendered segment of an edge for drawing.
func (e *Engine) EdgeSegment(id string) (geom.Point, geom.Point, bool) {
	for _, ed := range e.edges {
		if ed.ID == id {
			return e.edgeSegment(ed, e.RenderRects())
		}
	}
	return geom.Point{}, geom.Point{}, false
}

// nodesByZDescending returns the nodes topmost first, for hit-testing.
func (e *Engine) nodesByZDescending() []*board.Node {
	out := make([]*board.Node, len(e.nodes))
	copy(out, e.nodes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex > out[j].ZIndex
	})
	return out
}

// resizable reports whether the node accepts the corner resize handle:
// free nodes and expanded columns. Column children and collapsed
// columns do not resize.
func (e *Engine) resizable(n *board.Node) bool {
	if n.ParentID != "" {
		return false
	}
	if n.IsColumn() && n.Collapsed() {
		return false
	}
	return true
}

func resizeHandleRect(r geom.Rect, scale float64) geom.Rect {
	s := resizeHandleSize / scale
	return geom.Rect{X: r.X + r.Width - s, Y: r.Y + r.Height - s, Width: s, Height: s}
}

func connectorHit(r geom.Rect, x, y, scale float64) bool {
	// The connector sits at the midpoint of the right edge.
	cx := r.X + r.Width
	cy := r.Y + r.Height/2
	radius := connectorHitRadius / scale
	dx := x - cx
	dy := y - cy
	return dx*dx+dy*dy <= radius*radius
}
