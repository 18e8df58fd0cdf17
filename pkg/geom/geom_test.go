package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScreenToWorld_RoundTrip(t *testing.T) {
	v := Viewport{Scale: 1.5, OffsetX: 120, OffsetY: -40}

	wx, wy := v.ScreenToWorld(300, 200)
	sx, sy := v.WorldToScreen(wx, wy)

	if !almostEqual(sx, 300) || !almostEqual(sy, 200) {
		t.Errorf("round trip drifted: got (%f, %f), want (300, 200)", sx, sy)
	}
}

func TestScreenToWorld_Identity(t *testing.T) {
	v := NewViewport()
	wx, wy := v.ScreenToWorld(42, -7)
	if wx != 42 || wy != -7 {
		t.Errorf("identity viewport changed coordinates: (%f, %f)", wx, wy)
	}
}

func TestZoomAtPoint_KeepsPointFixed(t *testing.T) {
	v := Viewport{Scale: 1, OffsetX: 50, OffsetY: 30}
	wx, wy := v.ScreenToWorld(400, 300)

	zoomed := v.ZoomAtPoint(400, 300, 2.5)

	sx, sy := zoomed.WorldToScreen(wx, wy)
	if !almostEqual(sx, 400) || !almostEqual(sy, 300) {
		t.Errorf("world point moved under cursor: got (%f, %f), want (400, 300)", sx, sy)
	}
	if zoomed.Scale != 2.5 {
		t.Errorf("scale = %f, want 2.5", zoomed.Scale)
	}
}

func TestEdgeAnchor_Horizontal(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 60}

	// Target directly to the right: anchor lands on the right edge at mid height.
	p := EdgeAnchor(r, 500, 30)
	if !almostEqual(p.X, 100) || !almostEqual(p.Y, 30) {
		t.Errorf("anchor = (%f, %f), want (100, 30)", p.X, p.Y)
	}
}

func TestEdgeAnchor_Vertical(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 60}

	p := EdgeAnchor(r, 50, -500)
	if !almostEqual(p.X, 50) || !almostEqual(p.Y, 0) {
		t.Errorf("anchor = (%f, %f), want (50, 0)", p.X, p.Y)
	}
}

func TestEdgeAnchor_Diagonal(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	// 45 degrees on a square box: hits the corner.
	p := EdgeAnchor(r, 200, 200)
	if !almostEqual(p.X, 100) || !almostEqual(p.Y, 100) {
		t.Errorf("anchor = (%f, %f), want (100, 100)", p.X, p.Y)
	}
}

func TestEdgeAnchor_DegenerateTarget(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	// Target at the center: no direction, anchor stays at the center.
	p := EdgeAnchor(r, 20, 20)
	if !almostEqual(p.X, 20) || !almostEqual(p.Y, 20) {
		t.Errorf("anchor = (%f, %f), want (20, 20)", p.X, p.Y)
	}
}

func TestDistToSegment(t *testing.T) {
	// Point above the middle of a horizontal segment.
	if d := DistToSegment(5, 3, 0, 0, 10, 0); !almostEqual(d, 3) {
		t.Errorf("dist = %f, want 3", d)
	}
	// Point beyond the segment end: distance to the endpoint.
	if d := DistToSegment(14, 3, 0, 0, 10, 0); !almostEqual(d, 5) {
		t.Errorf("dist = %f, want 5", d)
	}
	// Zero-length segment degenerates to point distance.
	if d := DistToSegment(3, 4, 0, 0, 0, 0); !almostEqual(d, 5) {
		t.Errorf("dist = %f, want 5", d)
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}

	if !a.Intersects(b) {
		t.Error("overlapping rects reported as disjoint")
	}
	if a.Intersects(c) {
		t.Error("disjoint rects reported as overlapping")
	}
}
