package geom

import "math"

// EdgeHitTolerance is how close, in screen pixels, a click must be to an
// edge segment to select it. Callers divide by the viewport scale to get
// the tolerance in world units.
const EdgeHitTolerance = 8.0

// EdgeAnchor returns the point on the rect's boundary hit by a ray from
// its center toward (towardX, towardY). The direction vector is scaled
// by whichever half-extent constrains it first, so arrows touch the box
// edge instead of its center.
func EdgeAnchor(r Rect, towardX, towardY float64) Point {
	c := r.Center()
	dx := towardX - c.X
	dy := towardY - c.Y
	if dx == 0 && dy == 0 {
		return c
	}

	hw := r.Width / 2
	hh := r.Height / 2

	// Scale factor along each axis; the smaller one hits the boundary first.
	sx := math.Inf(1)
	sy := math.Inf(1)
	if dx != 0 {
		sx = hw / math.Abs(dx)
	}
	if dy != 0 {
		sy = hh / math.Abs(dy)
	}
	s := math.Min(sx, sy)

	return Point{X: c.X + dx*s, Y: c.Y + dy*s}
}

// DistToSegment returns the distance from point (px, py) to the segment
// (x1, y1)-(x2, y2), using the clamped projection parameter.
func DistToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
