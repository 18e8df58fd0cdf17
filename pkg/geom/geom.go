package geom

// Point is a 2D coordinate, in either world or screen space depending
// on context.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in world coordinates. For canvas
// nodes this is the rendered position, which for column children can
// differ from the node's stored position.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Viewport maps between screen and world coordinates. Scale is uniform;
// Offset is the screen position of the world origin.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewViewport returns an identity viewport.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// ScreenToWorld converts a screen coordinate to world space.
func (v Viewport) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.OffsetX) / v.Scale, (sy - v.OffsetY) / v.Scale
}

// WorldToScreen converts a world coordinate to screen space. Exact
// inverse of ScreenToWorld.
func (v Viewport) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*v.Scale + v.OffsetX, wy*v.Scale + v.OffsetY
}

// ZoomAtPoint returns a viewport with the new scale whose offset keeps
// the world point currently under screen (sx, sy) fixed in place.
func (v Viewport) ZoomAtPoint(sx, sy, newScale float64) Viewport {
	wx, wy := v.ScreenToWorld(sx, sy)
	return Viewport{
		Scale:   newScale,
		OffsetX: sx - wx*newScale,
		OffsetY: sy - wy*newScale,
	}
}
