package layout

import (
	"cineboard/pkg/board"
	"cineboard/pkg/geom"
)

// Column layout metrics, in world units.
const (
	HeaderHeight    = 36.0 // title strip at the top of every column
	Padding         = 8.0  // inner padding on all sides of the column body
	Gap             = 8.0  // vertical gap between stacked children
	CollapsedHeight = 36.0 // full height of a collapsed column
	MinBodyHeight   = 80.0 // an empty expanded column still reserves a drop target
)

// Frozen pins one column's layout to rects captured before a child drag
// started, so siblings do not reflow while the child is pulled out.
type Frozen struct {
	ColumnID string
	Rects    map[string]geom.Rect
}

// RenderRects derives the rendered world rect of every visible node.
// Free nodes and columns take their stored geometry; column children are
// stacked top to bottom inside their column, and the column's height is
// derived from content. The function never mutates its inputs and is
// idempotent: identical inputs always produce identical output.
//
// Children of collapsed columns are hidden and get no rect.
func RenderRects(nodes []*board.Node, frozen *Frozen) map[string]geom.Rect {
	rects := make(map[string]geom.Rect, len(nodes))

	for _, n := range nodes {
		if n.ParentID == "" || n.IsColumn() {
			rects[n.ID] = geom.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
		}
	}

	for _, col := range nodes {
		if !col.IsColumn() {
			continue
		}

		if col.Collapsed() {
			r := rects[col.ID]
			r.Height = CollapsedHeight
			rects[col.ID] = r
			continue
		}

		if frozen != nil && frozen.ColumnID == col.ID {
			// Mid-drag detach: reuse the captured layout verbatim so the
			// remaining children hold still, tracking only a width change.
			if r, ok := frozen.Rects[col.ID]; ok {
				r.Width = col.Width
				rects[col.ID] = r
			}
			for _, child := range nodes {
				if child.ParentID != col.ID {
					continue
				}
				if r, ok := frozen.Rects[child.ID]; ok {
					rects[child.ID] = r
				}
			}
			continue
		}

		innerW := col.Width - 2*Padding
		y := col.Y + HeaderHeight + Padding
		laid := 0

		for _, id := range ResolveOrder(col, nodes) {
			child := findNode(nodes, id)
			if child == nil {
				continue
			}
			h := child.Height
			if child.Type == board.NodeImage && child.Image != nil &&
				child.Image.NaturalWidth > 0 && child.Image.NaturalHeight > 0 {
				// Images refit to the column's inner width at their source
				// aspect ratio.
				h = innerW * child.Image.NaturalHeight / child.Image.NaturalWidth
			}
			rects[id] = geom.Rect{X: col.X + Padding, Y: y, Width: innerW, Height: h}
			y += h + Gap
			laid++
		}

		body := MinBodyHeight
		if laid > 0 {
			content := y - Gap + Padding - (col.Y + HeaderHeight)
			if content > body {
				body = content
			}
		}
		r := rects[col.ID]
		r.Height = HeaderHeight + body
		rects[col.ID] = r
	}

	return rects
}

// ResolveOrder returns the column's effective child order: the stored
// ChildOrder first (ids that still exist and still belong), then any
// children the stored order does not mention, in model order.
func ResolveOrder(col *board.Node, nodes []*board.Node) []string {
	var order []string
	seen := make(map[string]bool)

	if col.Column != nil {
		for _, id := range col.Column.ChildOrder {
			child := findNode(nodes, id)
			if child == nil || child.ParentID != col.ID || seen[id] {
				continue
			}
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, n := range nodes {
		if n.ParentID == col.ID && !seen[n.ID] {
			order = append(order, n.ID)
			seen[n.ID] = true
		}
	}
	return order
}

// InsertionIndex returns the position in the column's child order at
// which a node dropped at dropY should be inserted: the first index
// whose rect's vertical midpoint lies below dropY, or the end of the
// list. excludeID lets a child moving within its own column ignore its
// old slot.
func InsertionIndex(nodes []*board.Node, rects map[string]geom.Rect, columnID string, dropY float64, excludeID string) int {
	col := findNode(nodes, columnID)
	if col == nil {
		return 0
	}

	idx := 0
	for _, id := range ResolveOrder(col, nodes) {
		if id == excludeID {
			continue
		}
		r, ok := rects[id]
		if !ok {
			continue
		}
		if dropY < r.Y+r.Height/2 {
			return idx
		}
		idx++
	}
	return idx
}

// BodyRect returns the droppable region of a column rect: everything
// below the header strip.
func BodyRect(r geom.Rect) geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y + HeaderHeight, Width: r.Width, Height: r.Height - HeaderHeight}
}

// Hidden reports whether the node is excluded from rendering,
// hit-testing, and edge anchoring: a non-column child of a collapsed
// column.
func Hidden(n *board.Node, nodes []*board.Node) bool {
	if n.ParentID == "" || n.IsColumn() {
		return false
	}
	parent := findNode(nodes, n.ParentID)
	return parent != nil && parent.Collapsed()
}

func findNode(nodes []*board.Node, id string) *board.Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
