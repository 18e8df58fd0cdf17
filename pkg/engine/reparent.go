package engine

import (
	"go.uber.org/zap"

	"cineboard/pkg/board"
	"cineboard/pkg/geom"
	"cineboard/pkg/layout"
)

// resolveDrop decides, once per completed drag, where each dragged node
// lands: inside a column body or free at its dropped world position.
// Both sides of any parentage change update together.
func (e *Engine) resolveDrop(d *DragContext) {
	if d.ChildDrag {
		e.resolveChildDrop(d)
		return
	}
	e.resolveFreeDrop(d)
}

// resolveChildDrop re-homes a column child pulled out of its frozen
// column. The drop point is the node's center: its pre-drag frozen rect
// plus the live offset. Re-entering the original column is allowed and
// recomputes a fresh insertion index.
func (e *Engine) resolveChildDrop(d *DragContext) {
	id := d.NodeIDs[0]
	n := e.node(id)
	origin, ok := d.Origin[id]
	if n == nil || !ok {
		return
	}

	center := geom.Point{
		X: origin.X + d.DX + origin.Width/2,
		Y: origin.Y + d.DY + origin.Height/2,
	}
	rects := layout.RenderRects(e.nodes, &layout.Frozen{ColumnID: d.FrozenColumn, Rects: d.Frozen})

	target := e.columnAt(center, rects, id)
	oldParent := n.ParentID

	if target == nil {
		// No column under the drop point: the node becomes free at its
		// dropped world position.
		n.ParentID = ""
		n.X = origin.X + d.DX
		n.Y = origin.Y + d.DY
		e.removeFromOrder(oldParent, id)
		e.log.Debug("detached to free", zap.String("node", id))
		return
	}

	idx := layout.InsertionIndex(e.nodes, rects, target.ID, center.Y, id)
	e.removeFromOrder(oldParent, id)
	n.ParentID = target.ID
	e.insertIntoOrder(target.ID, id, idx)
	e.log.Debug("reparented", zap.String("node", id), zap.String("column", target.ID), zap.Int("index", idx))
}

// resolveFreeDrop tests each dragged free node independently against
// the column bodies; columns themselves are never captured.
func (e *Engine) resolveFreeDrop(d *DragContext) {
	rects := layout.RenderRects(e.nodes, nil)
	for _, id := range d.NodeIDs {
		n := e.node(id)
		if n == nil || n.IsColumn() || n.ParentID != "" {
			continue
		}
		r, ok := rects[id]
		if !ok {
			continue
		}
		center := r.Center()
		target := e.columnAt(center, rects, id)
		if target == nil {
			continue
		}
		idx := layout.InsertionIndex(e.nodes, rects, target.ID, center.Y, id)
		n.ParentID = target.ID
		e.insertIntoOrder(target.ID, id, idx)
		e.log.Debug("captured by column", zap.String("node", id), zap.String("column", target.ID))
	}
}

// columnAt returns the first non-collapsed column, in model order,
// whose body rect contains the point. The dropped node itself is
// excluded so a dragged column can never capture anything into itself.
func (e *Engine) columnAt(p geom.Point, rects map[string]geom.Rect, excludeID string) *board.Node {
	for _, n := range e.nodes {
		if !n.IsColumn() || n.Collapsed() || n.ID == excludeID {
			continue
		}
		r, ok := rects[n.ID]
		if !ok {
			continue
		}
		if layout.BodyRect(r).Contains(p.X, p.Y) {
			return n
		}
	}
	return nil
}

func (e *Engine) removeFromOrder(columnID, id string) {
	col := e.node(columnID)
	if col == nil || col.Column == nil {
		return
	}
	order := col.Column.ChildOrder[:0]
	for _, cid := range col.Column.ChildOrder {
		if cid != id {
			order = append(order, cid)
		}
	}
	col.Column.ChildOrder = order
}

func (e *Engine) insertIntoOrder(columnID, id string, idx int) {
	col := e.node(columnID)
	if col == nil || col.Column == nil {
		return
	}
	order := col.Column.ChildOrder
	if idx < 0 {
		idx = 0
	}
	if idx > len(order) {
		idx = len(order)
	}
	order = append(order, "")
	copy(order[idx+1:], order[idx:])
	order[idx] = id
	col.Column.ChildOrder = order
}
