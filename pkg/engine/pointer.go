package engine

import (
	"math"

	"go.uber.org/zap"

	"cineboard/pkg/geom"
	"cineboard/pkg/layout"
)

// DragThreshold is the cumulative pointer movement, in screen pixels, a
// pressed pointer must travel before a pending drag promotes to a real
// drag. Sub-threshold presses are plain clicks.
const DragThreshold = 3.0

// Minimum sizes enforced while resizing.
const (
	minNodeWidth   = 100.0
	minNodeHeight  = 60.0
	minColumnWidth = 160.0
)

// PointerDown feeds a pointer press in world coordinates. shift extends
// the current selection instead of replacing it. Ignored unless idle:
// an active gesture or edit session blocks new gestures.
func (e *Engine) PointerDown(x, y float64, shift bool) {
	if e.mode != ModeIdle {
		return
	}

	t := e.HitTest(x, y)
	switch t.Kind {
	case TargetNodeBody:
		if e.selectNode(t.ID, shift) {
			e.latchDrag(t.ID, x, y)
		}

	case TargetNodeResize:
		n := e.node(t.ID)
		if n == nil || !e.resizable(n) {
			return
		}
		e.mode = ModeResizing
		e.resize = &resizeContext{
			nodeID: t.ID,
			startX: x, startY: y,
			startW: n.Width, startH: n.Height,
		}

	case TargetNodeConnector:
		e.mode = ModeConnecting
		e.connect = &connectContext{fromID: t.ID, curX: x, curY: y}

	case TargetEdge:
		e.clearSelection()
		e.selectedEdge = t.ID

	case TargetBackground:
		if !shift {
			e.clearSelection()
		}
		e.mode = ModeSelecting
		e.marquee = &marqueeContext{startX: x, startY: y, curX: x, curY: y, additive: shift}
	}
}

// PointerMove feeds pointer movement in world coordinates.
func (e *Engine) PointerMove(x, y float64) {
	switch e.mode {
	case ModeIdle:
		if e.pending == nil {
			return
		}
		p := e.pending
		p.traveled += math.Hypot(x-p.lastX, y-p.lastY)
		p.lastX, p.lastY = x, y
		if p.traveled >= e.threshold() {
			e.drag = &p.drag
			e.pending = nil
			e.mode = ModeDragging
			e.applyDrag(x, y)
		}

	case ModeDragging:
		e.applyDrag(x, y)

	case ModeResizing:
		e.applyResize(x, y)

	case ModeConnecting:
		e.connect.curX = x
		e.connect.curY = y

	case ModeSelecting:
		e.marquee.curX = x
		e.marquee.curY = y
	}
}

// PointerUp feeds a pointer release in world coordinates, ending the
// active gesture. Gestures that mutated the model commit exactly one
// history entry; cancelled or sub-threshold gestures roll back fully.
func (e *Engine) PointerUp(x, y float64) {
	switch e.mode {
	case ModeIdle:
		// A press that never crossed the threshold: plain click, the
		// selection change at pointer-down stands, no history entry.
		e.pending = nil

	case ModeDragging:
		e.applyDrag(x, y)
		d := e.drag
		e.mode = ModeIdle
		e.resolveDrop(d)
		e.drag = nil
		e.commit("drag")

	case ModeResizing:
		changed := e.resize.changed
		e.resize = nil
		e.mode = ModeIdle
		if changed {
			e.commit("resize")
		}

	case ModeConnecting:
		c := e.connect
		e.connect = nil
		e.mode = ModeIdle
		if target, ok := e.connectTarget(c, x, y); ok {
			e.addEdge(c.fromID, target)
		}

	case ModeSelecting:
		box := rectFromCorners(e.marquee.startX, e.marquee.startY, x, y)
		additive := e.marquee.additive
		e.marquee = nil
		e.mode = ModeIdle
		e.applyMarquee(box, additive)
	}
}

// latchDrag records a pending drag for the pressed node without leaving
// idle. Promotion happens in PointerMove once the threshold is crossed.
func (e *Engine) latchDrag(id string, x, y float64) {
	n := e.node(id)
	if n == nil {
		return
	}
	rects := layout.RenderRects(e.nodes, nil)

	d := DragContext{StartX: x, StartY: y, Origin: make(map[string]geom.Rect)}
	if n.ParentID != "" {
		// Detaching a column child: freeze the owning column's layout so
		// siblings hold still while the child is pulled out.
		d.ChildDrag = true
		d.FrozenColumn = n.ParentID
		d.Frozen = rects
		d.NodeIDs = []string{id}
	} else {
		// Free drag: the pressed node plus every other selected free
		// node. Selected column children do not move on this path.
		for _, sel := range e.SelectedNodes() {
			sn := e.node(sel)
			if sn != nil && sn.ParentID == "" {
				d.NodeIDs = append(d.NodeIDs, sel)
			}
		}
	}
	for _, did := range d.NodeIDs {
		if r, ok := rects[did]; ok {
			d.Origin[did] = r
		}
	}
	e.pending = &pendingDrag{lastX: x, lastY: y, drag: d}
}

func (e *Engine) applyDrag(x, y float64) {
	d := e.drag
	d.DX = x - d.StartX
	d.DY = y - d.StartY
	if d.ChildDrag {
		// Stored position of a column child is meaningless mid-gesture;
		// RenderRects overlays origin plus offset.
		return
	}
	for _, id := range d.NodeIDs {
		n := e.node(id)
		r, ok := d.Origin[id]
		if n == nil || !ok {
			continue
		}
		n.X = r.X + d.DX
		n.Y = r.Y + d.DY
	}
}

func (e *Engine) applyResize(x, y float64) {
	r := e.resize
	n := e.node(r.nodeID)
	if n == nil {
		return
	}
	w := r.startW + (x - r.startX)
	h := r.startH + (y - r.startY)

	if n.IsColumn() {
		// Column height is derived from content; only the width resizes.
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if w != n.Width {
			n.Width = w
			r.changed = true
		}
		return
	}

	if w < minNodeWidth {
		w = minNodeWidth
	}
	if h < minNodeHeight {
		h = minNodeHeight
	}
	if w != n.Width || h != n.Height {
		n.Width = w
		n.Height = h
		r.changed = true
	}
}

// connectTarget returns the node under the release point if it is a
// valid connection target: visible, distinct from the source, and not
// already connected to it.
func (e *Engine) connectTarget(c *connectContext, x, y float64) (string, bool) {
	t := e.HitTest(x, y)
	if t.Kind != TargetNodeBody && t.Kind != TargetNodeConnector && t.Kind != TargetNodeResize {
		return "", false
	}
	if t.ID == c.fromID {
		return "", false
	}
	for _, ed := range e.edges {
		if ed.Connects(c.fromID, t.ID) {
			return "", false
		}
	}
	return t.ID, true
}

func (e *Engine) applyMarquee(box geom.Rect, additive bool) {
	rects := layout.RenderRects(e.nodes, nil)
	if !additive {
		e.clearSelection()
	}
	for _, n := range e.nodes {
		if layout.Hidden(n, e.nodes) {
			continue
		}
		r, ok := rects[n.ID]
		if !ok {
			continue
		}
		if box.Intersects(r) {
			e.selected[n.ID] = true
		}
	}
	e.log.Debug("marquee select", zap.Int("selected", len(e.selected)))
}

// threshold returns the drag threshold in world units at the current
// zoom.
func (e *Engine) threshold() float64 {
	return DragThreshold / e.viewScale
}
