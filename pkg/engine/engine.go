// Package engine is the canvas interaction core: it owns the node and
// edge collections, turns pointer and keyboard events into model
// mutations through a finite interaction state machine, and maintains a
// bounded undo history. The engine is headless and performs no I/O;
// hosts feed it world-coordinate events and observe committed snapshots
// through callbacks.
package engine

import (
	"go.uber.org/zap"

	"cineboard/pkg/board"
	"cineboard/pkg/geom"
	"cineboard/pkg/history"
	"cineboard/pkg/layout"
)

// ChangeFunc receives a deep-cloned snapshot after every committed
// mutation. Debouncing persistence is the host's responsibility.
type ChangeFunc func(nodes []*board.Node, edges []*board.Edge)

// HistoryFunc receives the undo history after every push, undo, or redo.
type HistoryFunc func(h *history.History)

// Engine is the graph store and single source of truth for interaction
// state. It is not safe for concurrent use; all mutation happens
// synchronously inside event callbacks.
type Engine struct {
	nodes []*board.Node
	edges []*board.Edge

	selected     map[string]bool
	selectedEdge string

	mode    Mode
	pending *pendingDrag
	drag    *DragContext
	resize  *resizeContext
	connect *connectContext
	marquee *marqueeContext
	editing struct {
		nodeID string
		field  string
	}

	hist      *history.History
	onChange  ChangeFunc
	onHistory HistoryFunc

	viewScale float64
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNodes seeds the initial node collection. The engine takes
// ownership of the slice.
func WithNodes(nodes []*board.Node) Option {
	return func(e *Engine) { e.nodes = nodes }
}

// WithEdges seeds the initial edge collection.
func WithEdges(edges []*board.Edge) Option {
	return func(e *Engine) { e.edges = edges }
}

// WithHistory injects a previously persisted undo history.
func WithHistory(h *history.History) Option {
	return func(e *Engine) { e.hist = h }
}

// WithOnChange registers the committed-mutation callback.
func WithOnChange(fn ChangeFunc) Option {
	return func(e *Engine) { e.onChange = fn }
}

// WithOnHistory registers the history-change callback.
func WithOnHistory(fn HistoryFunc) Option {
	return func(e *Engine) { e.onHistory = fn }
}

// WithLogger sets the logger; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine. With no options it starts with an empty canvas
// and a fresh history.
func New(opts ...Option) *Engine {
	e := &Engine{
		selected:  make(map[string]bool),
		viewScale: 1,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hist == nil {
		e.hist = history.New(board.Capture(e.nodes, e.edges))
	}
	return e
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode { return e.mode }

// Nodes returns the live node collection. Callers must not mutate it;
// use Snapshot for a safe copy.
func (e *Engine) Nodes() []*board.Node { return e.nodes }

// Edges returns the live edge collection, filtered of dangling
// endpoints.
func (e *Engine) Edges() []*board.Edge {
	out := make([]*board.Edge, 0, len(e.edges))
	for _, ed := range e.edges {
		if e.node(ed.From) != nil && e.node(ed.To) != nil {
			out = append(out, ed)
		}
	}
	return out
}

// History returns the undo history so hosts can persist it.
func (e *Engine) History() *history.History { return e.hist }

// Snapshot returns a deep-cloned copy of the current model.
func (e *Engine) Snapshot() board.Snapshot {
	return board.Capture(e.nodes, e.edges)
}

// SetViewScale tells the engine the current zoom factor so pixel
// tolerances (edge hit-testing, drag threshold) stay constant on
// screen.
func (e *Engine) SetViewScale(scale float64) {
	if scale > 0 {
		e.viewScale = scale
	}
}

// SelectedNodes returns the ids of the selected nodes.
func (e *Engine) SelectedNodes() []string {
	out := make([]string, 0, len(e.selected))
	for _, n := range e.nodes {
		if e.selected[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// SelectedEdge returns the id of the selected edge, or "".
func (e *Engine) SelectedEdge() string { return e.selectedEdge }

// IsSelected reports whether the node is selected.
func (e *Engine) IsSelected(id string) bool { return e.selected[id] }

// RenderRects returns the rendered world rect of every visible node,
// reflecting any in-flight drag: a detaching column child is overlaid at
// its pre-drag rect plus the live offset.
func (e *Engine) RenderRects() map[string]geom.Rect {
	rects := layout.RenderRects(e.nodes, e.frozen())
	if e.mode == ModeDragging && e.drag != nil && e.drag.ChildDrag {
		for _, id := range e.drag.NodeIDs {
			if r, ok := e.drag.Origin[id]; ok {
				r.X += e.drag.DX
				r.Y += e.drag.DY
				rects[id] = r
			}
		}
	}
	return rects
}

// ConnectGhost returns the in-progress connection, anchored from the
// source node's boundary toward the live cursor. ok is false outside
// the connecting mode.
func (e *Engine) ConnectGhost() (from geom.Point, to geom.Point, ok bool) {
	if e.mode != ModeConnecting || e.connect == nil {
		return geom.Point{}, geom.Point{}, false
	}
	rects := e.RenderRects()
	r, found := rects[e.connect.fromID]
	if !found {
		return geom.Point{}, geom.Point{}, false
	}
	return geom.EdgeAnchor(r, e.connect.curX, e.connect.curY),
		geom.Point{X: e.connect.curX, Y: e.connect.curY}, true
}

// Marquee returns the live selection rectangle while in selecting mode.
func (e *Engine) Marquee() (geom.Rect, bool) {
	if e.mode != ModeSelecting || e.marquee == nil {
		return geom.Rect{}, false
	}
	return rectFromCorners(e.marquee.startX, e.marquee.startY, e.marquee.curX, e.marquee.curY), true
}

// Undo replaces the live model with the previous snapshot. No-op at the
// boundary or while a gesture is active.
func (e *Engine) Undo() {
	if e.mode != ModeIdle {
		return
	}
	s, ok := e.hist.Undo()
	if !ok {
		return
	}
	e.restore(s)
}

// Redo replaces the live model with the next snapshot. No-op at the
// boundary or while a gesture is active.
func (e *Engine) Redo() {
	if e.mode != ModeIdle {
		return
	}
	s, ok := e.hist.Redo()
	if !ok {
		return
	}
	e.restore(s)
}

func (e *Engine) restore(s board.Snapshot) {
	e.nodes = s.Nodes
	e.edges = s.Edges
	e.pruneSelection()
	e.notifyChange()
	e.notifyHistory()
}

// commit snapshots the fully applied mutation onto the history stack and
// notifies the host. Exactly one commit happens per committed gesture,
// at its end.
func (e *Engine) commit(reason string) {
	e.sweep()
	e.hist.Push(board.Capture(e.nodes, e.edges))
	e.log.Debug("commit", zap.String("reason", reason),
		zap.Int("nodes", len(e.nodes)), zap.Int("edges", len(e.edges)))
	e.notifyChange()
	e.notifyHistory()
}

// sweep drops edges whose endpoints no longer exist and scrubs child
// orders of stale ids. Out-of-band inconsistencies are corrected
// silently on the next mutation rather than surfaced as errors.
func (e *Engine) sweep() {
	kept := e.edges[:0]
	for _, ed := range e.edges {
		if e.node(ed.From) != nil && e.node(ed.To) != nil {
			kept = append(kept, ed)
		}
	}
	e.edges = kept

	for _, n := range e.nodes {
		if !n.IsColumn() || n.Column == nil {
			continue
		}
		order := n.Column.ChildOrder[:0]
		for _, id := range n.Column.ChildOrder {
			child := e.node(id)
			if child != nil && child.ParentID == n.ID {
				order = append(order, id)
			}
		}
		n.Column.ChildOrder = order
	}
}

func (e *Engine) notifyChange() {
	if e.onChange == nil {
		return
	}
	s := e.Snapshot()
	e.onChange(s.Nodes, s.Edges)
}

func (e *Engine) notifyHistory() {
	if e.onHistory != nil {
		e.onHistory(e.hist)
	}
}

func (e *Engine) node(id string) *board.Node {
	for _, n := range e.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (e *Engine) frozen() *layout.Frozen {
	if e.drag != nil && e.drag.ChildDrag && e.mode == ModeDragging {
		return &layout.Frozen{ColumnID: e.drag.FrozenColumn, Rects: e.drag.Frozen}
	}
	return nil
}

func (e *Engine) pruneSelection() {
	for id := range e.selected {
		if e.node(id) == nil {
			delete(e.selected, id)
		}
	}
	if e.selectedEdge != "" {
		found := false
		for _, ed := range e.edges {
			if ed.ID == e.selectedEdge {
				found = true
				break
			}
		}
		if !found {
			e.selectedEdge = ""
		}
	}
}

func rectFromCorners(x1, y1, x2, y2 float64) geom.Rect {
	x := x1
	if x2 < x {
		x = x2
	}
	y := y1
	if y2 < y {
		y = y2
	}
	w := x1 - x2
	if w < 0 {
		w = -w
	}
	h := y1 - y2
	if h < 0 {
		h = -h
	}
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}
