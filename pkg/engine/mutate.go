package engine

import (
	"go.uber.org/zap"

	"cineboard/pkg/board"
)

// CreateNoteAt creates a note node centered on the world point, selects
// it, and commits.
func (e *Engine) CreateNoteAt(x, y float64) {
	e.insertNode(board.NewNote(x, y))
}

// CreateImageAt creates an image node centered on the world point,
// selects it, and commits.
func (e *Engine) CreateImageAt(x, y float64, meta board.ImageData) {
	e.insertNode(board.NewImage(x, y, meta))
}

// CreateColumnAt creates a column node centered on the world point,
// selects it, and commits.
func (e *Engine) CreateColumnAt(x, y float64) {
	e.insertNode(board.NewColumn(x, y))
}

// CreatePromptAt creates a prompt node centered on the world point,
// selects it, and commits.
func (e *Engine) CreatePromptAt(x, y float64) {
	e.insertNode(board.NewPrompt(x, y))
}

// CreateVideoAt creates a video node centered on the world point,
// selects it, and commits.
func (e *Engine) CreateVideoAt(x, y float64, meta board.VideoData) {
	e.insertNode(board.NewVideo(x, y, meta))
}

func (e *Engine) insertNode(n *board.Node) {
	if e.mode != ModeIdle {
		return
	}
	n.ZIndex = len(e.nodes) + 1
	e.nodes = append(e.nodes, n)
	e.clearSelection()
	e.selected[n.ID] = true
	e.commit("create " + string(n.Type))
}

// UpdateNodeData applies a content mutation to one node and commits.
// This is the commit path for field blur in per-type editors. The
// mutation must not touch geometry or parentage.
func (e *Engine) UpdateNodeData(id string, mutate func(n *board.Node)) {
	if e.mode != ModeIdle {
		return
	}
	n := e.node(id)
	if n == nil || mutate == nil {
		return
	}
	mutate(n)
	e.commit("data change")
}

// ToggleCollapse flips a column's collapsed state and commits. Children
// of a collapsed column are hidden until it expands again.
func (e *Engine) ToggleCollapse(id string) {
	if e.mode != ModeIdle {
		return
	}
	n := e.node(id)
	if n == nil || !n.IsColumn() || n.Column == nil {
		return
	}
	n.Column.Collapsed = !n.Column.Collapsed
	e.commit("collapse toggle")
}

// addEdge creates an edge between two nodes. Duplicate attempts, in
// either direction, are silently ignored.
func (e *Engine) addEdge(from, to string) {
	for _, ed := range e.edges {
		if ed.Connects(from, to) {
			return
		}
	}
	if e.node(from) == nil || e.node(to) == nil {
		return
	}
	e.edges = append(e.edges, board.NewEdge(from, to))
	e.commit("connect")
}

// SetEdgeLabel sets an edge's label and commits.
func (e *Engine) SetEdgeLabel(id, label string) {
	if e.mode != ModeIdle {
		return
	}
	for _, ed := range e.edges {
		if ed.ID == id {
			ed.Label = label
			e.commit("edge label")
			return
		}
	}
}

// DeleteSelection removes the selected edge, or the selected nodes with
// full cascade: a deleted column takes its children, every edge
// touching a removed node goes with it, and remaining columns are
// scrubbed of stale child references. One commit covers the whole
// cascade.
func (e *Engine) DeleteSelection() {
	if e.mode != ModeIdle {
		return
	}

	if e.selectedEdge != "" {
		id := e.selectedEdge
		e.selectedEdge = ""
		kept := e.edges[:0]
		for _, ed := range e.edges {
			if ed.ID != id {
				kept = append(kept, ed)
			}
		}
		e.edges = kept
		e.commit("delete edge")
		return
	}

	if len(e.selected) == 0 {
		return
	}

	doomed := make(map[string]bool, len(e.selected))
	for id := range e.selected {
		doomed[id] = true
	}
	for _, n := range e.nodes {
		if doomed[n.ID] && n.IsColumn() {
			for _, c := range e.nodes {
				if c.ParentID == n.ID {
					doomed[c.ID] = true
				}
			}
		}
	}

	keptNodes := e.nodes[:0]
	for _, n := range e.nodes {
		if !doomed[n.ID] {
			keptNodes = append(keptNodes, n)
		}
	}
	e.nodes = keptNodes

	keptEdges := e.edges[:0]
	for _, ed := range e.edges {
		if !doomed[ed.From] && !doomed[ed.To] {
			keptEdges = append(keptEdges, ed)
		}
	}
	e.edges = keptEdges

	// Detach any survivors that pointed at a deleted column, then scrub
	// child orders; sweep in commit clears the rest.
	for _, n := range e.nodes {
		if n.ParentID != "" && e.node(n.ParentID) == nil {
			n.ParentID = ""
		}
	}

	count := len(doomed)
	e.clearSelection()
	e.log.Debug("cascade delete", zap.Int("removed", count))
	e.commit("delete nodes")
}

// selectNode applies explicit selection on pointer-down and reports
// whether the node is selected afterwards. A fresh selection replaces
// the old one unless shift extends it; the node is raised to the top of
// the stacking order. Selection itself is not a committed mutation.
func (e *Engine) selectNode(id string, shift bool) bool {
	e.selectedEdge = ""
	if shift {
		if e.selected[id] {
			delete(e.selected, id)
			return false
		}
		e.selected[id] = true
	} else if !e.selected[id] {
		e.clearSelection()
		e.selected[id] = true
	}
	e.bringToFront(id)
	return true
}

// bringToFront raises the node above every other node. A z-index
// changes only here, as a side effect of explicit selection.
func (e *Engine) bringToFront(id string) {
	n := e.node(id)
	if n == nil {
		return
	}
	maxZ := 0
	for _, o := range e.nodes {
		if o.ZIndex > maxZ {
			maxZ = o.ZIndex
		}
	}
	if n.ZIndex != maxZ || maxZ == 0 {
		n.ZIndex = maxZ + 1
	}
}

func (e *Engine) clearSelection() {
	for id := range e.selected {
		delete(e.selected, id)
	}
	e.selectedEdge = ""
}
