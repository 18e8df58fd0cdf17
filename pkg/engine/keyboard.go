package engine

// Key identifies the keyboard inputs the state machine reacts to.
type Key int

const (
	KeyEscape Key = iota
	KeyDelete
	KeyBackspace
)

// KeyDown feeds a key press. Escape cancels whatever is in flight,
// clears the selection, and returns to idle from any state; Delete and
// Backspace remove the current selection, but only while idle and not
// editing a text field.
func (e *Engine) KeyDown(k Key) {
	switch k {
	case KeyEscape:
		e.cancelGesture()
		e.clearSelection()
		e.mode = ModeIdle

	case KeyDelete, KeyBackspace:
		if e.mode != ModeIdle {
			return
		}
		e.DeleteSelection()
	}
}

// BeginEdit enters editing mode for a node's content field (for
// example, on double-click of a text input). Rejected unless idle:
// a node mid-gesture must not also start an edit session. While
// editing, selection and gesture initiation are blocked.
func (e *Engine) BeginEdit(nodeID, field string) bool {
	if e.mode != ModeIdle || e.node(nodeID) == nil {
		return false
	}
	e.mode = ModeEditing
	e.editing.nodeID = nodeID
	e.editing.field = field
	return true
}

// EndEdit leaves editing mode (field blur or Escape). Content commits
// arrive separately through UpdateNodeData.
func (e *Engine) EndEdit() {
	if e.mode != ModeEditing {
		return
	}
	e.mode = ModeIdle
	e.editing.nodeID = ""
	e.editing.field = ""
}

// EditingField returns the node and field of the active edit session.
func (e *Engine) EditingField() (nodeID, field string, ok bool) {
	if e.mode != ModeEditing {
		return "", "", false
	}
	return e.editing.nodeID, e.editing.field, true
}

// cancelGesture rolls back whatever gesture is in flight without a
// history entry: dragged nodes return to their pre-drag positions, a
// resize restores the starting size, ghost connections and marquees
// vanish.
func (e *Engine) cancelGesture() {
	if e.drag != nil {
		if !e.drag.ChildDrag {
			for _, id := range e.drag.NodeIDs {
				n := e.node(id)
				r, ok := e.drag.Origin[id]
				if n != nil && ok {
					n.X = r.X
					n.Y = r.Y
				}
			}
		}
		e.drag = nil
	}
	if e.resize != nil {
		if n := e.node(e.resize.nodeID); n != nil {
			n.Width = e.resize.startW
			n.Height = e.resize.startH
		}
		e.resize = nil
	}
	e.pending = nil
	e.connect = nil
	e.marquee = nil
	e.editing.nodeID = ""
	e.editing.field = ""
}
