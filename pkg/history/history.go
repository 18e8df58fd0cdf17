// Package history keeps a bounded undo/redo stack of canvas snapshots.
// History is per editing session: hosts key one History per document and
// may persist and restore it wholesale.
package history

import "cineboard/pkg/board"

// MaxDepth caps the stack; the oldest snapshot is evicted beyond it.
const MaxDepth = 50

// History is a snapshot stack with a cursor pointing at the current
// state. The zero value is not usable; call New.
type History struct {
	Stack  []board.Snapshot `json:"stack"`
	Cursor int              `json:"cursor"`
}

// New returns a history seeded with the given initial snapshot.
func New(initial board.Snapshot) *History {
	return &History{Stack: []board.Snapshot{initial.Clone()}, Cursor: 0}
}

// Push records a new snapshot as the current state. Any redo states
// beyond the cursor are discarded first. When the stack overflows
// MaxDepth the oldest entry is evicted and the cursor is left where it
// is; in the non-overflow branch the cursor advances.
func (h *History) Push(s board.Snapshot) {
	h.Stack = append(h.Stack[:h.Cursor+1], s.Clone())
	if len(h.Stack) > MaxDepth {
		h.Stack = h.Stack[1:]
	} else {
		h.Cursor++
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool {
	return h.Cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.Cursor < len(h.Stack)-1
}

// Undo steps the cursor back and returns a deep copy of the snapshot
// there. The second result is false at the boundary, and the history is
// unchanged.
func (h *History) Undo() (board.Snapshot, bool) {
	if !h.CanUndo() {
		return board.Snapshot{}, false
	}
	h.Cursor--
	return h.Stack[h.Cursor].Clone(), true
}

// Redo steps the cursor forward and returns a deep copy of the snapshot
// there. The second result is false at the boundary, and the history is
// unchanged.
func (h *History) Redo() (board.Snapshot, bool) {
	if !h.CanRedo() {
		return board.Snapshot{}, false
	}
	h.Cursor++
	return h.Stack[h.Cursor].Clone(), true
}
