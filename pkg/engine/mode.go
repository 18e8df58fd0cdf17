package engine

import "cineboard/pkg/geom"

// Mode is the interaction state machine's current state. Exactly one
// mode is active at a time; Idle is both the initial state and the only
// state every gesture returns to.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeEditing
	ModeResizing
	ModeSelecting
	ModeConnecting
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeEditing:
		return "editing"
	case ModeResizing:
		return "resizing"
	case ModeSelecting:
		return "selecting"
	case ModeConnecting:
		return "connecting"
	default:
		return "unknown"
	}
}

// DragContext carries everything a drag gesture needs through its
// lifecycle: the pre-drag rect snapshot, the dragged set, and the live
// offset. It is a plain value owned by the gesture, discarded when the
// gesture ends on any path.
type DragContext struct {
	StartX, StartY float64
	DX, DY         float64

	// NodeIDs is the dragged set: one column child, or the free nodes of
	// the current selection.
	NodeIDs []string

	// Origin holds the pre-drag rendered rect of every dragged node.
	Origin map[string]geom.Rect

	// ChildDrag marks a single column child being pulled out of
	// FrozenColumn, whose full pre-drag layout is captured in Frozen so
	// siblings do not reflow mid-gesture.
	ChildDrag    bool
	FrozenColumn string
	Frozen       map[string]geom.Rect
}

// pendingDrag latches a pointer-down on a node body until cumulative
// movement crosses the drag threshold. Travel sums per-move distance,
// so a wiggle that returns to the press point still promotes.
// Sub-threshold releases are plain clicks: selection only, no drag, no
// history entry.
type pendingDrag struct {
	lastX, lastY float64
	traveled     float64
	drag         DragContext
}

type resizeContext struct {
	nodeID         string
	startX, startY float64
	startW, startH float64
	changed        bool
}

type connectContext struct {
	fromID     string
	curX, curY float64
}

type marqueeContext struct {
	startX, startY float64
	curX, curY     float64
	additive       bool // shift held: extend the existing selection
}

// TargetKind classifies what a pointer-down landed on.
type TargetKind int

const (
	TargetBackground TargetKind = iota
	TargetNodeBody
	TargetNodeResize
	TargetNodeConnector
	TargetEdge
)

// Target is the result of a hit test.
type Target struct {
	Kind TargetKind
	ID   string // node or edge id, empty for background
}
