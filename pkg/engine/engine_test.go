package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineboard/pkg/board"
	"cineboard/pkg/history"
	"cineboard/pkg/layout"
)

// notifications counts host callbacks.
type notifications struct {
	changes   int
	histories int
}

func newTestEngine(nodes []*board.Node, edges []*board.Edge) (*Engine, *notifications) {
	n := &notifications{}
	e := New(
		WithNodes(nodes),
		WithEdges(edges),
		WithOnChange(func([]*board.Node, []*board.Edge) { n.changes++ }),
		WithOnHistory(func(*history.History) { n.histories++ }),
	)
	return e, n
}

func column(id string, x, y float64, z int, order ...string) *board.Node {
	return &board.Node{
		ID: id, Type: board.NodeColumn,
		X: x, Y: y, Width: board.ColumnWidth, Height: board.ColumnHeight, ZIndex: z,
		Column: &board.ColumnData{ChildOrder: order},
	}
}

func note(id string, x, y float64, z int) *board.Node {
	return &board.Node{
		ID: id, Type: board.NodeNote,
		X: x, Y: y, Width: board.NoteWidth, Height: board.NoteHeight, ZIndex: z,
		Note: &board.NoteData{},
	}
}

func childNote(id, parent string, h float64, z int) *board.Node {
	return &board.Node{
		ID: id, Type: board.NodeNote,
		Width: board.NoteWidth, Height: h, ZIndex: z,
		ParentID: parent,
		Note:     &board.NoteData{},
	}
}

func depth(e *Engine) int { return len(e.History().Stack) }

func TestFactoriesAssignZIndexAndSelect(t *testing.T) {
	e, n := newTestEngine(nil, nil)

	e.CreateColumnAt(100, 100)
	e.CreateNoteAt(500, 500)

	nodes := e.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, 1, nodes[0].ZIndex)
	assert.Equal(t, 2, nodes[1].ZIndex)
	assert.Equal(t, []string{nodes[1].ID}, e.SelectedNodes(), "factory selects the new node")
	assert.Equal(t, 2, n.changes)
	assert.Equal(t, 2, n.histories)
	assert.Equal(t, 3, depth(e), "initial snapshot plus two creates")
}

func TestCreatePromptAndVideo(t *testing.T) {
	e, _ := newTestEngine(nil, nil)

	e.CreatePromptAt(0, 0)
	e.CreateVideoAt(10, 10, board.VideoData{Src: "v.mp4", Filename: "v.mp4", MimeType: "video/mp4"})
	e.CreateImageAt(20, 20, board.ImageData{Src: "i.png", NaturalWidth: 100, NaturalHeight: 50})

	nodes := e.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, board.NodePrompt, nodes[0].Type)
	assert.Equal(t, board.NodeVideo, nodes[1].Type)
	assert.Equal(t, board.NodeImage, nodes[2].Type)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e, _ := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)

	s := e.Snapshot()
	s.Nodes[0].X = 999
	s.Nodes[0].Note.Title = "mutated"

	assert.Equal(t, 0.0, e.Nodes()[0].X)
	assert.Equal(t, "", e.Nodes()[0].Note.Title)
}

func TestSelectionBringsToFront(t *testing.T) {
	a := note("a", 0, 0, 1)
	b := note("b", 300, 0, 2)
	e, _ := newTestEngine([]*board.Node{a, b}, nil)

	e.PointerDown(100, 60, false) // on a's body
	e.PointerUp(100, 60)

	assert.True(t, e.IsSelected("a"))
	assert.Greater(t, a.ZIndex, b.ZIndex, "explicit selection raises the node")
}

func TestShiftClickTogglesSelection(t *testing.T) {
	a := note("a", 0, 0, 1)
	b := note("b", 300, 0, 2)
	e, _ := newTestEngine([]*board.Node{a, b}, nil)

	e.PointerDown(100, 60, false)
	e.PointerUp(100, 60)
	e.PointerDown(400, 60, true)
	e.PointerUp(400, 60)

	assert.ElementsMatch(t, []string{"a", "b"}, e.SelectedNodes())

	e.PointerDown(400, 60, true) // shift-click again deselects
	e.PointerUp(400, 60)
	assert.Equal(t, []string{"a"}, e.SelectedNodes())
}

func TestPlainClickPushesNoHistory(t *testing.T) {
	e, n := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)
	before := depth(e)

	e.PointerDown(100, 60, false)
	e.PointerUp(100, 60)

	assert.Equal(t, before, depth(e))
	assert.Equal(t, 0, n.changes)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e, n := newTestEngine(nil, nil)

	e.CreateNoteAt(100, 100)
	require.Len(t, e.Nodes(), 1)

	e.Undo()
	assert.Empty(t, e.Nodes())
	assert.Empty(t, e.SelectedNodes(), "selection of a removed node is pruned")

	e.Redo()
	assert.Len(t, e.Nodes(), 1)
	assert.Equal(t, 3, n.changes, "create, undo, redo each notify once")
}

func TestRedoTruncatedByNewMutation(t *testing.T) {
	e, _ := newTestEngine(nil, nil)

	e.CreateNoteAt(100, 100)
	e.CreateNoteAt(400, 400)
	e.Undo()
	require.Len(t, e.Nodes(), 1)

	e.CreateColumnAt(800, 800)
	before := len(e.Nodes())

	e.Redo()
	assert.Len(t, e.Nodes(), before, "redo after a fresh mutation is a no-op")
}

func TestUpdateNodeDataCommits(t *testing.T) {
	e, n := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)

	e.UpdateNodeData("a", func(nd *board.Node) {
		nd.Note.Title = "scene 4"
		nd.Note.Body = "exterior, night"
	})

	assert.Equal(t, "scene 4", e.Nodes()[0].Note.Title)
	assert.Equal(t, 1, n.changes)

	e.Undo()
	assert.Equal(t, "", e.Nodes()[0].Note.Title)
}

func TestContentMutationsRejectedMidGesture(t *testing.T) {
	c := column("c", 600, 0, 1)
	a := note("a", 0, 0, 2)
	ed := board.NewEdge("a", "c")
	e, _ := newTestEngine([]*board.Node{c, a}, []*board.Edge{ed})
	before := depth(e)

	e.PointerDown(100, 60, false)
	e.PointerMove(150, 110)
	require.Equal(t, ModeDragging, e.Mode())

	e.UpdateNodeData("a", func(nd *board.Node) { nd.Note.Title = "mid" })
	e.ToggleCollapse("c")
	e.SetEdgeLabel(ed.ID, "mid")

	assert.Equal(t, before, depth(e), "no history entries land inside a gesture")
	assert.Equal(t, "", a.Note.Title)
	assert.False(t, c.Column.Collapsed)
	assert.Equal(t, "", ed.Label)

	e.PointerUp(150, 110)
	assert.Equal(t, before+1, depth(e), "the gesture itself still commits once")
}

func TestToggleCollapse(t *testing.T) {
	col := column("c", 100, 100, 1, "a")
	a := childNote("a", "c", 120, 2)
	e, _ := newTestEngine([]*board.Node{col, a}, nil)

	e.ToggleCollapse("c")

	rects := e.RenderRects()
	assert.Equal(t, layout.CollapsedHeight, rects["c"].Height)
	_, ok := rects["a"]
	assert.False(t, ok, "collapsed column hides its children")

	e.ToggleCollapse("c")
	rects = e.RenderRects()
	_, ok = rects["a"]
	assert.True(t, ok)
}

func TestEditingBlocksGestures(t *testing.T) {
	e, _ := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)

	require.True(t, e.BeginEdit("a", "title"))
	assert.Equal(t, ModeEditing, e.Mode())

	// A pointer press while editing must not select or start a gesture.
	e.PointerDown(100, 60, false)
	assert.Equal(t, ModeEditing, e.Mode())
	assert.Empty(t, e.SelectedNodes())

	e.EndEdit()
	assert.Equal(t, ModeIdle, e.Mode())
}

func TestEscapeLeavesEditing(t *testing.T) {
	e, _ := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)

	require.True(t, e.BeginEdit("a", "body"))
	e.KeyDown(KeyEscape)

	assert.Equal(t, ModeIdle, e.Mode())
	_, _, ok := e.EditingField()
	assert.False(t, ok)
}

func TestBeginEditRejectedMidGesture(t *testing.T) {
	e, _ := newTestEngine([]*board.Node{note("a", 0, 0, 1)}, nil)

	e.PointerDown(100, 60, false)
	e.PointerMove(150, 60) // promote to dragging

	assert.False(t, e.BeginEdit("a", "title"))
	e.PointerUp(150, 60)
}

func TestWithHistoryRestoresSession(t *testing.T) {
	e1, _ := newTestEngine(nil, nil)
	e1.CreateNoteAt(100, 100)
	saved := e1.History()

	s := e1.Snapshot()
	e2 := New(WithNodes(s.Nodes), WithEdges(s.Edges), WithHistory(saved))

	e2.Undo()
	assert.Empty(t, e2.Nodes(), "injected history carries the earlier state")
}
