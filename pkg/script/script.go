// Package script replays interaction scenarios against a canvas engine
// from JavaScript. Scenarios drive the same pointer and keyboard entry
// points a real host uses, which makes them handy for reproducing
// gesture bugs headlessly.
package script

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"cineboard/pkg/board"
	"cineboard/pkg/engine"
)

// Runner executes scenario scripts against one engine.
type Runner struct {
	vm      *goja.Runtime
	engine  *engine.Engine
	console *console
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger scenario console output is mirrored to;
// the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) { r.console.log = log }
}

// New creates a runner bound to the engine, with the console API and
// the global `canvas` object registered.
func New(e *engine.Engine, opts ...Option) *Runner {
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	r := &Runner{vm: vm, engine: e, console: &console{log: zap.NewNop()}}
	for _, opt := range opts {
		opt(r)
	}

	r.console.register(vm)
	r.registerCanvas()

	return r
}

// Output returns every console line the scenario has written so far.
func (r *Runner) Output() []string {
	return r.console.lines
}

// RunFile executes a scenario script from disk.
func (r *Runner) RunFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scenario: %w", err)
	}
	return r.Run(string(src))
}

// Run executes scenario source. Script errors are returned, not
// swallowed: a failing assertion in a scenario should fail the run.
func (r *Runner) Run(src string) error {
	if _, err := r.vm.RunString(src); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	return nil
}

// registerCanvas sets up the global `canvas` object exposing the
// engine's public contract to scripts.
func (r *Runner) registerCanvas() {
	e := r.engine
	obj := r.vm.NewObject()

	obj.Set("createNote", func(x, y float64) { e.CreateNoteAt(x, y) })
	obj.Set("createColumn", func(x, y float64) { e.CreateColumnAt(x, y) })
	obj.Set("createPrompt", func(x, y float64) { e.CreatePromptAt(x, y) })
	obj.Set("createImage", func(x, y float64, src string, nw, nh float64) {
		e.CreateImageAt(x, y, board.ImageData{Src: src, NaturalWidth: nw, NaturalHeight: nh})
	})
	obj.Set("createVideo", func(x, y float64, src, filename string) {
		e.CreateVideoAt(x, y, board.VideoData{Src: src, Filename: filename})
	})

	obj.Set("pointerDown", func(x, y float64) { e.PointerDown(x, y, false) })
	obj.Set("shiftPointerDown", func(x, y float64) { e.PointerDown(x, y, true) })
	obj.Set("pointerMove", func(x, y float64) { e.PointerMove(x, y) })
	obj.Set("pointerUp", func(x, y float64) { e.PointerUp(x, y) })

	obj.Set("key", func(name string) error {
		switch name {
		case "escape":
			e.KeyDown(engine.KeyEscape)
		case "delete":
			e.KeyDown(engine.KeyDelete)
		case "backspace":
			e.KeyDown(engine.KeyBackspace)
		default:
			return fmt.Errorf("unknown key %q", name)
		}
		return nil
	})

	obj.Set("undo", func() { e.Undo() })
	obj.Set("redo", func() { e.Redo() })
	obj.Set("mode", func() string { return e.Mode().String() })
	obj.Set("toggleCollapse", func(id string) { e.ToggleCollapse(id) })
	obj.Set("setNoteTitle", func(id, title string) {
		e.UpdateNodeData(id, func(n *board.Node) {
			if n.Note != nil {
				n.Note.Title = title
			}
		})
	})

	obj.Set("nodeCount", func() int { return len(e.Nodes()) })
	obj.Set("edgeCount", func() int { return len(e.Edges()) })
	obj.Set("selected", func() []string { return e.SelectedNodes() })
	obj.Set("nodes", r.nodeSummaries)
	obj.Set("snapshot", func() (string, error) {
		data, err := json.Marshal(e.Snapshot())
		if err != nil {
			return "", err
		}
		return string(data), nil
	})

	r.vm.Set("canvas", obj)
}

// nodeSummary is the script-facing view of one node.
type nodeSummary struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ParentID string  `json:"parentId"`
	ZIndex   int     `json:"zIndex"`
}

func (r *Runner) nodeSummaries() []nodeSummary {
	nodes := r.engine.Nodes()
	out := make([]nodeSummary, len(nodes))
	for i, n := range nodes {
		out[i] = nodeSummary{
			ID: n.ID, Type: string(n.Type),
			X: n.X, Y: n.Y,
			ParentID: n.ParentID, ZIndex: n.ZIndex,
		}
	}
	return out
}
