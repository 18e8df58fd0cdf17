package script

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cineboard/pkg/engine"
)

func TestScenarioDrivesEngine(t *testing.T) {
	e := engine.New()
	r := New(e)

	err := r.Run(`
		canvas.createColumn(220, 158);
		canvas.createNote(700, 660);
		canvas.pointerDown(700, 660);
		canvas.pointerMove(150, 160);
		canvas.pointerUp(150, 160);
	`)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}

	nodes := e.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	note := nodes[1]
	if note.ParentID != nodes[0].ID {
		t.Errorf("note should have been captured by the column, parent = %q", note.ParentID)
	}
}

func TestScenarioUndo(t *testing.T) {
	e := engine.New()
	r := New(e)

	err := r.Run(`
		canvas.createNote(100, 100);
		canvas.undo();
	`)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(e.Nodes()) != 0 {
		t.Errorf("undo should have removed the created note")
	}
}

func TestScenarioQueriesModel(t *testing.T) {
	e := engine.New()
	r := New(e)

	err := r.Run(`
		canvas.createNote(100, 100);
		canvas.createNote(400, 400);
		if (canvas.nodeCount() !== 2) {
			throw new Error("expected 2 nodes, got " + canvas.nodeCount());
		}
		const nodes = canvas.nodes();
		if (nodes[0].type !== "note") {
			throw new Error("unexpected type " + nodes[0].type);
		}
		if (canvas.mode() !== "idle") {
			throw new Error("unexpected mode " + canvas.mode());
		}
	`)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
}

func TestScenarioErrorSurfaces(t *testing.T) {
	e := engine.New()
	r := New(e)

	if err := r.Run(`throw new Error("boom")`); err == nil {
		t.Fatal("script errors must surface to the caller")
	}
}

func TestScenarioUnknownKey(t *testing.T) {
	e := engine.New()
	r := New(e)

	// goja turns the returned error into a JS exception.
	if err := r.Run(`canvas.key("f13")`); err == nil {
		t.Fatal("unknown key should fail the scenario")
	}
}

func TestConsoleOutputCollectedAndLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := engine.New()
	r := New(e, WithLogger(zap.New(core)))

	err := r.Run(`
		console.log("placed", 2, "nodes");
		console.warn("slow frame");
	`)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}

	out := r.Output()
	if len(out) != 2 {
		t.Fatalf("expected 2 console lines, got %d", len(out))
	}
	if out[0] != "placed 2 nodes" {
		t.Errorf("unexpected first line %q", out[0])
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("warn line logged at %v", entries[1].Level)
	}
	if entries[1].Message != "slow frame" {
		t.Errorf("unexpected warn message %q", entries[1].Message)
	}
}
