package blocktree

import (
	"testing"

	"github.com/drew/logfold/internal/model"
)

func TestStates(t *testing.T) {
	tree := mustBuild(t, scenarioDoc())
	states := tree.States()

	if len(states) != 4 {
		t.Fatalf("States() returned %d entries, want 4", len(states))
	}
	want := []model.FoldState{
		{ID: "R", Expanded: true, Foldable: true, Severity: model.SeverityWarning, Depth: 0},
		{ID: "B", Expanded: true, Foldable: true, Severity: model.SeverityWarning, Depth: 1},
		{ID: "A", Expanded: true, Foldable: true, Severity: model.SeverityWarning, Depth: 2},
		{ID: "C", Expanded: false, Foldable: true, Severity: model.SeverityInfo, Depth: 2},
	}
	for i, w := range want {
		if states[i] != w {
			t.Errorf("States()[%d] = %+v, want %+v", i, states[i], w)
		}
	}
}

func TestSnapshot(t *testing.T) {
	tree := mustBuild(t, scenarioDoc())
	snap := tree.Snapshot()
	if len(snap) != 4 || snap["C"] || !snap["A"] {
		t.Errorf("Snapshot() = %v", snap)
	}
}
