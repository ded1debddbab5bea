package blocktree

import (
	"math/rand"
	"testing"

	"github.com/drew/logfold/internal/model"
)

func TestScenarioInitialFold(t *testing.T) {
	tree := mustBuild(t, scenarioDoc())

	want := map[string]bool{"R": true, "B": true, "A": true, "C": false}
	for id, expanded := range want {
		b, _ := tree.Lookup(id)
		if b.Expanded() != expanded {
			t.Errorf("%s.Expanded() = %v, want %v", id, b.Expanded(), expanded)
		}
	}
}

func TestInitialExpanded(t *testing.T) {
	tree := mustBuild(t, scenarioDoc())
	root, _ := tree.Lookup("R")
	child, _ := tree.Lookup("C")

	tests := []struct {
		name  string
		block *Block
		sev   model.Severity
		want  bool
	}{
		{"top-level info", root, model.SeverityInfo, true},
		{"nested info", child, model.SeverityInfo, false},
		{"nested warning", child, model.SeverityWarning, true},
		{"nested error", child, model.SeverityError, true},
		{"nested all", child, model.SeverityAll, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialExpanded(tt.block, tt.sev); got != tt.want {
				t.Errorf("InitialExpanded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopLevelAlwaysOpen(t *testing.T) {
	doc := model.Document{Blocks: []model.BlockRecord{
		{ID: "quiet", Kind: model.KindHeader, Messages: []model.Message{{Text: "fine"}}},
		{ID: "empty", Kind: model.KindDirectory},
	}}
	tree := mustBuild(t, doc)
	for _, r := range tree.Roots() {
		if !r.Expanded() {
			t.Errorf("top-level %s starts collapsed", r.ID())
		}
	}
}

func TestFoldPolicyIsPure(t *testing.T) {
	tree := mustBuild(t, scenarioDoc())
	c, _ := tree.Lookup("C")
	tree.Toggle("C")
	before := tree.Snapshot()

	states := FoldPolicy(tree, Classify(tree.Roots()))
	if states[c] {
		t.Error("FoldPolicy(C) = true, want false")
	}
	after := tree.Snapshot()
	for id, v := range before {
		if after[id] != v {
			t.Errorf("FoldPolicy modified %s", id)
		}
	}
}

func TestInitialFoldProperty(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		tree := mustBuild(t, randomDoc(r, 50))
		tree.Walk(func(b *Block) {
			if b.IsTopLevel() {
				if !b.Expanded() {
					t.Errorf("top-level %s collapsed", b.ID())
				}
				return
			}
			want := b.Severity() >= model.SeverityWarning || b.Severity() == model.SeverityAll
			if b.Expanded() != want {
				t.Errorf("%s severity %v: expanded = %v, want %v", b.ID(), b.Severity(), b.Expanded(), want)
			}
		})
	}
}
