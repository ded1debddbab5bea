package blocktree

import "github.com/drew/logfold/internal/model"

// Snapshot returns the fold state of every block keyed by id
func (t *Tree) Snapshot() map[string]bool {
	snap := make(map[string]bool, t.Len())
	t.Walk(func(b *Block) {
		snap[b.id] = b.expanded
	})
	return snap
}

// States lists the fold state of every block in display order
func (t *Tree) States() []model.FoldState {
	states := make([]model.FoldState, 0, t.Len())
	t.Walk(func(b *Block) {
		states = append(states, model.FoldState{
			ID:       b.id,
			Expanded: b.expanded,
			Foldable: b.Foldable(),
			Severity: b.severity,
			Depth:    b.depth,
		})
	})
	return states
}
