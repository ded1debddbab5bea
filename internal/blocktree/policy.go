package blocktree

import "github.com/drew/logfold/internal/model"

// InitialExpanded decides the fold state a block starts with.
// Top-level blocks always start open so the page is never fully collapsed.
func InitialExpanded(b *Block, sev model.Severity) bool {
	if b.IsTopLevel() {
		return true
	}
	return sev >= model.SeverityWarning || sev == model.SeverityAll
}

// FoldPolicy assigns the initial fold state of every block from its
// classification. It does not modify the tree.
func FoldPolicy(t *Tree, classes Classification) map[*Block]bool {
	states := make(map[*Block]bool, t.Len())
	t.Walk(func(b *Block) {
		states[b] = InitialExpanded(b, classes[b])
	})
	return states
}
