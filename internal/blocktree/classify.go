package blocktree

import "github.com/drew/logfold/internal/model"

// Classification maps every block of a tree to its effective severity
type Classification map[*Block]model.Severity

// OwnSeverity returns the highest level among the block's own messages,
// INFO when it has none.
func OwnSeverity(b *Block) model.Severity {
	sev := model.SeverityInfo
	for _, m := range b.messages {
		sev = model.Max(sev, m.Level)
	}
	return sev
}

// EffectiveSeverity returns the highest level over b's own messages and,
// recursively, its descendants. It recomputes the whole subtree on each call;
// Classify does the same work once for a tree.
func EffectiveSeverity(b *Block) model.Severity {
	sev := OwnSeverity(b)
	for _, c := range b.children {
		sev = model.Max(sev, EffectiveSeverity(c))
	}
	return sev
}

// Classify computes the effective severity of every block under roots,
// visiting each block once.
func Classify(roots []*Block) Classification {
	c := make(Classification)
	for _, r := range roots {
		c.visit(r)
	}
	return c
}

func (c Classification) visit(b *Block) model.Severity {
	if sev, ok := c[b]; ok {
		return sev
	}
	sev := OwnSeverity(b)
	for _, child := range b.children {
		sev = model.Max(sev, c.visit(child))
	}
	c[b] = sev
	return sev
}
