// Package metrics summarises a block tree for report pages and summary.json.
package metrics

import (
	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/model"
)

// DocumentMetrics holds counts describing one document
type DocumentMetrics struct {
	Title    string         `json:"title"`
	Severity model.Severity `json:"severity"`
	Blocks   int            `json:"blocks"`
	Messages int            `json:"messages"`
	// Blocks per effective severity
	BlocksBySeverity map[string]int `json:"blocksBySeverity"`
	// Messages per level
	MessagesBySeverity map[string]int `json:"messagesBySeverity"`
	Expanded           int            `json:"expanded"`
	MaxDepth           int            `json:"maxDepth"`
	// First block in display order that owns a message at the document's
	// highest level; empty when the document has nothing above INFO.
	FirstWorst string `json:"firstWorst,omitempty"`
}

// Collect computes metrics for a tree. Expanded reflects the fold state at
// the time of the call, so callers wanting initial-state numbers collect
// straight after blocktree.Build.
func Collect(t *blocktree.Tree) DocumentMetrics {
	m := DocumentMetrics{
		Title:              t.Title(),
		Severity:           model.SeverityInfo,
		BlocksBySeverity:   make(map[string]int),
		MessagesBySeverity: make(map[string]int),
	}

	for _, r := range t.Roots() {
		m.Severity = model.Max(m.Severity, r.Severity())
	}

	t.Walk(func(b *blocktree.Block) {
		m.Blocks++
		m.BlocksBySeverity[b.Severity().String()]++
		if b.Expanded() {
			m.Expanded++
		}
		if b.Depth() > m.MaxDepth {
			m.MaxDepth = b.Depth()
		}
		for _, msg := range b.Messages() {
			m.Messages++
			m.MessagesBySeverity[msg.Level.String()]++
		}
		if m.FirstWorst == "" && m.Severity > model.SeverityInfo && blocktree.OwnSeverity(b) == m.Severity {
			m.FirstWorst = b.ID()
		}
	})

	return m
}

// Status condenses a severity into the labels used on report pages
func Status(sev model.Severity) string {
	switch sev {
	case model.SeverityError:
		return "FAIL"
	case model.SeverityWarning:
		return "WARN"
	case model.SeverityAll:
		return "NOTE"
	default:
		return "PASS"
	}
}
