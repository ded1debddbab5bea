// Package dashboard writes interactive HTML pages for block trees and the
// report index that links them together.
package dashboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/metrics"
)

// DocumentReport describes one rendered document
type DocumentReport struct {
	Source  string                  `json:"source"`
	File    string                  `json:"file"` // relative to the output root
	Status  string                  `json:"status"`
	Metrics metrics.DocumentMetrics `json:"metrics"`
}

// Summary holds aggregated data across all documents
type Summary struct {
	TotalDocuments int              `json:"totalDocuments"`
	StatusCounts   map[string]int   `json:"statusCounts"`
	Documents      []DocumentReport `json:"documents"`
	LastGenerated  string           `json:"lastGenerated"`
}

// WriteDocument renders tree to outputRoot/file and returns its report entry.
// Metrics are taken before rendering, so they describe the page as it opens.
func WriteDocument(outputRoot, file, source string, tree *blocktree.Tree, opts PageOptions) (DocumentReport, error) {
	m := metrics.Collect(tree)
	report := DocumentReport{
		Source:  source,
		File:    filepath.ToSlash(file),
		Status:  metrics.Status(m.Severity),
		Metrics: m,
	}

	path := filepath.Join(outputRoot, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}
	if opts.IndexLink == "" {
		rel, err := filepath.Rel(filepath.Dir(path), filepath.Join(outputRoot, "index.html"))
		if err == nil {
			opts.IndexLink = filepath.ToSlash(rel)
		}
	}
	if err := writeDocumentFile(path, tree, opts); err != nil {
		return report, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return report, nil
}

// GenerateReport writes summary.json and index.html for the rendered documents
func GenerateReport(outputRoot string, docs []DocumentReport) (Summary, error) {
	summary := aggregate(docs)

	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output root: %w", err)
	}

	summaryPath := filepath.Join(outputRoot, "summary.json")
	if err := writeSummaryJSON(summaryPath, summary); err != nil {
		return summary, fmt.Errorf("failed to write summary.json: %w", err)
	}

	indexPath := filepath.Join(outputRoot, "index.html")
	if err := writeIndexHTML(indexPath, summary); err != nil {
		return summary, fmt.Errorf("failed to write index.html: %w", err)
	}

	return summary, nil
}

// aggregate orders documents worst first, then by source
func aggregate(docs []DocumentReport) Summary {
	summary := Summary{
		TotalDocuments: len(docs),
		StatusCounts:   make(map[string]int),
		Documents:      append([]DocumentReport(nil), docs...),
		LastGenerated:  time.Now().UTC().Format(time.RFC3339),
	}

	for _, d := range docs {
		summary.StatusCounts[d.Status]++
	}

	sort.SliceStable(summary.Documents, func(i, j int) bool {
		a, b := summary.Documents[i], summary.Documents[j]
		if a.Metrics.Severity != b.Metrics.Severity {
			return a.Metrics.Severity > b.Metrics.Severity
		}
		return a.Source < b.Source
	})

	return summary
}

// writeSummaryJSON writes the summary to a JSON file
func writeSummaryJSON(path string, summary Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
