package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/model"
)

func scenarioTree(t *testing.T) *blocktree.Tree {
	t.Helper()
	tree, err := blocktree.Build(model.Document{
		Title: "nightly",
		Blocks: []model.BlockRecord{
			{ID: "R", Kind: model.KindHeader, Title: "run", Children: []string{"B", "leaf"}},
			{ID: "B", Kind: model.KindDirectory, Children: []string{"A", "C"}},
			{ID: "A", Kind: model.KindHeader, Messages: []model.Message{
				{Level: model.SeverityWarning, Text: "\x1b[33mretrying\x1b[0m"},
			}},
			{ID: "C", Kind: model.KindHeader, Messages: []model.Message{
				{Level: model.SeverityInfo, Text: "all <good>"},
			}},
			{ID: "leaf", Kind: model.KindHeader},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}

func renderPage(t *testing.T, tree *blocktree.Tree, opts PageOptions) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteDocumentHTML(&buf, tree, opts); err != nil {
		t.Fatalf("WriteDocumentHTML() error = %v", err)
	}
	return buf.String()
}

func TestWriteDocumentHTMLFoldState(t *testing.T) {
	page := renderPage(t, scenarioTree(t), PageOptions{StripANSI: true})

	wantAttrs := []string{
		`id="R" data-kind="header-block" data-expanded="true" data-foldable="true"`,
		`id="B" data-kind="directory-block" data-expanded="true" data-foldable="true"`,
		`id="A" data-kind="header-block" data-expanded="true" data-foldable="true"`,
		`id="C" data-kind="header-block" data-expanded="false" data-foldable="true"`,
		`id="leaf" data-kind="header-block" data-expanded="false" data-foldable="false"`,
	}
	for _, want := range wantAttrs {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestWriteDocumentHTMLOneGlyphPerHeader(t *testing.T) {
	page := renderPage(t, scenarioTree(t), PageOptions{})

	contract := strings.Count(page, `<span class="glyph">[-]</span>`)
	expand := strings.Count(page, `<span class="glyph">[+]</span>`)
	if contract != 3 || expand != 1 {
		t.Errorf("glyphs: %d contract, %d expand; want 3 and 1", contract, expand)
	}
	if total := strings.Count(page, `class="glyph"`); total != 4 {
		t.Errorf("found %d glyph spans, want 4 (leaf has none)", total)
	}
}

func TestWriteDocumentHTMLReflectsCurrentState(t *testing.T) {
	tree := scenarioTree(t)
	tree.Toggle("A")
	tree.Reveal("C")

	page := renderPage(t, tree, PageOptions{Glyphs: blocktree.GlyphSet{Expand: "open", Contract: "close"}})
	if !strings.Contains(page, `id="A" data-kind="header-block" data-expanded="false"`) {
		t.Error("toggled A should render collapsed")
	}
	if !strings.Contains(page, `id="C" data-kind="header-block" data-expanded="true"`) {
		t.Error("revealed C should render expanded")
	}
	if strings.Count(page, `<span class="glyph">open</span>`) != 1 {
		t.Error("custom expand glyph not used exactly once")
	}
}

func TestWriteDocumentHTMLMessages(t *testing.T) {
	tree := scenarioTree(t)

	page := renderPage(t, tree, PageOptions{StripANSI: true})
	if !strings.Contains(page, `<pre class="msg sev-warning">retrying</pre>`) {
		t.Error("ANSI codes not stripped from message")
	}
	if !strings.Contains(page, "all &lt;good&gt;") {
		t.Error("message text not HTML-escaped")
	}

	raw := renderPage(t, tree, PageOptions{StripANSI: false})
	if strings.Contains(raw, `<pre class="msg sev-warning">retrying</pre>`) {
		t.Error("ANSI codes stripped although disabled")
	}
}

func TestWriteDocumentHTMLHeader(t *testing.T) {
	page := renderPage(t, scenarioTree(t), PageOptions{IndexLink: "../index.html"})

	if !strings.Contains(page, "<title>nightly</title>") {
		t.Error("document title missing")
	}
	if !strings.Contains(page, `href="#A">Jump to first WARNING</a>`) {
		t.Error("jump link to first warning missing")
	}
	if !strings.Contains(page, `href="../index.html"`) {
		t.Error("index link missing")
	}
	if !strings.Contains(page, "window.logfoldGlyphs") {
		t.Error("glyph table not embedded")
	}

	override := renderPage(t, scenarioTree(t), PageOptions{Title: "Build #42"})
	if !strings.Contains(override, "<title>Build #42</title>") {
		t.Error("title override ignored")
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		status string
		class  string
		symbol string
	}{
		{"PASS", "pass", "✓"},
		{"WARN", "warn", "⚠"},
		{"FAIL", "fail", "✗"},
		{"NOTE", "note", "ℹ"},
		{"UNKNOWN", "", "•"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.status); got != tt.class {
			t.Errorf("statusClass(%q) = %q, want %q", tt.status, got, tt.class)
		}
		if got := statusSymbol(tt.status); got != tt.symbol {
			t.Errorf("statusSymbol(%q) = %q, want %q", tt.status, got, tt.symbol)
		}
	}
}

func TestSeverityClass(t *testing.T) {
	if got := severityClass(model.SeverityAll); got != "sev-all" {
		t.Errorf("severityClass(ALL) = %q", got)
	}
	if got := severityClass(model.SeverityError); got != "sev-error" {
		t.Errorf("severityClass(ERROR) = %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime("not-a-time"); got != "not-a-time" {
		t.Errorf("formatTime(invalid) = %q", got)
	}
	if got := formatTime("2026-01-02T03:04:05Z"); len(got) != len("2006-01-02 15:04:05") {
		t.Errorf("formatTime() = %q", got)
	}
}
