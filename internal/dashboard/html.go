package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/drew/logfold/assets"
	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/metrics"
	"github.com/drew/logfold/internal/model"
)

// PageOptions controls how a single document page is drawn
type PageOptions struct {
	Title     string
	Glyphs    blocktree.GlyphSet
	StripANSI bool
	// IndexLink is the relative link back to the report index, if any
	IndexLink string
}

// WriteDocumentHTML renders a tree as a self-contained interactive page.
// The fold state written is the tree's current state; the embedded script
// takes over from there.
func WriteDocumentHTML(w io.Writer, tree *blocktree.Tree, opts PageOptions) error {
	type PageData struct {
		Title     string
		Tree      *blocktree.Tree
		Metrics   metrics.DocumentMetrics
		Status    string
		IndexLink string
		Glyphs    map[string]string
		Script    template.JS
		Style     template.CSS
	}

	if opts.Glyphs == (blocktree.GlyphSet{}) {
		opts.Glyphs = blocktree.DefaultGlyphs
	}
	title := opts.Title
	if title == "" {
		title = tree.Title()
	}

	m := metrics.Collect(tree)
	data := PageData{
		Title:     title,
		Tree:      tree,
		Metrics:   m,
		Status:    metrics.Status(m.Severity),
		IndexLink: opts.IndexLink,
		Glyphs:    map[string]string{"expand": opts.Glyphs.Expand, "contract": opts.Glyphs.Contract},
		Script:    template.JS(assets.FoldScript),
		Style:     template.CSS(assets.FoldStyle),
	}

	tmpl, err := template.New("document").Funcs(pageFuncs(opts)).Parse(documentTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// writeDocumentFile renders a tree page to path
func writeDocumentFile(path string, tree *blocktree.Tree, opts PageOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteDocumentHTML(f, tree, opts)
}

func pageFuncs(opts PageOptions) template.FuncMap {
	return template.FuncMap{
		"glyph": func(b *blocktree.Block) string {
			return opts.Glyphs.Render(b.Affordance())
		},
		"severityClass": severityClass,
		"statusClass":   statusClass,
		"statusSymbol":  statusSymbol,
		"formatTime":    formatTime,
		"cleanText": func(s string) string {
			if opts.StripANSI {
				return stripansi.Strip(s)
			}
			return s
		},
	}
}

func severityClass(sev model.Severity) string {
	return "sev-" + strings.ToLower(sev.String())
}

func formatTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func getLocalTimezone() string {
	zone, _ := time.Now().Zone()
	return zone
}

func statusClass(status string) string {
	switch status {
	case "PASS":
		return "pass"
	case "WARN":
		return "warn"
	case "FAIL":
		return "fail"
	case "NOTE":
		return "note"
	default:
		return ""
	}
}

func statusSymbol(status string) string {
	switch status {
	case "PASS":
		return "✓"
	case "WARN":
		return "⚠"
	case "FAIL":
		return "✗"
	case "NOTE":
		return "ℹ"
	default:
		return "•"
	}
}

// writeIndexHTML generates the report index listing every document
func writeIndexHTML(path string, summary Summary) (err error) {
	type IndexData struct {
		Summary
		Timezone string
	}

	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"formatTime":   formatTime,
		"statusClass":  statusClass,
		"statusSymbol": statusSymbol,
		"deepLink": func(d DocumentReport) string {
			if d.Metrics.FirstWorst == "" {
				return d.File
			}
			return fmt.Sprintf("%s#%s", d.File, d.Metrics.FirstWorst)
		},
	}).Parse(indexTemplate)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return tmpl.Execute(f, IndexData{Summary: summary, Timezone: getLocalTimezone()})
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<header id="logfold-header">
<h1>{{.Title}}</h1>
<p class="{{statusClass .Status}}">{{statusSymbol .Status}} {{.Status}} &middot; {{.Metrics.Blocks}} blocks &middot; {{.Metrics.Messages}} messages</p>
{{- if .Metrics.FirstWorst}}
<p><a id="logfold-first-worst" href="#{{.Metrics.FirstWorst}}">Jump to first {{.Metrics.Severity}}</a></p>
{{- end}}
{{- if .IndexLink}}
<p><a href="{{.IndexLink}}">All documents</a></p>
{{- end}}
</header>
<main id="logfold-blocks">
{{- range .Tree.Roots}}
{{template "block" .}}
{{- end}}
</main>
<script>window.logfoldGlyphs = {{.Glyphs}};</script>
<script>{{.Script}}</script>
</body>
</html>
{{define "block"}}<section class="block {{severityClass .Severity}}{{if .IsTopLevel}} top-level{{end}}" id="{{.ID}}" data-kind="{{.Kind}}" data-expanded="{{.Expanded}}" data-foldable="{{.Foldable}}">
<div class="block-header">{{with glyph .}}<span class="glyph">{{.}}</span>{{end}}<span class="title">{{.Title}}</span></div>
<div class="block-content">
{{- range .Messages}}
<pre class="msg {{severityClass .Level}}">{{cleanText .Text}}</pre>
{{- end}}
{{- range .Children}}
{{template "block" .}}
{{- end}}
</div>
</section>{{end}}
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>logfold report</title>
<style>
body { font-family: sans-serif; }
td, th { padding: 4px 12px; text-align: left; }
.fail { color: #c53030; } .warn { color: #b7791f; } .note { color: #2b6cb0; } .pass { color: #2f855a; }
</style>
</head>
<body>
<h1>logfold report</h1>
<p>{{.TotalDocuments}} documents &middot; generated {{formatTime .LastGenerated}} ({{.Timezone}})</p>
<table>
<thead><tr><th>Status</th><th>Document</th><th>Blocks</th><th>Errors</th><th>Warnings</th><th>Source</th></tr></thead>
<tbody>
{{- range .Documents}}
<tr>
<td class="{{statusClass .Status}}">{{statusSymbol .Status}} {{.Status}}</td>
<td><a href="{{deepLink .}}">{{.Metrics.Title}}</a></td>
<td>{{.Metrics.Blocks}}</td>
<td>{{index .Metrics.MessagesBySeverity "ERROR"}}</td>
<td>{{index .Metrics.MessagesBySeverity "WARNING"}}</td>
<td>{{.Source}}</td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`
