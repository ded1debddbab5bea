package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/mattn/go-runewidth"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/model"
)

// TextOptions controls plain text rendering of a tree
type TextOptions struct {
	Glyphs    blocktree.GlyphSet
	Indent    int
	StripANSI bool
	Width     int // 0 disables truncation
	Colors    *Colors
}

func (o TextOptions) withDefaults() TextOptions {
	if o.Glyphs.Expand == "" && o.Glyphs.Contract == "" {
		o.Glyphs = blocktree.DefaultGlyphs
	}
	if o.Indent <= 0 {
		o.Indent = 2
	}
	if o.Colors == nil {
		o.Colors = NewColors(false)
	}
	return o
}

// WriteText prints the visible part of the tree. Collapsed blocks show only
// their header line; expanded blocks list their messages, then their children.
func WriteText(w io.Writer, t *blocktree.Tree, opts TextOptions) error {
	opts = opts.withDefaults()
	bw := bufio.NewWriter(w)

	glyphWidth := runewidth.StringWidth(opts.Glyphs.Expand)
	if cw := runewidth.StringWidth(opts.Glyphs.Contract); cw > glyphWidth {
		glyphWidth = cw
	}

	var visit func(b *blocktree.Block)
	visit = func(b *blocktree.Block) {
		pad := strings.Repeat(" ", b.Depth()*opts.Indent)
		glyph := runewidth.FillRight(opts.Glyphs.Render(b.Affordance()), glyphWidth)
		header := pad + glyph + " " + clean(b.Title(), opts.StripANSI)
		if b.Severity() > model.SeverityInfo {
			header += " " + opts.Colors.SeverityColor(b.Severity(), "("+b.Severity().String()+")")
		}
		writeLine(bw, header, opts.Width)

		if !b.Expanded() {
			return
		}
		msgPad := strings.Repeat(" ", (b.Depth()+1)*opts.Indent)
		for _, msg := range b.Messages() {
			level := opts.Colors.SeverityColor(msg.Level, fmt.Sprintf("%-7s", msg.Level))
			writeLine(bw, msgPad+level+" "+clean(msg.Text, opts.StripANSI), opts.Width)
		}
		for _, c := range b.Children() {
			visit(c)
		}
	}
	for _, r := range t.Roots() {
		visit(r)
	}
	return bw.Flush()
}

func clean(s string, strip bool) string {
	if strip {
		return stripansi.Strip(s)
	}
	return s
}

func writeLine(w *bufio.Writer, line string, width int) {
	if width > 0 && runewidth.StringWidth(stripansi.Strip(line)) > width {
		// Truncation drops color codes.
		line = runewidth.Truncate(stripansi.Strip(line), width, "…")
	}
	_, _ = w.WriteString(line)
	_ = w.WriteByte('\n')
}
