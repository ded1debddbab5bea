package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// UIMode represents the UI rendering mode
type UIMode string

// UI mode constants
const (
	UIModeBasic UIMode = "basic"
	UIModeFull  UIMode = "full"
)

// DocumentResult is the outcome of rendering one input document
type DocumentResult struct {
	Source   string
	Output   string
	Status   string // PASS, WARN, FAIL, NOTE or ERROR
	Blocks   int
	Expanded int
	Err      error
}

// Renderer writes command progress and summaries
type Renderer struct {
	mode   UIMode
	colors *Colors
	width  int
	isTTY  bool
	out    io.Writer
	errOut io.Writer
}

// NewRenderer creates a new UI renderer
func NewRenderer(mode UIMode, enableColors bool) *Renderer {
	isTTY := IsTTY(os.Stdout.Fd())
	width := GetTerminalWidth()

	// Force basic mode if not a TTY
	if !isTTY && mode != UIModeBasic {
		mode = UIModeBasic
	}

	// Disable colors if not a TTY or explicitly disabled
	if !isTTY {
		enableColors = false
	}

	return &Renderer{
		mode:   mode,
		colors: NewColors(enableColors),
		width:  width,
		isTTY:  isTTY,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetOutput redirects normal and error output
func (r *Renderer) SetOutput(out, errOut io.Writer) {
	r.out = out
	r.errOut = errOut
}

// Mode returns the effective rendering mode
func (r *Renderer) Mode() UIMode {
	return r.mode
}

// Colors returns the color helper used by the renderer
func (r *Renderer) Colors() *Colors {
	return r.colors
}

// RenderHeader renders the run header
func (r *Renderer) RenderHeader(format, outputRoot string, inputs int) {
	switch r.mode {
	case UIModeFull:
		r.renderFullHeader(format, outputRoot, inputs)
	default:
		r.renderBasicHeader(format, outputRoot, inputs)
	}
}

func (r *Renderer) renderFullHeader(format, outputRoot string, inputs int) {
	title := fmt.Sprintf("logfold %s", format)
	inner := r.width - 2
	if inner < len(title)+2 {
		inner = len(title) + 2
	}
	line := strings.Repeat("═", inner)
	_, _ = fmt.Fprintf(r.out, "╔%s╗\n", line)
	_, _ = fmt.Fprintf(r.out, "║ %s%s║\n", r.colors.Bold(title), strings.Repeat(" ", inner-len(title)-1))
	_, _ = fmt.Fprintf(r.out, "╚%s╝\n", line)
	_, _ = fmt.Fprintf(r.out, "%s %d document(s) → %s\n\n", r.colors.Gray("Inputs:"), inputs, outputRoot)
}

func (r *Renderer) renderBasicHeader(format, outputRoot string, inputs int) {
	_, _ = fmt.Fprintf(r.out, "logfold %s: %d document(s)", format, inputs)
	if outputRoot != "" {
		_, _ = fmt.Fprintf(r.out, " → %s", outputRoot)
	}
	_, _ = fmt.Fprintln(r.out)
}

func truncateSource(source string, maxLen int) string {
	if len(source) <= maxLen {
		return source
	}
	return "…" + source[len(source)-maxLen+1:]
}

// RenderDocument renders the result line of one document
func (r *Renderer) RenderDocument(res DocumentResult, verbose bool) {
	if res.Err != nil {
		r.RenderError(res.Source, res.Err)
		return
	}

	source := res.Source
	if !verbose {
		source = truncateSource(source, 48)
	}
	symbol := r.colors.StatusSymbol(res.Status)
	status := r.colors.StatusColor(res.Status, fmt.Sprintf("%-4s", res.Status))

	_, _ = fmt.Fprintf(r.out, "%s %s %s %s\n",
		symbol,
		status,
		source,
		r.colors.Gray(fmt.Sprintf("(%d/%d blocks open)", res.Expanded, res.Blocks)))
	if verbose && res.Output != "" {
		_, _ = fmt.Fprintf(r.out, "    → %s\n", res.Output)
	}
}

// RenderError prints a failure to stderr
func (r *Renderer) RenderError(source string, err error) {
	if source == "" {
		_, _ = fmt.Fprintf(r.errOut, "%s %v\n", r.colors.Red("ERROR:"), err)
		return
	}
	_, _ = fmt.Fprintf(r.errOut, "%s %s: %v\n", r.colors.Red("ERROR:"), source, err)
}

// RenderSummary renders the final summary of a run
func (r *Renderer) RenderSummary(results []DocumentResult, reportPath string) {
	counts := make(map[string]int)
	for _, res := range results {
		if res.Err != nil {
			counts["ERROR"]++
			continue
		}
		counts[res.Status]++
	}

	_, _ = fmt.Fprintln(r.out)
	if r.mode == UIModeFull {
		_, _ = fmt.Fprintln(r.out, r.colors.Bold("Summary"))
		_, _ = fmt.Fprintln(r.out, strings.Repeat("─", 40))
		for _, status := range []string{"FAIL", "WARN", "NOTE", "PASS", "ERROR"} {
			if counts[status] == 0 {
				continue
			}
			_, _ = fmt.Fprintf(r.out, "  %s %-5s %d\n",
				r.colors.StatusSymbol(status),
				r.colors.StatusColor(status, status),
				counts[status])
		}
	} else {
		var parts []string
		for _, status := range []string{"FAIL", "WARN", "NOTE", "PASS", "ERROR"} {
			if counts[status] > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", counts[status], strings.ToLower(status)))
			}
		}
		_, _ = fmt.Fprintf(r.out, "%d document(s): %s\n", len(results), strings.Join(parts, ", "))
	}

	if reportPath != "" {
		_, _ = fmt.Fprintf(r.out, "Report: %s\n", r.colors.Cyan(reportPath))
	}
}

// RenderProgress renders document progress in full mode
func (r *Renderer) RenderProgress(current, total int) {
	if r.mode != UIModeFull || !r.isTTY {
		return
	}
	bar := r.colors.ProgressBar(current, total, 30)
	_, _ = fmt.Fprintf(r.out, "\r%s %d/%d", bar, current, total)
	if current >= total {
		_, _ = fmt.Fprintln(r.out)
	}
}

// Verbose prints a message only if verbose mode is enabled
func (r *Renderer) Verbose(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(r.errOut, r.colors.Gray(msg))
}
