// logfold - foldable log block trees
//
// Renders serialized block trees as interactive HTML pages, plain text or
// fold-state JSON, and browses them in the terminal.

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/config"
	"github.com/drew/logfold/internal/dashboard"
	"github.com/drew/logfold/internal/document"
	"github.com/drew/logfold/internal/metrics"
	"github.com/drew/logfold/internal/model"
	"github.com/drew/logfold/internal/ui"
	"golang.org/x/sync/errgroup"
)

// sliceFlag allows repeating --toggle and --reveal
type sliceFlag []string

func (s *sliceFlag) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)
	return nil
}

// renderOptions is everything a single document needs to be rendered
type renderOptions struct {
	Format     string
	OutputRoot string
	Parallel   int
	Toggles    []string
	Reveals    []string
	Page       dashboard.PageOptions
	Text       ui.TextOptions
}

// documentState is the fold state export of one document
type documentState struct {
	Source string            `json:"source"`
	Title  string            `json:"title"`
	Blocks []model.FoldState `json:"blocks"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "validate":
			os.Exit(runValidate(os.Args[2:]))
		case "init":
			os.Exit(runInit(os.Args[2:]))
		}
	}

	// CLI flags
	var (
		flagConfig  string
		flagFormat  string
		flagOut     string
		flagUI      string
		flagNoColor bool
		flagVerbose bool
		flagToggles sliceFlag
		flagReveals sliceFlag
	)

	flag.StringVar(&flagConfig, "config", "", "Path to config file (default: config.toml)")
	flag.StringVar(&flagFormat, "format", "", "Output format: html, text, state, tui (overrides config)")
	flag.StringVar(&flagOut, "out", "", "Output directory for html pages (overrides config)")
	flag.StringVar(&flagUI, "ui", "basic", "UI mode: basic, full")
	flag.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flagVerbose, "verbose", false, "Verbose logging")
	flag.Var(&flagToggles, "toggle", "Toggle a block by id before rendering (can be specified multiple times)")
	flag.Var(&flagReveals, "reveal", "Reveal a block and its ancestors before rendering (can be specified multiple times)")
	flag.Usage = printUsage
	flag.Parse()

	logger := newLogger(os.Stderr, flagVerbose)

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if !checkConfig(flagConfig, cfg) {
		os.Exit(1)
	}
	mergedCfg := config.MergeWithDefaults(cfg)

	// Parse UI mode (CLI flag overrides config)
	uiModeStr := flagUI
	if flagUI == "basic" && cfg != nil && mergedCfg.Defaults.UIMode != "" {
		uiModeStr = mergedCfg.Defaults.UIMode
	}
	uiMode := ui.UIModeBasic
	if uiModeStr == "full" {
		uiMode = ui.UIModeFull
	}

	enableColors := !flagNoColor && ui.IsColorEnabled()
	renderer := ui.NewRenderer(uiMode, enableColors)

	termWidth := 0
	if ui.IsTTY(os.Stdout.Fd()) {
		termWidth = ui.GetTerminalWidth()
	}
	opts := buildRenderOptions(mergedCfg, flagFormat, flagOut, flagToggles, flagReveals, renderer.Colors(), termWidth)
	if err := checkFormat(opts.Format); err != nil {
		renderer.RenderError("", err)
		os.Exit(2)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = mergedCfg.Inputs.Paths
	}
	inputs, err := document.ExpandInputs(patterns)
	if err != nil {
		renderer.RenderError("", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		renderer.RenderError("", errors.New("no input documents (pass files or set [inputs] paths)"))
		os.Exit(2)
	}
	logger.Debug("resolved inputs", "count", len(inputs), "format", opts.Format)

	if opts.Format == "tui" {
		os.Exit(runBrowser(inputs, opts, renderer, logger))
	}

	if opts.Format == "html" {
		renderer.RenderHeader(opts.Format, opts.OutputRoot, len(inputs))
	}

	results, reports := renderDocuments(inputs, opts, os.Stdout, renderer, logger)

	exitCode := 0
	for _, res := range results {
		if res.Err != nil {
			exitCode = 1
		}
	}

	if opts.Format != "html" {
		// Rendered content went to stdout; only failures are reported.
		for _, res := range results {
			if res.Err != nil {
				renderer.RenderError(res.Source, res.Err)
			}
		}
		os.Exit(exitCode)
	}

	for _, res := range results {
		renderer.RenderDocument(res, flagVerbose)
	}

	reportPath := ""
	if len(reports) > 0 {
		if _, err := dashboard.GenerateReport(opts.OutputRoot, reports); err != nil {
			renderer.RenderError("", fmt.Errorf("failed to generate report: %w", err))
			exitCode = 1
		} else {
			reportPath = filepath.Join(opts.OutputRoot, "index.html")
		}
	}
	renderer.RenderSummary(results, reportPath)

	os.Exit(exitCode)
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: logfold [flags] <documents or patterns...>\n")
	fmt.Fprintf(out, "       logfold validate [-config path] [documents...]\n")
	fmt.Fprintf(out, "       logfold init [path]\n\n")
	fmt.Fprintf(out, "Flags:\n")
	flag.PrintDefaults()
}

// newLogger returns a text logger on w. Only warnings are shown unless verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// checkConfig validates a loaded config and prints the problems when it is
// invalid. No config file means defaults, which always pass.
func checkConfig(path string, cfg *config.Config) bool {
	if cfg == nil {
		return true
	}
	result, err := config.ValidateConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return false
	}
	if result.Valid {
		return true
	}
	if path == "" {
		path = "config.toml"
	}
	config.PrintValidationResult(path, result)
	return false
}

// buildRenderOptions merges flags over the config. width is the terminal
// width text output is cut to, 0 for none.
func buildRenderOptions(cfg config.Config, format, out string, toggles, reveals []string, colors *ui.Colors, width int) renderOptions {
	if format == "" {
		format = cfg.Defaults.Format
	}
	outputRoot := cfg.Defaults.OutputRoot
	if out != "" {
		outputRoot = out
	}
	parallel := cfg.Defaults.Parallel
	if parallel <= 0 {
		parallel = 1
	}
	glyphs := cfg.Render.Glyphs()
	strip := cfg.Render.ShouldStripANSI()

	return renderOptions{
		Format:     format,
		OutputRoot: outputRoot,
		Parallel:   parallel,
		Toggles:    toggles,
		Reveals:    reveals,
		Page: dashboard.PageOptions{
			Title:     cfg.Render.Title,
			Glyphs:    glyphs,
			StripANSI: strip,
		},
		Text: ui.TextOptions{
			Glyphs:    glyphs,
			Indent:    cfg.Render.Indent,
			StripANSI: strip,
			Width:     width,
			Colors:    colors,
		},
	}
}

func checkFormat(format string) error {
	switch format {
	case "html", "text", "state", "tui":
		return nil
	}
	return fmt.Errorf("unknown format %q (want html, text, state or tui)", format)
}

// loadTree decodes a document, builds its tree and applies the requested
// toggles, then reveals. Unknown ids are ignored.
func loadTree(path string, toggles, reveals []string, logger *slog.Logger) (*blocktree.Tree, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	tree, err := blocktree.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid block tree: %w", err)
	}

	for _, id := range toggles {
		if !tree.Toggle(id) {
			logger.Debug("toggle ignored", "source", path, "id", id)
		}
	}
	for _, id := range reveals {
		changed, ok := tree.Reveal(id)
		if !ok {
			logger.Debug("reveal target not found", "source", path, "id", id)
			continue
		}
		logger.Debug("revealed block", "source", path, "id", id, "opened", len(changed))
	}
	return tree, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// pageNames assigns each input a unique html file name under the output root
func pageNames(inputs []string) []string {
	names := make([]string, len(inputs))
	used := make(map[string]int)
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		base = strings.Trim(unsafeName.ReplaceAllString(base, "-"), "-")
		if base == "" || base == "index" {
			base = "document"
		}
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		names[i] = base + ".html"
	}
	return names
}

// renderDocuments renders every input concurrently. One broken document does
// not stop the others; its error is kept in the result. Text and state output
// is written to out in input order once all documents are done.
func renderDocuments(inputs []string, opts renderOptions, out io.Writer, renderer *ui.Renderer, logger *slog.Logger) ([]ui.DocumentResult, []dashboard.DocumentReport) {
	results := make([]ui.DocumentResult, len(inputs))
	reports := make([]*dashboard.DocumentReport, len(inputs))
	texts := make([][]byte, len(inputs))
	states := make([]*documentState, len(inputs))
	names := pageNames(inputs)

	var (
		progressMu sync.Mutex
		done       int
	)

	g := new(errgroup.Group)
	g.SetLimit(opts.Parallel)

	for i, input := range inputs {
		g.Go(func() error {
			res := ui.DocumentResult{Source: input}
			defer func() {
				results[i] = res
				progressMu.Lock()
				done++
				renderer.RenderProgress(done, len(inputs))
				progressMu.Unlock()
			}()

			tree, err := loadTree(input, opts.Toggles, opts.Reveals, logger)
			if err != nil {
				res.Err = err
				return nil
			}
			logger.Debug("built tree", "source", input, "blocks", tree.Len())

			switch opts.Format {
			case "html":
				report, err := dashboard.WriteDocument(opts.OutputRoot, names[i], input, tree, opts.Page)
				if err != nil {
					res.Err = err
					return nil
				}
				reports[i] = &report
				res.Output = filepath.Join(opts.OutputRoot, names[i])
				res.Status = report.Status
				res.Blocks = report.Metrics.Blocks
				res.Expanded = report.Metrics.Expanded
				return nil

			case "text":
				var buf strings.Builder
				if len(inputs) > 1 {
					fmt.Fprintf(&buf, "== %s ==\n", input)
				}
				if err := ui.WriteText(&buf, tree, opts.Text); err != nil {
					res.Err = err
					return nil
				}
				texts[i] = []byte(buf.String())

			case "state":
				states[i] = &documentState{Source: input, Title: tree.Title(), Blocks: tree.States()}
			}

			m := metrics.Collect(tree)
			res.Status = metrics.Status(m.Severity)
			res.Blocks = m.Blocks
			res.Expanded = m.Expanded
			return nil
		})
	}
	_ = g.Wait() // documents report failures through their results

	switch opts.Format {
	case "text":
		for _, text := range texts {
			if text != nil {
				_, _ = out.Write(text)
			}
		}
	case "state":
		exported := make([]documentState, 0, len(states))
		for _, s := range states {
			if s != nil {
				exported = append(exported, *s)
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(exported); err != nil {
			logger.Warn("failed to write state", "error", err)
		}
	}

	var collected []dashboard.DocumentReport
	for _, r := range reports {
		if r != nil {
			collected = append(collected, *r)
		}
	}
	return results, collected
}

// runBrowser opens the interactive browser on the first input
func runBrowser(inputs []string, opts renderOptions, renderer *ui.Renderer, logger *slog.Logger) int {
	if !ui.CanBrowse() {
		renderer.RenderError("", errors.New("the tui format needs an interactive terminal"))
		return 2
	}
	if len(inputs) > 1 {
		logger.Warn("browsing the first document only", "inputs", len(inputs))
	}

	tree, err := loadTree(inputs[0], opts.Toggles, opts.Reveals, logger)
	if err != nil {
		renderer.RenderError(inputs[0], err)
		return 1
	}
	if err := ui.RunBrowser(tree, ui.BrowserOptions{
		Glyphs:    opts.Text.Glyphs,
		Indent:    opts.Text.Indent,
		StripANSI: opts.Text.StripANSI,
	}); err != nil {
		renderer.RenderError(inputs[0], err)
		return 1
	}
	return 0
}

// runValidate checks the config file and, when given, documents
func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "Path to config file")
	_ = fs.Parse(args)

	exitCode := 0

	if _, err := os.Stat(*configPath); err == nil {
		result, err := config.ValidateConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			return 1
		}
		config.PrintValidationResult(*configPath, result)
		if !result.Valid {
			exitCode = 1
		}
	} else if *configPath != "config.toml" {
		fmt.Fprintf(os.Stderr, "ERROR: config file not found: %s\n", *configPath)
		return 1
	}

	for _, path := range fs.Args() {
		if err := validateDocument(path); err != nil {
			fmt.Printf("✗ %s: %v\n", path, err)
			exitCode = 1
			continue
		}
		fmt.Printf("✓ %s\n", path)
	}
	return exitCode
}

func validateDocument(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	_, err = blocktree.Build(doc)
	return err
}

// runInit writes a starter config file
func runInit(args []string) int {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.GenerateDefaultConfig(path); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	fmt.Printf("Generated %s\n", path)
	return 0
}
