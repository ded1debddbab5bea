package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/model"
)

// BrowserOptions configures the interactive tree browser
type BrowserOptions struct {
	Glyphs    blocktree.GlyphSet
	Indent    int
	StripANSI bool
	Width     int // initial size; 0 uses 80x24 until the first resize
	Height    int
}

var (
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	allStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

const footerLines = 2

func severityStyle(sev model.Severity) (lipgloss.Style, bool) {
	switch sev {
	case model.SeverityError:
		return errorStyle, true
	case model.SeverityWarning:
		return warningStyle, true
	case model.SeverityAll:
		return allStyle, true
	}
	return lipgloss.Style{}, false
}

// row is one screen line: a block header, or a message of an expanded block
type row struct {
	block *blocktree.Block
	msg   *model.Message
}

type browserModel struct {
	tree     *blocktree.Tree
	opts     BrowserOptions
	rows     []row
	cursor   int
	width    int
	viewport viewport.Model
	input    textinput.Model
	prompt   bool
	status   string
}

func newBrowserModel(tree *blocktree.Tree, opts BrowserOptions) browserModel {
	opts.Glyphs = TextOptions{Glyphs: opts.Glyphs}.withDefaults().Glyphs
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= footerLines {
		opts.Height = 24
	}

	input := textinput.New()
	input.Prompt = "go to #"
	input.Placeholder = "block id"
	input.CharLimit = 256
	input.Width = opts.Width - len(input.Prompt) - 1

	m := browserModel{
		tree:     tree,
		opts:     opts,
		width:    opts.Width,
		viewport: viewport.New(opts.Width, opts.Height-footerLines),
		input:    input,
	}
	m.refresh()
	return m
}

// RunBrowser opens the full-screen browser on a tree and blocks until the user quits
func RunBrowser(tree *blocktree.Tree, opts BrowserOptions) error {
	if opts.Width <= 0 {
		opts.Width = GetTerminalWidth()
	}
	if opts.Height <= 0 {
		opts.Height = GetTerminalHeight()
	}
	p := tea.NewProgram(newBrowserModel(tree, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - footerLines
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.prompt {
			return m.updatePrompt(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "pgup":
			m.moveCursor(-m.viewport.Height)
		case "pgdown":
			m.moveCursor(m.viewport.Height)
		case "home":
			m.moveCursor(-len(m.rows))
		case "end":
			m.moveCursor(len(m.rows))
		case "enter", " ", "space":
			m.toggleCurrent()
		case "g", "/":
			m.prompt = true
			m.status = ""
			m.input.Reset()
			return m, m.input.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m browserModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.prompt = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.prompt = false
		m.input.Blur()
		m.follow(strings.TrimSpace(m.input.Value()))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// follow reveals a block. A bare id is taken literally; input containing
// "#" is treated as an in-page link and goes through the link handler.
func (m *browserModel) follow(target string) {
	if target == "" {
		return
	}
	id := target
	if strings.Contains(target, "#") {
		var ok bool
		if id, ok = blocktree.AnchorTarget(target, ""); !ok {
			return
		}
		m.tree.Dispatch(blocktree.Event{Kind: blocktree.EventFollowLink, Target: target})
	} else if _, ok := m.tree.Reveal(id); !ok {
		return
	}
	b, ok := m.tree.Lookup(id)
	if !ok {
		return
	}
	m.refresh()
	m.cursor = m.headerRow(b)
	m.status = fmt.Sprintf("#%s", b.ID())
	m.scrollToCursor()
}

func (m *browserModel) toggleCurrent() {
	if len(m.rows) == 0 {
		return
	}
	b := m.rows[m.cursor].block
	if !m.tree.Dispatch(blocktree.Event{Kind: blocktree.EventHeaderClick, Target: b.ID()}) {
		return
	}
	m.refresh()
	m.cursor = m.headerRow(b)
	m.scrollToCursor()
}

func (m *browserModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.render()
	m.scrollToCursor()
}

func (m *browserModel) headerRow(b *blocktree.Block) int {
	for i, r := range m.rows {
		if r.block == b && r.msg == nil {
			return i
		}
	}
	return 0
}

func (m *browserModel) scrollToCursor() {
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// refresh rebuilds the row list from the current fold state
func (m *browserModel) refresh() {
	m.rows = nil
	for _, b := range m.tree.Visible() {
		m.rows = append(m.rows, row{block: b})
		if !b.Expanded() {
			continue
		}
		msgs := b.Messages()
		for i := range msgs {
			m.rows = append(m.rows, row{block: b, msg: &msgs[i]})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.render()
}

func (m *browserModel) render() {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		line := m.rowText(r)
		if m.width > 0 {
			line = runewidth.Truncate(line, m.width, "…")
		}
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case r.msg != nil:
			if style, ok := severityStyle(r.msg.Level); ok {
				line = style.Render(line)
			}
		default:
			if style, ok := severityStyle(r.block.Severity()); ok {
				line = style.Render(line)
			}
		}
		lines[i] = line
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m browserModel) rowText(r row) string {
	b := r.block
	if r.msg != nil {
		pad := strings.Repeat(" ", (b.Depth()+1)*m.opts.Indent)
		return fmt.Sprintf("%s%-7s %s", pad, r.msg.Level, clean(r.msg.Text, m.opts.StripANSI))
	}
	pad := strings.Repeat(" ", b.Depth()*m.opts.Indent)
	glyph := m.opts.Glyphs.Render(b.Affordance())
	if glyph == "" {
		glyph = strings.Repeat(" ", runewidth.StringWidth(m.opts.Glyphs.Expand))
	}
	return pad + glyph + " " + clean(b.Title(), m.opts.StripANSI)
}

func (m browserModel) View() string {
	var footer string
	switch {
	case m.prompt:
		footer = m.input.View()
	case m.status != "":
		footer = footerStyle.Render(m.status)
	default:
		footer = footerStyle.Render("enter toggle · g go to block · q quit")
	}
	title := m.tree.Title()
	if title == "" {
		title = "logfold"
	}
	return m.viewport.View() + "\n" + footerStyle.Render(title) + "\n" + footer
}
