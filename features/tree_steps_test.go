package features

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/drew/logfold/internal/document"
	"github.com/drew/logfold/internal/model"
)

type treeContext struct {
	*sharedContext
}

// aBlockTree builds a tree from a table with id, kind, parent and messages
// columns. Messages are written as LEVEL:text pairs separated by semicolons.
func (c *treeContext) aBlockTree(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("block table needs a header row and at least one block")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	for _, name := range []string{"id", "kind", "parent", "messages"} {
		if _, ok := columns[name]; !ok {
			return fmt.Errorf("block table is missing the %q column", name)
		}
	}

	doc := model.Document{}
	position := make(map[string]int)
	for _, row := range table.Rows[1:] {
		cell := func(name string) string {
			return strings.TrimSpace(row.Cells[columns[name]].Value)
		}

		rec := model.BlockRecord{ID: cell("id"), Kind: model.Kind(cell("kind"))}
		msgs, err := parseMessages(cell("messages"))
		if err != nil {
			return fmt.Errorf("block %s: %w", rec.ID, err)
		}
		rec.Messages = msgs

		if parent := cell("parent"); parent != "" {
			p, ok := position[parent]
			if !ok {
				return fmt.Errorf("block %s: parent %s must be listed first", rec.ID, parent)
			}
			doc.Blocks[p].Children = append(doc.Blocks[p].Children, rec.ID)
		}
		position[rec.ID] = len(doc.Blocks)
		doc.Blocks = append(doc.Blocks, rec)
	}

	c.doc = doc
	c.build()
	return c.buildErr
}

func parseMessages(s string) ([]model.Message, error) {
	var msgs []model.Message
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		level, text, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("message %q is not LEVEL:text", part)
		}
		sev, err := model.ParseSeverity(level)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, model.Message{Level: sev, Text: text})
	}
	return msgs, nil
}

func (c *treeContext) aYAMLDocument(body *godog.DocString) error {
	doc, err := document.Decode(strings.NewReader(body.Content), document.FormatYAML)
	if err != nil {
		return fmt.Errorf("document does not decode: %w", err)
	}
	c.doc = doc
	return nil
}

func (c *treeContext) theTreeIsBuilt() error {
	c.build()
	return nil
}

func (c *treeContext) buildingFailsWith(fragment string) error {
	if c.buildErr == nil {
		return fmt.Errorf("expected build to fail with %q, it succeeded", fragment)
	}
	if !strings.Contains(c.buildErr.Error(), fragment) {
		return fmt.Errorf("build error %q does not mention %q", c.buildErr, fragment)
	}
	return nil
}

func (c *treeContext) theTreeHasBlocks(n int) error {
	if err := c.requireTree(); err != nil {
		return err
	}
	if c.tree.Len() != n {
		return fmt.Errorf("tree has %d blocks, want %d", c.tree.Len(), n)
	}
	return nil
}

func (c *treeContext) blockHasSeverity(id, level string) error {
	b, err := c.lookup(id)
	if err != nil {
		return err
	}
	if b.Severity().String() != level {
		return fmt.Errorf("block %s has severity %s, want %s", id, b.Severity(), level)
	}
	return nil
}

// InitializeTreeScenario registers document and tree construction steps
func InitializeTreeScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &treeContext{sharedContext: shared}

	sc.Step(`^a block tree:$`, c.aBlockTree)
	sc.Step(`^a YAML document:$`, c.aYAMLDocument)
	sc.Step(`^the tree is built$`, c.theTreeIsBuilt)
	sc.Step(`^building fails with "([^"]*)"$`, c.buildingFailsWith)
	sc.Step(`^the tree has (\d+) blocks$`, c.theTreeHasBlocks)
	sc.Step(`^block "([^"]*)" has severity "([^"]*)"$`, c.blockHasSeverity)
}
