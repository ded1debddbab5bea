package features

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/drew/logfold/internal/blocktree"
)

type foldContext struct {
	*sharedContext
}

func (c *foldContext) blockIs(id, state string) error {
	b, err := c.lookup(id)
	if err != nil {
		return err
	}
	want := state == "expanded"
	if b.Expanded() != want {
		return fmt.Errorf("block %s expanded = %v, want %s", id, b.Expanded(), state)
	}
	return nil
}

func (c *foldContext) blockShowsGlyph(id, glyph string) error {
	b, err := c.lookup(id)
	if err != nil {
		return err
	}
	if got := blocktree.DefaultGlyphs.Render(b.Affordance()); got != glyph {
		return fmt.Errorf("block %s shows %q, want %q", id, got, glyph)
	}
	return nil
}

func (c *foldContext) blockShowsNoGlyph(id string) error {
	b, err := c.lookup(id)
	if err != nil {
		return err
	}
	if b.Affordance() != blocktree.GlyphNone {
		return fmt.Errorf("block %s shows the %s glyph", id, b.Affordance())
	}
	return nil
}

func (c *foldContext) theVisibleBlocksAre(list string) error {
	if err := c.requireTree(); err != nil {
		return err
	}
	var got []string
	for _, b := range c.tree.Visible() {
		got = append(got, b.ID())
	}
	want := idList(list)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("visible blocks %v, want %v", got, want)
	}
	return nil
}

func (c *foldContext) iClickTheHeaderOf(id string) error {
	if err := c.remember(); err != nil {
		return err
	}
	c.tree.Dispatch(blocktree.Event{Kind: blocktree.EventHeaderClick, Target: id})
	return nil
}

func (c *foldContext) onlyBlockChanged(id string) error {
	changed, err := c.changedSince()
	if err != nil {
		return err
	}
	if len(changed) != 1 || changed[0] != id {
		return fmt.Errorf("changed blocks %v, want only %s", changed, id)
	}
	return nil
}

func (c *foldContext) noBlockChanged() error {
	changed, err := c.changedSince()
	if err != nil {
		return err
	}
	if len(changed) != 0 {
		return fmt.Errorf("blocks changed: %v", changed)
	}
	return nil
}

// InitializeFoldScenario registers fold state and toggle steps
func InitializeFoldScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &foldContext{sharedContext: shared}

	sc.Step(`^block "([^"]*)" is (expanded|collapsed)$`, c.blockIs)
	sc.Step(`^block "([^"]*)" shows the "([^"]*)" glyph$`, c.blockShowsGlyph)
	sc.Step(`^block "([^"]*)" shows no glyph$`, c.blockShowsNoGlyph)
	sc.Step(`^the visible blocks are "([^"]*)"$`, c.theVisibleBlocksAre)
	sc.Step(`^I click the header of "([^"]*)"$`, c.iClickTheHeaderOf)
	sc.Step(`^only block "([^"]*)" changed$`, c.onlyBlockChanged)
	sc.Step(`^no block changed$`, c.noBlockChanged)
}
