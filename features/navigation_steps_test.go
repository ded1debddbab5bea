package features

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/drew/logfold/internal/blocktree"
)

type navigationContext struct {
	*sharedContext
}

func (c *navigationContext) iReveal(id string) error {
	if err := c.remember(); err != nil {
		return err
	}
	c.revealed, _ = c.tree.Reveal(id)
	return nil
}

func (c *navigationContext) iFollowTheLink(href string) error {
	if err := c.remember(); err != nil {
		return err
	}
	c.tree.Dispatch(blocktree.Event{Kind: blocktree.EventFollowLink, Target: href})
	return nil
}

func (c *navigationContext) theRevealOpened(list string) error {
	var got []string
	for _, b := range c.revealed {
		got = append(got, b.ID())
	}
	want := idList(list)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("reveal opened %v, want %v", got, want)
	}
	return nil
}

// InitializeNavigationScenario registers reveal and link steps
func InitializeNavigationScenario(sc *godog.ScenarioContext, shared *sharedContext) {
	c := &navigationContext{sharedContext: shared}

	sc.Step(`^I reveal "([^"]*)"$`, c.iReveal)
	sc.Step(`^I follow the link "([^"]*)"$`, c.iFollowTheLink)
	sc.Step(`^the reveal opened "([^"]*)"$`, c.theRevealOpened)
}
