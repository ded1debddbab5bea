package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drew/logfold/internal/blocktree"
	"github.com/drew/logfold/internal/model"
)

// sharedContext holds ALL state for a scenario - used by all step definitions
type sharedContext struct {
	doc      model.Document
	tree     *blocktree.Tree
	buildErr error

	// Fold state captured before the last action
	before map[string]bool
	// Blocks opened by the last reveal, bottom-up
	revealed []*blocktree.Block
}

func (c *sharedContext) reset() {
	*c = sharedContext{}
}

// build constructs the tree from the current document
func (c *sharedContext) build() {
	c.tree, c.buildErr = blocktree.Build(c.doc)
	c.before = nil
	c.revealed = nil
}

func (c *sharedContext) requireTree() error {
	if c.tree == nil {
		if c.buildErr != nil {
			return fmt.Errorf("no tree, build failed: %w", c.buildErr)
		}
		return fmt.Errorf("no tree was built")
	}
	return nil
}

func (c *sharedContext) lookup(id string) (*blocktree.Block, error) {
	if err := c.requireTree(); err != nil {
		return nil, err
	}
	b, ok := c.tree.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("block %q not found", id)
	}
	return b, nil
}

// remember snapshots the fold state before an action
func (c *sharedContext) remember() error {
	if err := c.requireTree(); err != nil {
		return err
	}
	c.before = c.tree.Snapshot()
	return nil
}

// changedSince lists the ids whose fold state differs from the last snapshot
func (c *sharedContext) changedSince() ([]string, error) {
	if c.before == nil {
		return nil, fmt.Errorf("no action was taken")
	}
	var changed []string
	for id, expanded := range c.tree.Snapshot() {
		if c.before[id] != expanded {
			changed = append(changed, id)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

// idList parses "A, B, C" into ids; an empty string is an empty list
func idList(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
