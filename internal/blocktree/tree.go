// Package blocktree holds the foldable block model of a rendered log document.
//
// A Tree is built once from a serialized model.Document. Building indexes every
// block by id, classifies each block by the highest severity it contains and
// assigns the initial fold state. After that only the expanded flags change,
// through Toggle, Reveal and Dispatch. A Tree is not safe for concurrent use;
// it belongs to the goroutine that drives the document.
package blocktree

import (
	"errors"
	"fmt"

	"github.com/drew/logfold/internal/model"
)

// Structural errors reported by Build
var (
	ErrEmptyID           = errors.New("block has no id")
	ErrDuplicateID       = errors.New("duplicate block id")
	ErrUnknownKind       = errors.New("unknown block kind")
	ErrDirectoryMessages = errors.New("directory block carries messages")
	ErrUnknownChild      = errors.New("child references unknown block")
	ErrMultipleParents   = errors.New("block has more than one parent")
	ErrCycle             = errors.New("block tree contains a cycle")
	ErrNotRoot           = errors.New("listed root has a parent")
	ErrNoRoots           = errors.New("document has no top-level block")
)

// Block is a node of the tree
type Block struct {
	id       string
	kind     model.Kind
	title    string
	messages []model.Message
	children []*Block
	parent   *Block
	depth    int

	severity model.Severity
	expanded bool
}

// ID returns the block identifier used as navigation target
func (b *Block) ID() string { return b.id }

// Kind returns the block kind
func (b *Block) Kind() model.Kind { return b.kind }

// Title returns the header text, falling back to the id
func (b *Block) Title() string {
	if b.title != "" {
		return b.title
	}
	return b.id
}

// Messages returns the messages owned directly by the block
func (b *Block) Messages() []model.Message { return b.messages }

// Children returns the child blocks in display order
func (b *Block) Children() []*Block { return b.children }

// Parent returns the enclosing block, or nil for a top-level block
func (b *Block) Parent() *Block { return b.parent }

// IsTopLevel reports whether the block has no parent
func (b *Block) IsTopLevel() bool { return b.parent == nil }

// Depth is 0 for top-level blocks
func (b *Block) Depth() int { return b.depth }

// Severity returns the effective severity computed when the tree was built
func (b *Block) Severity() model.Severity { return b.severity }

// Expanded reports whether the block content is visible
func (b *Block) Expanded() bool { return b.expanded }

// Foldable reports whether the block has any content to hide
func (b *Block) Foldable() bool {
	return len(b.children) > 0 || len(b.messages) > 0
}

// Tree is a document of nested blocks with an id index
type Tree struct {
	title string
	roots []*Block
	index map[string]*Block
}

// Build validates a serialized document and constructs its tree.
// The severity classification and the fold policy run here, exactly once.
func Build(doc model.Document) (*Tree, error) {
	t := &Tree{
		title: doc.Title,
		index: make(map[string]*Block, len(doc.Blocks)),
	}

	declared := make([]*Block, 0, len(doc.Blocks))
	for _, rec := range doc.Blocks {
		if rec.ID == "" {
			return nil, ErrEmptyID
		}
		if _, exists := t.index[rec.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		if !rec.Kind.Valid() {
			return nil, fmt.Errorf("%w %q on block %s", ErrUnknownKind, rec.Kind, rec.ID)
		}
		if rec.Kind == model.KindDirectory && len(rec.Messages) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryMessages, rec.ID)
		}
		b := &Block{
			id:       rec.ID,
			kind:     rec.Kind,
			title:    rec.Title,
			messages: append([]model.Message(nil), rec.Messages...),
		}
		t.index[rec.ID] = b
		declared = append(declared, b)
	}

	for i, rec := range doc.Blocks {
		parent := declared[i]
		for _, childID := range rec.Children {
			child, ok := t.index[childID]
			if !ok {
				return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownChild, rec.ID, childID)
			}
			if child == parent {
				return nil, fmt.Errorf("%w: %s contains itself", ErrCycle, rec.ID)
			}
			if child.parent != nil {
				return nil, fmt.Errorf("%w: %s (under %s and %s)", ErrMultipleParents, childID, child.parent.id, rec.ID)
			}
			child.parent = parent
			parent.children = append(parent.children, child)
		}
	}

	roots, err := resolveRoots(doc.Roots, declared, t.index)
	if err != nil {
		return nil, err
	}
	t.roots = roots

	// With single parents enforced, any block not reachable from a root sits on a cycle.
	visited := 0
	t.Walk(func(b *Block) {
		if b.parent != nil {
			b.depth = b.parent.depth + 1
		}
		visited++
	})
	if visited != len(declared) {
		for _, b := range declared {
			if !t.reachable(b) {
				return nil, fmt.Errorf("%w: %s", ErrCycle, b.id)
			}
		}
	}

	classes := Classify(t.roots)
	for b, expanded := range FoldPolicy(t, classes) {
		b.severity = classes[b]
		b.expanded = expanded
	}

	return t, nil
}

func resolveRoots(listed []string, declared []*Block, index map[string]*Block) ([]*Block, error) {
	var roots []*Block
	seen := make(map[*Block]bool)
	for _, id := range listed {
		b, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: root %s", ErrUnknownChild, id)
		}
		if b.parent != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotRoot, id)
		}
		if seen[b] {
			continue
		}
		seen[b] = true
		roots = append(roots, b)
	}
	// Parentless blocks missing from the explicit list still belong to the page.
	for _, b := range declared {
		if b.parent == nil && !seen[b] {
			roots = append(roots, b)
		}
	}
	if len(roots) == 0 {
		if len(declared) > 0 {
			return nil, fmt.Errorf("%w: no block is free of a parent", ErrCycle)
		}
		return nil, ErrNoRoots
	}
	return roots, nil
}

func (t *Tree) reachable(b *Block) bool {
	for n, steps := b, 0; n != nil; n, steps = n.parent, steps+1 {
		if n.parent == nil {
			return true
		}
		if steps > len(t.index) {
			return false
		}
	}
	return false
}

// Title returns the document title
func (t *Tree) Title() string { return t.title }

// Roots returns the top-level blocks in display order
func (t *Tree) Roots() []*Block { return t.roots }

// Len returns the number of blocks in the tree
func (t *Tree) Len() int { return len(t.index) }

// Lookup finds a block by id. A missing id is not an error.
func (t *Tree) Lookup(id string) (*Block, bool) {
	b, ok := t.index[id]
	return b, ok
}

// Walk visits every block depth-first in display order
func (t *Tree) Walk(fn func(b *Block)) {
	var visit func(b *Block)
	visit = func(b *Block) {
		fn(b)
		for _, c := range b.children {
			visit(c)
		}
	}
	for _, r := range t.roots {
		visit(r)
	}
}

// Ancestors returns the chain from the top-level block down to b's parent
func (t *Tree) Ancestors(b *Block) []*Block {
	var chain []*Block
	for n := b.parent; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Visible returns the blocks whose header is on screen: top-level blocks and
// every block whose ancestors are all expanded.
func (t *Tree) Visible() []*Block {
	var out []*Block
	var visit func(b *Block)
	visit = func(b *Block) {
		out = append(out, b)
		if !b.expanded {
			return
		}
		for _, c := range b.children {
			visit(c)
		}
	}
	for _, r := range t.roots {
		visit(r)
	}
	return out
}
