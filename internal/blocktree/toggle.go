package blocktree

// Toggle flips the fold state of one block and reports whether it did.
// Unknown ids and blocks without content are left alone. No other block is
// touched, so nested blocks keep their own state across collapse and expand
// of an ancestor.
func (t *Tree) Toggle(id string) bool {
	b, ok := t.Lookup(id)
	if !ok || !b.Foldable() {
		return false
	}
	b.expanded = !b.expanded
	return true
}
