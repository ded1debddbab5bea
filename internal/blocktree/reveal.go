package blocktree

// Reveal opens the target block and every ancestor up to the top level so the
// target is visible. It returns the blocks whose state changed, bottom-up, and
// whether the id resolved. Descendants of the target keep their state.
// An unknown id changes nothing.
func (t *Tree) Reveal(id string) ([]*Block, bool) {
	target, ok := t.Lookup(id)
	if !ok {
		return nil, false
	}
	var changed []*Block
	for b := target; b != nil; b = b.parent {
		if !b.expanded {
			b.expanded = true
			changed = append(changed, b)
		}
	}
	return changed, true
}
