package blocktree

import (
	"net/url"
	"path"
)

// EventKind identifies the user action behind an Event
type EventKind int

const (
	// EventHeaderClick is a click on a block header; Target is the block id
	EventHeaderClick EventKind = iota
	// EventFollowLink is a followed link; Target is the link href
	EventFollowLink
)

// Event is a user action routed to the tree by the host surface
type Event struct {
	Kind   EventKind
	Target string
}

// Dispatch is the single listener for all blocks of a document. Header clicks
// toggle the clicked block; internal links reveal their target before the
// host scrolls to it. It reports whether any fold state changed.
// Dispatch never fails: unknown targets and external links are ignored.
func (t *Tree) Dispatch(ev Event) bool {
	switch ev.Kind {
	case EventHeaderClick:
		return t.Toggle(ev.Target)
	case EventFollowLink:
		id, ok := AnchorTarget(ev.Target, "")
		if !ok {
			return false
		}
		changed, _ := t.Reveal(id)
		return len(changed) > 0
	}
	return false
}

// AnchorTarget extracts the block id from an internal link. Links of the form
// "#id" always qualify; "page.html#id" qualifies when page matches the base
// name of the current page. Links with a scheme or host are external.
func AnchorTarget(href, page string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" || u.Fragment == "" {
		return "", false
	}
	if u.Path != "" && path.Base(u.Path) != page {
		return "", false
	}
	return u.Fragment, true
}
