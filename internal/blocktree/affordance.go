package blocktree

// Glyph is the fold indicator shown in a block header
type Glyph int

const (
	// GlyphNone marks blocks with nothing to fold
	GlyphNone Glyph = iota
	// GlyphExpand is shown while the block is collapsed
	GlyphExpand
	// GlyphContract is shown while the block is expanded
	GlyphContract
)

func (g Glyph) String() string {
	switch g {
	case GlyphExpand:
		return "expand"
	case GlyphContract:
		return "contract"
	}
	return "none"
}

// Affordance maps a fold state to the single glyph the header shows
func Affordance(expanded bool) Glyph {
	if expanded {
		return GlyphContract
	}
	return GlyphExpand
}

// Affordance returns the glyph for the block's current state
func (b *Block) Affordance() Glyph {
	if !b.Foldable() {
		return GlyphNone
	}
	return Affordance(b.expanded)
}

// GlyphSet holds the text drawn for each glyph
type GlyphSet struct {
	Expand   string
	Contract string
}

// DefaultGlyphs are used when no configuration overrides them
var DefaultGlyphs = GlyphSet{Expand: "[+]", Contract: "[-]"}

// Render returns the text for g, or an empty string for GlyphNone
func (s GlyphSet) Render(g Glyph) string {
	switch g {
	case GlyphExpand:
		return s.Expand
	case GlyphContract:
		return s.Contract
	}
	return ""
}
