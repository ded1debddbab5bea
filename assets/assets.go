// Package assets embeds the script and stylesheet shipped inside every rendered page.
package assets

import _ "embed"

// FoldScript wires header clicks and internal links of a rendered page to the
// fold state carried in its data-expanded attributes.
//
//go:embed fold.js
var FoldScript string

// FoldStyle hides the content of collapsed blocks
//
//go:embed fold.css
var FoldStyle string
