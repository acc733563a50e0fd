package dom

import (
	"github.com/matzehuels/treeview/pkg/render"
)

var glyphs = map[string]string{
	render.IconChevron:      "▸",
	render.IconFolderOpen:   "📂",
	render.IconFolderClosed: "📁",
	render.IconFile:         "📄",

	"star":     "★",
	"heart":    "♥",
	"check":    "✓",
	"cross":    "✗",
	"warning":  "⚠",
	"info":     "ℹ",
	"lock":     "🔒",
	"gear":     "⚙",
	"book":     "📖",
	"image":    "🖼",
	"music":    "🎵",
	"video":    "🎬",
	"archive":  "📦",
	"database": "🗄",
	"code":     "⌨",
	"link":     "🔗",
	"trash":    "🗑",
	"home":     "⌂",
	"flag":     "⚑",
	"bolt":     "⚡",
}

// Glyph returns the text glyph registered for an icon name.
func Glyph(name string) (string, bool) {
	g, ok := glyphs[name]
	return g, ok
}

// Glyphs implements render.Icons with Unicode text glyphs. Icon elements are
// spans carrying the "tree-view--glyph" class and a data-icon attribute.
type Glyphs struct{}

var _ render.Icons = Glyphs{}

// Icon implements render.Icons.
func (Glyphs) Icon(name string) render.Element {
	g, ok := glyphs[name]
	if !ok {
		return nil
	}
	el := NewElement("span", "tree-view--glyph", g)
	el.SetAttr("data-icon", name)
	return el
}
