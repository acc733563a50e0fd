// Package dom is a small in-memory document tree implementing the
// [render.Element] and [render.Icons] capabilities.
//
// It is the host used by everything outside a browser: the HTML exporter,
// the HTTP API and tests. Clicks are simulated with [Element.Click], which
// bubbles from the target to the root and honors StopPropagation.
//
//	root := dom.NewRoot()
//	outline := render.Render(root, dom.Glyphs{}, forest)
//	row := root.Find(render.ClassRow)[0]
//	row.Click()                 // collapses the first directory
//	page, _ := dom.Page("tree", root, outline)
//
// [render.Element]: github.com/matzehuels/treeview/pkg/render#Element
// [render.Icons]: github.com/matzehuels/treeview/pkg/render#Icons
package dom
