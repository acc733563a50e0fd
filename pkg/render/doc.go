// Package render turns a parsed forest into a collapsible outline.
//
// # Overview
//
// The renderer does not know about HTML, terminals or any other host. It
// builds the outline through the small capability interfaces [Element],
// [Event] and [Icons], which a host implements:
//
//   - In-memory DOM with HTML serialization (in [dom] subpackage)
//   - Node-link diagrams of the same forest (in [nodelink] subpackage)
//
// # Outline Structure
//
// Each node becomes an item containing a clickable row and, for nodes with
// children, a children container. The class names match the file explorer of
// Obsidian so exported pages pick up existing themes:
//
//	div.nav-files-container.tree-view--container
//	  div
//	    div.tree-view--item.tree-item.nav-folder
//	      div.tree-view--item-self.tree-item-self.nav-folder-title   (row)
//	        div.tree-item-icon.collapse-icon                          (caret)
//	        span.tree-view--folder-icon--closed                       (icons)
//	        span.tree-view--folder-icon--open
//	        div.tree-item-inner.nav-folder-title-content              (label)
//	      div.tree-item-children.nav-folder-children
//
// # Collapse State
//
// [Render] returns an [Outline] holding one expanded/collapsed flag per node
// with children, keyed by position ("0", "0/1", "0/1/2"). Clicking a row
// toggles its node: collapsing detaches the children container and sets the
// "is-collapsed" class on the item and caret, expanding re-attaches it. The
// parsed forest is never modified.
//
//	root := dom.NewRoot()
//	outline := render.Render(root, dom.Glyphs{}, forest)
//	outline.Toggle("0/1")
//
// A block that fails to parse is shown with [RenderError] instead.
//
// [dom]: github.com/matzehuels/treeview/pkg/render/dom
// [nodelink]: github.com/matzehuels/treeview/pkg/render/nodelink
package render
