package render

import (
	"strconv"
	"strings"

	"github.com/matzehuels/treeview/pkg/tree"
)

// Option configures Render.
type Option func(*Outline)

// WithDefaultCollapsed sets the initial state of nodes that carry no
// explicit collapsed hint. The default is expanded.
func WithDefaultCollapsed(collapsed bool) Option {
	return func(o *Outline) { o.defaultCollapsed = collapsed }
}

// Outline is the presentation state of a rendered forest: one
// expanded/collapsed flag per node with children.
//
// An Outline is not safe for concurrent use; it lives on the host's event loop.
type Outline struct {
	forest           []*tree.Node
	icons            Icons
	defaultCollapsed bool

	items map[string]*item
	order []string
}

// item is the rendered state of one collapsible node.
type item struct {
	el        Element
	caret     Element
	children  Element
	collapsed bool
}

// Row is one visible line of the outline, as a terminal host draws it.
type Row struct {
	ID          string
	Node        *tree.Node
	Depth       int
	Collapsible bool
	Collapsed   bool
}

// Render materializes forest under root and wires click handlers that
// toggle each node with children. icons may be nil, in which case no glyphs
// are drawn.
func Render(root Element, icons Icons, forest []*tree.Node, opts ...Option) *Outline {
	o := &Outline{
		forest: forest,
		icons:  icons,
		items:  make(map[string]*item),
	}
	for _, opt := range opts {
		opt(o)
	}

	wrapper := root.CreateChild("div", ClassContainer, "")
	container := wrapper.CreateChild("div", "", "")
	container.CreateChild("div", "", "") // spacer kept for theme compatibility

	for i, n := range forest {
		o.renderItem(container, n, strconv.Itoa(i))
	}
	return o
}

func (o *Outline) renderItem(parent Element, n *tree.Node, id string) {
	kind := "file"
	if n.IsDir() {
		kind = "folder"
	}

	el := parent.CreateChild("div", "tree-view--item tree-item nav-"+kind, "")
	if a, ok := el.(Attributer); ok {
		a.SetAttr(AttrID, id)
	}

	rowClasses := "tree-view--item-self tree-item-self nav-" + kind + "-title is-clickable"
	if n.HasChildren() {
		rowClasses += " mod-collapsible"
	}
	row := el.CreateChild("div", rowClasses, "")

	var caret Element
	if n.HasChildren() {
		caret = row.CreateChild("div", "tree-item-icon collapse-icon", "")
		if chevron := o.icon(IconChevron, "right-triangle"); chevron != nil {
			caret.AppendChild(chevron)
		}
	}

	o.renderIcons(row, n)
	row.CreateChild("div", "tree-item-inner nav-"+kind+"-title-content", n.Name)

	if !n.HasChildren() {
		return
	}

	children := el.CreateChild("div", "tree-item-children nav-folder-children", "")
	children.CreateChild("div", "", "")

	it := &item{el: el, caret: caret, children: children}
	o.items[id] = it
	o.order = append(o.order, id)

	for i, child := range n.Children {
		o.renderItem(children, child, id+"/"+strconv.Itoa(i))
	}

	row.OnClick(func(e Event) {
		e.StopPropagation()
		o.Toggle(id)
	})

	if n.Meta.InitiallyCollapsed(o.defaultCollapsed) {
		o.setCollapsed(it, true)
	}
}

// renderIcons draws the type icons of n into row. Directories get an open and
// a closed folder glyph; stylesheets show one of them based on is-collapsed.
// A Meta.Icon override the host knows replaces both.
func (o *Outline) renderIcons(row Element, n *tree.Node) {
	if n.Meta.Icon != "" {
		if custom := o.icon(n.Meta.Icon, "tree-view--icon", "tree-view--custom-icon"); custom != nil {
			row.AppendChild(custom)
			return
		}
	}

	if n.IsDir() {
		closed := o.icon(IconFolderClosed, "tree-view--icon", "tree-view--folder-icon", "tree-view--folder-icon--closed")
		open := o.icon(IconFolderOpen, "tree-view--icon", "tree-view--folder-icon", "tree-view--folder-icon--open")
		for _, ic := range []Element{closed, open} {
			if ic != nil {
				row.AppendChild(ic)
			}
		}
		return
	}

	if file := o.icon(IconFile, "tree-view--icon", "tree-view--file-icon"); file != nil {
		row.AppendChild(file)
	}
}

func (o *Outline) icon(name string, classes ...string) Element {
	if o.icons == nil {
		return nil
	}
	el := o.icons.Icon(name)
	if el == nil {
		return nil
	}
	for _, c := range classes {
		el.ToggleClass(c, true)
	}
	return el
}

func (o *Outline) setCollapsed(it *item, collapsed bool) {
	if it.collapsed == collapsed {
		return
	}
	if collapsed {
		it.children.Remove()
	} else {
		it.el.AppendChild(it.children)
	}
	it.el.ToggleClass(ClassCollapsed, collapsed)
	it.caret.ToggleClass(ClassCollapsed, collapsed)
	it.collapsed = collapsed
}

// Toggle flips the node at id and returns its new collapsed state. Unknown
// ids and nodes without children are left alone and report false.
func (o *Outline) Toggle(id string) bool {
	it, ok := o.items[id]
	if !ok {
		return false
	}
	o.setCollapsed(it, !it.collapsed)
	return it.collapsed
}

// SetCollapsed forces the node at id into the given state. It reports
// whether id names a collapsible node.
func (o *Outline) SetCollapsed(id string, collapsed bool) bool {
	it, ok := o.items[id]
	if !ok {
		return false
	}
	o.setCollapsed(it, collapsed)
	return true
}

// Collapsed reports whether the node at id is currently collapsed.
func (o *Outline) Collapsed(id string) bool {
	it, ok := o.items[id]
	return ok && it.collapsed
}

// ExpandAll expands every collapsible node.
func (o *Outline) ExpandAll() {
	for _, id := range o.order {
		o.setCollapsed(o.items[id], false)
	}
}

// CollapseAll collapses every collapsible node.
func (o *Outline) CollapseAll() {
	for _, id := range o.order {
		o.setCollapsed(o.items[id], true)
	}
}

// IDs returns the ids of all collapsible nodes in document order.
func (o *Outline) IDs() []string {
	return append([]string(nil), o.order...)
}

// Node returns the node at id. Unlike the collapse methods it accepts the ids
// of leaves too.
func (o *Outline) Node(id string) (*tree.Node, bool) {
	nodes := o.forest
	var n *tree.Node
	for _, part := range strings.Split(id, "/") {
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 || i >= len(nodes) {
			return nil, false
		}
		n = nodes[i]
		nodes = n.Children
	}
	return n, n != nil
}

// Rows returns the nodes currently visible, in document order. Children of
// collapsed nodes are skipped.
func (o *Outline) Rows() []Row {
	var rows []Row
	var walk func(nodes []*tree.Node, prefix string, depth int)
	walk = func(nodes []*tree.Node, prefix string, depth int) {
		for i, n := range nodes {
			id := strconv.Itoa(i)
			if prefix != "" {
				id = prefix + "/" + id
			}
			collapsed := o.Collapsed(id)
			rows = append(rows, Row{
				ID:          id,
				Node:        n,
				Depth:       depth,
				Collapsible: n.HasChildren(),
				Collapsed:   collapsed,
			})
			if !collapsed {
				walk(n.Children, id, depth+1)
			}
		}
	}
	walk(o.forest, "", 0)
	return rows
}
