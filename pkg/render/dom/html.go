package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/treeview/pkg/render"
)

// Node converts the element and its attached descendants to an html.Node.
func (e *Element) Node() *html.Node {
	n := newNode(e.tag)
	if len(e.classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(e.classes, " ")})
	}
	for _, a := range e.attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.key, Val: a.value})
	}
	if e.text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.text})
	}
	for _, c := range e.children {
		n.AppendChild(c.Node())
	}
	return n
}

// HTML returns the markup of the element and its attached descendants.
func (e *Element) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.Node())
	return buf.String()
}

func newNode(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Snapshot converts a rendered outline to static markup. Collapsed nodes keep
// their children in the output and are marked with "is-collapsed", so the
// page stylesheet hides them and the page script can expand them again. The
// outline ends in the state it started in.
func Snapshot(root *Element, outline *render.Outline) *html.Node {
	if outline == nil {
		return root.Node()
	}

	var collapsed []string
	for _, id := range outline.IDs() {
		if outline.Collapsed(id) {
			collapsed = append(collapsed, id)
		}
	}

	outline.ExpandAll()
	marked := make([]*Element, 0, len(collapsed)*2)
	for _, id := range collapsed {
		item := root.FindAttr(render.AttrID, id)
		if item == nil {
			continue
		}
		marked = append(marked, item)
		if carets := item.children[0].Find(render.ClassCaret); len(carets) > 0 {
			marked = append(marked, carets[0])
		}
	}
	for _, el := range marked {
		el.ToggleClass(render.ClassCollapsed, true)
	}

	n := root.Node()

	for _, id := range collapsed {
		outline.SetCollapsed(id, true)
	}
	return n
}

// Section is one block of a page: a rendered outline, or an error block
// rendered with render.RenderError (Outline nil).
type Section struct {
	Heading string
	Root    *Element
	Outline *render.Outline
}

// WritePage writes a standalone HTML document holding the sections, with the
// stylesheet and click handling needed to browse the outlines.
func WritePage(w io.Writer, title string, sections ...Section) error {
	head := newNode("head")
	head.AppendChild(newNode("meta", html.Attribute{Key: "charset", Val: "utf-8"}))
	titleNode := newNode("title")
	titleNode.AppendChild(textNode(title))
	head.AppendChild(titleNode)
	style := newNode("style")
	style.AppendChild(textNode(pageCSS))
	head.AppendChild(style)

	body := newNode("body")
	for _, s := range sections {
		sec := newNode("section", html.Attribute{Key: "class", Val: "tree-view--block"})
		if s.Heading != "" {
			h := newNode("h2")
			h.AppendChild(textNode(s.Heading))
			sec.AppendChild(h)
		}
		if s.Root != nil {
			sec.AppendChild(Snapshot(s.Root, s.Outline))
		}
		body.AppendChild(sec)
	}
	script := newNode("script")
	script.AppendChild(textNode(pageJS))
	body.AppendChild(script)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := newNode("html", html.Attribute{Key: "lang", Val: "en"})
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	return html.Render(w, doc)
}

// Page is WritePage into a byte slice.
func Page(title string, sections ...Section) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePage(&buf, title, sections...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const pageCSS = `
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; font-size: 14px; margin: 2em; color: #222; }
.tree-view--block { margin-bottom: 2em; }
.tree-item-self { display: flex; align-items: center; gap: .35em; padding: 1px 4px; border-radius: 4px; }
.tree-item-self:not(.mod-collapsible) { padding-left: calc(4px + 1.35em); }
.tree-item-self.mod-collapsible { cursor: pointer; user-select: none; }
.tree-item-self:hover { background: #f0f0f0; }
.tree-item-icon { display: inline-block; width: 1em; text-align: center; transform: rotate(90deg); transition: transform .1s; }
.tree-item-icon.is-collapsed { transform: none; }
.tree-item-children { margin-left: .9em; padding-left: .6em; border-left: 1px solid #ddd; }
.tree-item.is-collapsed > .tree-item-children { display: none; }
.tree-view--folder-icon--closed { display: none; }
.tree-item.is-collapsed > .tree-item-self > .tree-view--folder-icon--open { display: none; }
.tree-item.is-collapsed > .tree-item-self > .tree-view--folder-icon--closed { display: inline; }
.tree-view--error { color: #b00020; background: #fff4f4; padding: .75em; border-radius: 4px; white-space: pre-wrap; }
`

const pageJS = `
document.querySelectorAll('.tree-item-self.mod-collapsible').forEach(function (row) {
  row.addEventListener('click', function (e) {
    e.stopPropagation();
    var item = row.parentElement;
    var collapsed = !item.classList.contains('is-collapsed');
    item.classList.toggle('is-collapsed', collapsed);
    var caret = row.querySelector('.tree-item-icon');
    if (caret) caret.classList.toggle('is-collapsed', collapsed);
  });
});
`
