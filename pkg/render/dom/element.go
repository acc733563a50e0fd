package dom

import (
	"slices"
	"strings"

	"github.com/matzehuels/treeview/pkg/render"
)

type attr struct {
	key, value string
}

// Element is a node of the in-memory document.
type Element struct {
	tag      string
	classes  []string
	attrs    []attr
	text     string
	parent   *Element
	children []*Element
	handlers []func(render.Event)
}

var (
	_ render.Element    = (*Element)(nil)
	_ render.Attributer = (*Element)(nil)
)

// NewElement returns a detached element.
func NewElement(tag, classes, text string) *Element {
	return &Element{tag: tag, classes: strings.Fields(classes), text: text}
}

// NewRoot returns a detached div to render into.
func NewRoot() *Element {
	return NewElement("div", "", "")
}

// CreateChild implements render.Element.
func (e *Element) CreateChild(tag, classes, text string) render.Element {
	child := NewElement(tag, classes, text)
	e.appendChild(child)
	return child
}

// AppendChild implements render.Element. Elements from other implementations
// are ignored.
func (e *Element) AppendChild(child render.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	e.appendChild(c)
}

func (e *Element) appendChild(c *Element) {
	c.Remove()
	c.parent = e
	e.children = append(e.children, c)
}

// Remove implements render.Element.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	p := e.parent
	if i := slices.Index(p.children, e); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	e.parent = nil
}

// ToggleClass implements render.Element.
func (e *Element) ToggleClass(class string, on bool) {
	i := slices.Index(e.classes, class)
	switch {
	case on && i < 0:
		e.classes = append(e.classes, class)
	case !on && i >= 0:
		e.classes = slices.Delete(e.classes, i, i+1)
	}
}

// HasClass implements render.Element.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// OnClick implements render.Element.
func (e *Element) OnClick(fn func(render.Event)) {
	e.handlers = append(e.handlers, fn)
}

// SetAttr sets an attribute, replacing an earlier value for the same key.
func (e *Element) SetAttr(key, value string) {
	for i := range e.attrs {
		if e.attrs[i].key == key {
			e.attrs[i].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attr{key, value})
}

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.attrs {
		if a.key == key {
			return a.value, true
		}
	}
	return "", false
}

// ===== Navigation =====

func (e *Element) Tag() string  { return e.tag }
func (e *Element) Text() string { return e.text }

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// Parent returns the parent element, or nil for a detached element.
func (e *Element) Parent() *Element { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Walk visits e and its attached descendants depth-first in document order.
// Returning false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Find returns the attached descendants of e carrying class, in document order.
func (e *Element) Find(class string) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.Walk(func(n *Element) bool {
			if n.HasClass(class) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// FindAttr returns the first attached descendant whose attribute key equals value.
func (e *Element) FindAttr(key, value string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if v, ok := n.Attr(key); ok && v == value && n != e {
			found = n
			return false
		}
		return true
	})
	return found
}

// TextContent returns the concatenated text of e and its attached descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.Walk(func(n *Element) bool {
		b.WriteString(n.text)
		return true
	})
	return b.String()
}

// ===== Events =====

type event struct {
	stopped bool
}

func (ev *event) StopPropagation() { ev.stopped = true }

// Click dispatches a click on e. Handlers run from e up through its
// ancestors until one of them stops propagation. The path is fixed before the
// first handler runs, so handlers may detach elements. It reports whether any
// handler ran.
func (e *Element) Click() bool {
	var path []*Element
	for n := e; n != nil; n = n.parent {
		path = append(path, n)
	}

	ev := &event{}
	ran := false
	for _, n := range path {
		for _, fn := range n.handlers {
			fn(ev)
			ran = true
		}
		if ev.stopped {
			break
		}
	}
	return ran
}
