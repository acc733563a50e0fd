package dom

import (
	"reflect"
	"testing"

	"github.com/matzehuels/treeview/pkg/render"
)

func TestCreateChild(t *testing.T) {
	root := NewRoot()
	child := root.CreateChild("span", "a  b", "hello").(*Element)

	if child.Parent() != root {
		t.Error("child not attached to root")
	}
	if got := child.Classes(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Classes = %v, want [a b]", got)
	}
	if child.Text() != "hello" || child.Tag() != "span" {
		t.Errorf("child = <%s>%s", child.Tag(), child.Text())
	}
}

func TestAppendChildMoves(t *testing.T) {
	a, b := NewRoot(), NewRoot()
	c := a.CreateChild("p", "", "")

	b.AppendChild(c)

	if len(a.Children()) != 0 {
		t.Error("AppendChild should detach from the old parent")
	}
	if len(b.Children()) != 1 || c.(*Element).Parent() != b {
		t.Error("AppendChild should attach to the new parent")
	}
}

func TestAppendChildForeignElement(t *testing.T) {
	root := NewRoot()
	root.AppendChild(nil)
	if len(root.Children()) != 0 {
		t.Error("nil child should be ignored")
	}
}

func TestRemove(t *testing.T) {
	root := NewRoot()
	first := root.CreateChild("p", "", "1")
	root.CreateChild("p", "", "2")

	first.Remove()
	first.Remove()

	if got := root.TextContent(); got != "2" {
		t.Errorf("TextContent = %q, want 2", got)
	}
}

func TestToggleClass(t *testing.T) {
	el := NewElement("div", "x", "")

	el.ToggleClass("y", true)
	el.ToggleClass("y", true)
	if got := el.Classes(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Classes = %v, want [x y]", got)
	}

	el.ToggleClass("x", false)
	el.ToggleClass("missing", false)
	if el.HasClass("x") || !el.HasClass("y") {
		t.Errorf("Classes = %v, want [y]", el.Classes())
	}
}

func TestAttr(t *testing.T) {
	el := NewRoot()
	el.SetAttr("data-x", "1")
	el.SetAttr("data-x", "2")

	if v, ok := el.Attr("data-x"); !ok || v != "2" {
		t.Errorf("Attr = %q, %v", v, ok)
	}
	if _, ok := el.Attr("missing"); ok {
		t.Error("missing attribute reported present")
	}
}

func TestFind(t *testing.T) {
	root := NewRoot()
	a := root.CreateChild("div", "hit", "a")
	a.CreateChild("div", "hit", "b")
	root.CreateChild("div", "miss", "c")
	root.ToggleClass("hit", true)

	var got []string
	for _, el := range root.Find("hit") {
		got = append(got, el.Text())
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Find = %v, want [a b] (root excluded)", got)
	}
}

func TestClickBubbles(t *testing.T) {
	root := NewRoot()
	mid := root.CreateChild("div", "", "")
	leaf := mid.CreateChild("div", "", "").(*Element)

	var order []string
	root.OnClick(func(render.Event) { order = append(order, "root") })
	mid.OnClick(func(render.Event) { order = append(order, "mid") })

	if !leaf.Click() {
		t.Fatal("Click reported no handlers")
	}
	if !reflect.DeepEqual(order, []string{"mid", "root"}) {
		t.Errorf("order = %v, want [mid root]", order)
	}
}

func TestClickStopPropagation(t *testing.T) {
	root := NewRoot()
	mid := root.CreateChild("div", "", "")
	leaf := mid.CreateChild("div", "", "").(*Element)

	rootCalls := 0
	root.OnClick(func(render.Event) { rootCalls++ })
	mid.OnClick(func(e render.Event) {
		e.StopPropagation()
		mid.Remove()
	})

	leaf.Click()
	if rootCalls != 0 {
		t.Error("StopPropagation did not stop the event")
	}
	if mid.(*Element).Parent() != nil {
		t.Error("handler should be able to detach its element")
	}
}

func TestGlyphs(t *testing.T) {
	var icons render.Icons = Glyphs{}

	el := icons.Icon(render.IconFile)
	if el == nil {
		t.Fatal("file icon missing")
	}
	if g, _ := Glyph(render.IconFile); el.(*Element).Text() != g {
		t.Errorf("glyph text = %q", el.(*Element).Text())
	}
	if v, _ := el.(*Element).Attr("data-icon"); v != render.IconFile {
		t.Errorf("data-icon = %q", v)
	}

	if icons.Icon("no-such-icon") != nil {
		t.Error("unknown icon should be nil")
	}
}
