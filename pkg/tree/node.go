package tree

// Type classifies a node as a file or a directory.
type Type string

const (
	TypeFile      Type = "file"
	TypeDirectory Type = "directory"
)

// Node is a single entry of a parsed forest.
type Node struct {
	// Name is the display label, normally the entry's basename.
	Name string

	// Type is either TypeFile or TypeDirectory. Nodes with children are
	// always directories.
	Type Type

	// Children are kept in input order.
	Children []*Node

	// Meta holds rendering hints.
	Meta Meta
}

// Meta carries auxiliary rendering hints for a node.
type Meta struct {
	// Depth is the number of ancestors the node has in the forest.
	Depth int

	// Collapsed is the initial presentation state. Nil means expanded.
	Collapsed *bool

	// Icon overrides the default type-based icon. Empty means no override.
	Icon string
}

// IsDir reports whether n is a directory.
func (n *Node) IsDir() bool {
	return n.Type == TypeDirectory
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// InitiallyCollapsed reports whether the node should start collapsed.
// When the node has no explicit setting, def is returned.
func (m Meta) InitiallyCollapsed(def bool) bool {
	if m.Collapsed == nil {
		return def
	}
	return *m.Collapsed
}

// Walk visits every node of the forest depth-first in document order.
// Returning false from fn skips the node's children.
func Walk(forest []*Node, fn func(n *Node) bool) {
	for _, n := range forest {
		if fn(n) {
			Walk(n.Children, fn)
		}
	}
}

// Count returns the number of nodes in the forest and how many are directories.
func Count(forest []*Node) (nodes, dirs int) {
	Walk(forest, func(n *Node) bool {
		nodes++
		if n.IsDir() {
			dirs++
		}
		return true
	})
	return nodes, dirs
}

// Equal reports whether two forests are structurally identical: same names,
// types, metadata and children in the same order.
func Equal(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}

func (n *Node) equal(o *Node) bool {
	if n.Name != o.Name || n.Type != o.Type {
		return false
	}
	if n.Meta.Depth != o.Meta.Depth || n.Meta.Icon != o.Meta.Icon {
		return false
	}
	if (n.Meta.Collapsed == nil) != (o.Meta.Collapsed == nil) {
		return false
	}
	if n.Meta.Collapsed != nil && *n.Meta.Collapsed != *o.Meta.Collapsed {
		return false
	}
	return Equal(n.Children, o.Children)
}

func boolPtr(b bool) *bool {
	return &b
}
