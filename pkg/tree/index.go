package tree

import (
	"strings"

	"github.com/armon/go-radix"
)

// Entry pairs a node with its slash-separated path in the forest.
type Entry struct {
	Path string
	Node *Node
}

// Index maps node paths to nodes using a radix tree, so exact and prefix
// lookups cost O(len(path)) regardless of forest size.
//
// Paths join node names with "/". A root named "." contributes no segment, so
// the children of "." are indexed as "src", "src/main.go" and so on. When two
// nodes share a path the first one in document order wins.
type Index struct {
	tree *radix.Tree
}

// NewIndex builds an index over every node of the forest.
func NewIndex(forest []*Node) *Index {
	idx := &Index{tree: radix.New()}
	idx.add(forest, "")
	return idx
}

func (idx *Index) add(nodes []*Node, prefix string) {
	for _, n := range nodes {
		path := joinPath(prefix, n.Name)
		if path != "" {
			if _, exists := idx.tree.Get(path); !exists {
				idx.tree.Insert(path, n)
			}
		}
		idx.add(n.Children, path)
	}
}

// joinPath appends a node name to a path. A trailing slash on the name, as
// in "src/", is not part of the path.
func joinPath(prefix, name string) string {
	name = strings.TrimRight(name, "/")
	if name == "." || name == "" {
		return prefix
	}
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// Len returns the number of indexed paths.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Lookup returns the node stored at path. Leading "./", leading and trailing
// slashes are ignored.
func (idx *Index) Lookup(path string) (*Node, bool) {
	v, ok := idx.tree.Get(normalizePath(path))
	if !ok {
		return nil, false
	}
	return v.(*Node), true
}

// WalkPrefix returns the entries whose path starts with prefix, in
// lexicographic path order. An empty prefix returns every entry. A trailing
// slash restricts the walk to the descendants of a directory.
func (idx *Index) WalkPrefix(prefix string) []Entry {
	prefix = strings.TrimLeft(strings.TrimPrefix(strings.TrimSpace(prefix), "./"), "/")

	var out []Entry
	idx.tree.WalkPrefix(prefix, func(key string, v any) bool {
		out = append(out, Entry{Path: key, Node: v.(*Node)})
		return false
	})
	return out
}

// Paths returns every indexed path in lexicographic order.
func (idx *Index) Paths() []string {
	entries := idx.WalkPrefix("")
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	if path == "." {
		return ""
	}
	return strings.Trim(path, "/")
}
