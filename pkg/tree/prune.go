package tree

import (
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/matzehuels/treeview/pkg/errors"
)

// Prune returns a copy of the forest without the nodes matched by the given
// gitignore-style patterns. The input forest is not modified.
//
// Patterns are matched against the node's path as built by [NewIndex].
// Directory paths carry a trailing slash, so "build/" only removes
// directories. Removing a node removes its whole subtree. A directory that
// loses all its children stays a directory.
func Prune(forest []*Node, patterns []string) []*Node {
	if len(patterns) == 0 {
		return Clone(forest)
	}
	return prune(forest, ignore.CompileIgnoreLines(patterns...), "")
}

// PruneFile is like Prune but reads patterns from a .gitignore-style file.
func PruneFile(forest []*Node, path string) ([]*Node, error) {
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read ignore file %s", path)
	}
	return prune(forest, matcher, ""), nil
}

func prune(nodes []*Node, matcher *ignore.GitIgnore, prefix string) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		path := joinPath(prefix, n.Name)

		match := path
		if n.IsDir() {
			match += "/"
		}
		if path != "" && matcher.MatchesPath(match) {
			continue
		}

		cp := *n
		cp.Children = prune(n.Children, matcher, path)
		out = append(out, &cp)
	}
	return out
}

// Clone returns a deep copy of the forest.
func Clone(forest []*Node) []*Node {
	if forest == nil {
		return nil
	}
	out := make([]*Node, len(forest))
	for i, n := range forest {
		cp := *n
		if n.Meta.Collapsed != nil {
			cp.Meta.Collapsed = boolPtr(*n.Meta.Collapsed)
		}
		cp.Children = Clone(n.Children)
		out[i] = &cp
	}
	return out
}
