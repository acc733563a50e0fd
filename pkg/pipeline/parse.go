package pipeline

import (
	"github.com/matzehuels/treeview/pkg/tree"
)

// Parse converts source into a forest and drops ignored paths. It returns
// the format that was actually used, so FormatAuto is resolved.
func Parse(source string, opts Options) ([]*tree.Node, tree.Format, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, tree.FormatAuto, err
	}

	format := opts.TreeFormat()
	if format == tree.FormatAuto {
		format = tree.Detect(source)
	}

	forest, err := tree.Parse(source, format)
	if err != nil {
		return nil, format, err
	}
	if len(opts.Ignore) > 0 {
		forest = tree.Prune(forest, opts.Ignore)
	}
	return forest, format, nil
}
