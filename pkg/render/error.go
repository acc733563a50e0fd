package render

import (
	"github.com/matzehuels/treeview/pkg/errors"
)

// ErrorPrefix starts the message shown in place of a tree that failed to parse.
const ErrorPrefix = "Error parsing tree structure: "

// RenderError shows err as preformatted text under root, in place of the
// outline of a block that failed to parse.
func RenderError(root Element, err error) Element {
	return root.CreateChild("pre", "tree-view--error", ErrorPrefix+errors.UserMessage(err))
}
