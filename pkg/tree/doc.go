// Package tree parses textual descriptions of file/directory hierarchies into a
// normalized forest of [Node] values.
//
// # Input Formats
//
// Two formats are supported and produce the same model:
//
//   - ASCII: drawings in the style of the `tree` command, using "│   " guide
//     segments, "    " padding and "├── " / "└── " branch tokens. A node may
//     carry an inline annotation: `notes <! collapsed; icon: star >`.
//   - JSON: an array of `{name, type, contents, collapsed, icon}` objects,
//     nested through `contents`.
//
// [Parse] dispatches on an explicit [Format] or sniffs the input: a source whose
// trimmed text starts with "[" is JSON, anything else is ASCII.
//
// # Model
//
// Every parser returns a forest ([]*Node). A node with children is always a
// directory. Children keep document order. The forest is not modified after a
// parser returns; presentation state such as collapse toggling lives in the
// renderer (see package render).
//
// # Errors
//
// The ASCII parser never fails: orphaned or mis-indented lines become extra
// roots. The JSON parser reports malformed text with
// errors.ErrCodeInvalidSyntax and a non-array top level (or malformed
// elements) with errors.ErrCodeInvalidShape.
//
// # Utilities
//
// [DrawASCII] and [EncodeJSON] serialize a forest back into either input
// format. [NewIndex] builds a radix index over node paths and [Prune] removes
// nodes matching gitignore-style patterns.
package tree
