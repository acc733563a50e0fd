package tree

import (
	"regexp"
	"strings"
	"unicode"
)

// Segments and tokens of a `tree`-style drawing. Each is four characters wide.
const (
	spacingSegment = "    "
	guideSegment   = "│   "
	teeToken       = "├── "
	elbowToken     = "└── "
)

var (
	// nameMetaPattern splits "name <! key: value; key2 >" into name and annotation body.
	nameMetaPattern = regexp.MustCompile(`^(.*?)(?:<!\s*(.*?)\s*>)?\s*$`)

	// metaFieldPattern matches one "key" or "key: value" entry of an annotation body.
	metaFieldPattern = regexp.MustCompile(`(\w+)(?:\s*:\s*([^;]+))?\s*;?`)

	dotfilePattern   = regexp.MustCompile(`^\.[^./\\]+$`)
	extensionPattern = regexp.MustCompile(`\.[^./\\]+$`)
)

// frame is one entry of the ancestor stack used to resolve parents.
type frame struct {
	depth int
	node  *Node
}

// ParseASCII parses a `tree`-command style drawing into a forest.
//
// Each non-blank line becomes one node, even when only metadata is left
// after the indent. Its depth is the number of leading
// guide segments ("│   " or "    "), plus one when a branch token ("├── " or
// "└── ") follows. Lines are attached to the nearest preceding line of smaller
// depth. A line with no eligible ancestor starts a new root instead of failing,
// so ParseASCII never returns an error; empty input yields an empty forest.
//
// Node types are inferred from names (see [InferType]) and upgraded to
// directory as soon as a node receives a child.
func ParseASCII(source string) []*Node {
	var (
		roots []*Node
		stack []frame
	)

	for _, line := range asciiLines(source) {
		depth, name, meta := parseASCIILine(line)
		node := &Node{Name: name, Type: InferType(name), Meta: meta}

		if depth > 0 {
			for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
				stack = stack[:len(stack)-1]
			}
		}

		// Top-level entries and orphans (no ancestor left on the stack) start a new root.
		if depth == 0 || len(stack) == 0 {
			roots = append(roots, node)
			stack = append(stack[:0], frame{depth: depth, node: node})
			continue
		}

		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		parent.Type = TypeDirectory
		node.Meta.Depth = parent.Meta.Depth + 1
		stack = append(stack, frame{depth: depth, node: node})
	}

	return roots
}

// asciiLines normalizes line endings and whitespace and drops lines that
// carry no entry.
func asciiLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	// GNU tree pads its guides with non-breaking spaces in UTF-8 locales.
	source = strings.ReplaceAll(source, "\u00a0", " ")

	var lines []string
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if line == "" || isSpacerLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isSpacerLine reports whether line holds nothing but vertical guides.
func isSpacerLine(line string) bool {
	return strings.Trim(line, "│ ") == ""
}

// parseASCIILine returns the resolved depth, trimmed name and metadata of a line.
func parseASCIILine(line string) (int, string, Meta) {
	depth, rest := splitIndent(line)
	name, meta := extractMeta(strings.TrimSpace(rest))
	return depth, name, meta
}

// splitIndent consumes guide segments and an optional branch token from the
// start of line and returns the resulting depth and the remaining text.
func splitIndent(line string) (int, string) {
	depth := 0
	rest := line

	for {
		if strings.HasPrefix(rest, guideSegment) {
			rest = rest[len(guideSegment):]
		} else if strings.HasPrefix(rest, spacingSegment) {
			rest = rest[len(spacingSegment):]
		} else {
			break
		}
		depth++
	}

	for _, token := range [...]string{teeToken, elbowToken} {
		// A bare token at end of line lost its trailing space to trimming.
		if strings.HasPrefix(rest, token) || rest == strings.TrimSpace(token) {
			rest = strings.TrimPrefix(rest, strings.TrimSpace(token))
			return depth + 1, rest
		}
	}

	return depth, rest
}

// extractMeta splits an optional `<! ... >` annotation off a name.
func extractMeta(text string) (string, Meta) {
	var meta Meta

	match := nameMetaPattern.FindStringSubmatch(text)
	if match == nil {
		return text, meta
	}

	name := strings.TrimSpace(match[1])
	body := match[2]
	if body == "" {
		return name, meta
	}

	for _, field := range metaFieldPattern.FindAllStringSubmatch(body, -1) {
		key := strings.TrimSpace(field[1])
		value := strings.TrimSpace(field[2])

		switch key {
		case "collapsed":
			if value == "" {
				meta.Collapsed = boolPtr(true)
			} else {
				meta.Collapsed = boolPtr(strings.EqualFold(value, "true"))
			}
		case "icon":
			if value != "" {
				meta.Icon = value
			}
		}
	}

	return name, meta
}

// InferType guesses whether name denotes a file or a directory.
//
// Dotfiles (".env", ".gitignore") and names with an extension ("main.go") are
// files; "." and everything else are directories. The guess is only a seed:
// parsers upgrade a node to directory once it receives children. Childless
// extensionless files and dotted directory names such as "v1.2" come out
// wrong.
func InferType(name string) Type {
	if name == "." {
		return TypeDirectory
	}
	if dotfilePattern.MatchString(name) || extensionPattern.MatchString(name) {
		return TypeFile
	}
	return TypeDirectory
}
