package tree

import (
	"strings"
)

// DrawASCII renders the forest as a `tree`-style drawing that ParseASCII
// reads back into an equivalent forest. Roots are written without indentation;
// metadata is written as a trailing `<! ... >` annotation.
//
// Directories whose names look like files and that have no children cannot be
// expressed in the drawing and come back as files when re-parsed.
func DrawASCII(forest []*Node) string {
	var b strings.Builder
	for _, root := range forest {
		writeLine(&b, "", root)
		writeChildren(&b, root.Children, "")
	}
	return b.String()
}

func writeChildren(b *strings.Builder, children []*Node, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector := teeToken
		next := prefix + guideSegment
		if last {
			connector = elbowToken
			next = prefix + spacingSegment
		}

		writeLine(b, prefix+connector, child)
		writeChildren(b, child.Children, next)
	}
}

func writeLine(b *strings.Builder, prefix string, n *Node) {
	b.WriteString(prefix)
	b.WriteString(n.Name)
	if ann := annotation(n.Meta); ann != "" {
		b.WriteString(" <! ")
		b.WriteString(ann)
		b.WriteString(" >")
	}
	b.WriteByte('\n')
}

func annotation(m Meta) string {
	var fields []string
	if m.Collapsed != nil {
		if *m.Collapsed {
			fields = append(fields, "collapsed")
		} else {
			fields = append(fields, "collapsed: false")
		}
	}
	if m.Icon != "" {
		fields = append(fields, "icon: "+m.Icon)
	}
	return strings.Join(fields, "; ")
}
