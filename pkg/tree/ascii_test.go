package tree

import (
	"strings"
	"testing"
)

const sampleTree = `.
├── folder1
│   ├── file1.txt
│   └── file2.txt
└── folder2
    └── file3.txt
`

func TestParseASCII(t *testing.T) {
	forest := ParseASCII(sampleTree)

	if len(forest) != 1 {
		t.Fatalf("roots = %d, want 1", len(forest))
	}
	root := forest[0]
	if root.Name != "." || root.Type != TypeDirectory {
		t.Fatalf("root = %q (%s), want . (directory)", root.Name, root.Type)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.Children))
	}

	folder1, folder2 := root.Children[0], root.Children[1]
	if folder1.Name != "folder1" || !folder1.IsDir() {
		t.Errorf("first child = %q (%s), want folder1 (directory)", folder1.Name, folder1.Type)
	}
	if folder2.Name != "folder2" || !folder2.IsDir() {
		t.Errorf("second child = %q (%s), want folder2 (directory)", folder2.Name, folder2.Type)
	}

	wantNames := func(n *Node, want ...string) {
		t.Helper()
		if len(n.Children) != len(want) {
			t.Fatalf("%s children = %d, want %d", n.Name, len(n.Children), len(want))
		}
		for i, name := range want {
			c := n.Children[i]
			if c.Name != name {
				t.Errorf("%s child %d = %q, want %q", n.Name, i, c.Name, name)
			}
			if c.Type != TypeFile {
				t.Errorf("%s type = %s, want file", c.Name, c.Type)
			}
		}
	}
	wantNames(folder1, "file1.txt", "file2.txt")
	wantNames(folder2, "file3.txt")
}

func TestParseASCIIMetadata(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantName      string
		wantCollapsed *bool
		wantIcon      string
	}{
		{
			name:          "CollapsedAndIcon",
			line:          "├── notes <! collapsed; icon: star >",
			wantName:      "notes",
			wantCollapsed: boolPtr(true),
			wantIcon:      "star",
		},
		{
			name:          "ExplicitFalse",
			line:          "└── docs <! collapsed: false >",
			wantName:      "docs",
			wantCollapsed: boolPtr(false),
		},
		{
			name:          "ExplicitTrueAnyCase",
			line:          "└── docs <! collapsed: TRUE >",
			wantName:      "docs",
			wantCollapsed: boolPtr(true),
		},
		{
			name:     "IconOnly",
			line:     "└── main.go <!icon:code>",
			wantName: "main.go",
			wantIcon: "code",
		},
		{
			name:     "UnknownKeysIgnored",
			line:     "└── lib <! color: red; weight >",
			wantName: "lib",
		},
		{
			name:     "MetadataWithoutName",
			line:     "├── <! icon: star >",
			wantName: "",
			wantIcon: "star",
		},
		{
			name:     "NoAnnotation",
			line:     "└── plain.txt   ",
			wantName: "plain.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := ParseASCII(".\n" + tt.line)
			if len(forest) != 1 || len(forest[0].Children) != 1 {
				t.Fatalf("unexpected shape: %d roots", len(forest))
			}
			n := forest[0].Children[0]

			if n.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", n.Name, tt.wantName)
			}
			if n.Meta.Icon != tt.wantIcon {
				t.Errorf("Icon = %q, want %q", n.Meta.Icon, tt.wantIcon)
			}
			switch {
			case tt.wantCollapsed == nil && n.Meta.Collapsed != nil:
				t.Errorf("Collapsed = %v, want unset", *n.Meta.Collapsed)
			case tt.wantCollapsed != nil && n.Meta.Collapsed == nil:
				t.Errorf("Collapsed unset, want %v", *tt.wantCollapsed)
			case tt.wantCollapsed != nil && *n.Meta.Collapsed != *tt.wantCollapsed:
				t.Errorf("Collapsed = %v, want %v", *n.Meta.Collapsed, *tt.wantCollapsed)
			}
		})
	}
}

func TestParseASCIIOrphanFallback(t *testing.T) {
	input := "        └── deep.txt\n        └── sibling.txt\n"

	forest := ParseASCII(input)

	if len(forest) != 2 {
		t.Fatalf("roots = %d, want 2", len(forest))
	}
	for i, want := range []string{"deep.txt", "sibling.txt"} {
		if forest[i].Name != want {
			t.Errorf("root %d = %q, want %q", i, forest[i].Name, want)
		}
		if forest[i].Meta.Depth != 0 {
			t.Errorf("root %d depth = %d, want 0", i, forest[i].Meta.Depth)
		}
	}
}

func TestParseASCIIOrphanAdoptsChildren(t *testing.T) {
	input := "    └── src\n        └── main.go\n"

	forest := ParseASCII(input)

	if len(forest) != 1 {
		t.Fatalf("roots = %d, want 1", len(forest))
	}
	if !forest[0].IsDir() || len(forest[0].Children) != 1 {
		t.Fatalf("src = %+v, want directory with one child", forest[0])
	}
	if got := forest[0].Children[0].Meta.Depth; got != 1 {
		t.Errorf("child depth = %d, want 1", got)
	}
}

func TestParseASCIIMultipleRoots(t *testing.T) {
	forest := ParseASCII("a\n└── x.txt\nb\n└── y.txt\n")

	if len(forest) != 2 {
		t.Fatalf("roots = %d, want 2", len(forest))
	}
	if forest[0].Children[0].Name != "x.txt" || forest[1].Children[0].Name != "y.txt" {
		t.Errorf("children attached to wrong roots")
	}
}

func TestParseASCIIEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n", "│\n│   \n"} {
		if forest := ParseASCII(input); len(forest) != 0 {
			t.Errorf("ParseASCII(%q) = %d roots, want 0", input, len(forest))
		}
	}
}

func TestParseASCIILineEndings(t *testing.T) {
	crlf := strings.ReplaceAll(sampleTree, "\n", "\r\n")
	if !Equal(ParseASCII(crlf), ParseASCII(sampleTree)) {
		t.Error("CRLF input parsed differently from LF input")
	}
}

func TestParseASCIINonBreakingSpaces(t *testing.T) {
	gnu := strings.ReplaceAll(sampleTree, "│   ", "│\u00a0\u00a0 ")
	gnu = strings.ReplaceAll(gnu, "├── ", "├──\u00a0")
	gnu = strings.ReplaceAll(gnu, "└── ", "└──\u00a0")
	gnu = strings.ReplaceAll(gnu, "    ", "\u00a0\u00a0\u00a0 ")

	if !Equal(ParseASCII(gnu), ParseASCII(sampleTree)) {
		t.Error("NBSP-padded input parsed differently")
	}
}

func TestParseASCIIDepthMatchesAncestors(t *testing.T) {
	input := `project
├── cmd
│   └── app
│       └── main.go
├── internal
│   ├── a.go
│   └── sub
│       ├── b.go
│       └── deeper
│           └── c.go
└── README.md
`
	forest := ParseASCII(input)

	var check func(nodes []*Node, ancestors int)
	check = func(nodes []*Node, ancestors int) {
		for _, n := range nodes {
			if n.Meta.Depth != ancestors {
				t.Errorf("%s depth = %d, want %d", n.Name, n.Meta.Depth, ancestors)
			}
			check(n.Children, ancestors+1)
		}
	}
	check(forest, 0)
}

func TestParseASCIITypeInvariant(t *testing.T) {
	input := `.
├── Makefile
├── v1.2
│   └── notes.md
├── .env
├── dist.tar.gz
└── empty
`
	forest := ParseASCII(input)

	Walk(forest, func(n *Node) bool {
		want := TypeFile
		if n.HasChildren() || InferType(n.Name) == TypeDirectory {
			want = TypeDirectory
		}
		if n.Type != want {
			t.Errorf("%s type = %s, want %s", n.Name, n.Type, want)
		}
		return true
	})

	v12 := forest[0].Children[1]
	if v12.Name != "v1.2" || !v12.IsDir() {
		t.Errorf("v1.2 = %s, want directory after receiving a child", v12.Type)
	}
}

func TestParseASCIIDeterministic(t *testing.T) {
	a := ParseASCII(sampleTree)
	b := ParseASCII(sampleTree)
	if !Equal(a, b) {
		t.Error("parsing the same input twice produced different forests")
	}
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{".", TypeDirectory},
		{"src", TypeDirectory},
		{"Makefile", TypeDirectory},
		{"main.go", TypeFile},
		{"archive.tar.gz", TypeFile},
		{".env", TypeFile},
		{".gitignore", TypeFile},
		{".config.d", TypeFile},
		{"..", TypeDirectory},
		{"v1.2", TypeFile},
		{"dir.", TypeDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.name); got != tt.want {
				t.Errorf("InferType(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}
