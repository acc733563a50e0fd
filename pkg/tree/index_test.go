package tree

import (
	"reflect"
	"testing"
)

func TestIndexLookup(t *testing.T) {
	idx := NewIndex(ParseASCII(sampleTree))

	tests := []struct {
		path     string
		wantName string
		wantOK   bool
	}{
		{"folder1", "folder1", true},
		{"folder1/file2.txt", "file2.txt", true},
		{"./folder2/file3.txt", "file3.txt", true},
		{"/folder2/", "folder2", true},
		{"folder2/file1.txt", "", false},
		{"missing", "", false},
		{".", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, ok := idx.Lookup(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && n.Name != tt.wantName {
				t.Errorf("Lookup(%q) = %q, want %q", tt.path, n.Name, tt.wantName)
			}
		})
	}
}

func TestIndexPaths(t *testing.T) {
	idx := NewIndex(ParseASCII(sampleTree))

	want := []string{
		"folder1",
		"folder1/file1.txt",
		"folder1/file2.txt",
		"folder2",
		"folder2/file3.txt",
	}
	if got := idx.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths = %v, want %v", got, want)
	}
	if idx.Len() != len(want) {
		t.Errorf("Len = %d, want %d", idx.Len(), len(want))
	}
}

func TestIndexWalkPrefix(t *testing.T) {
	idx := NewIndex(ParseASCII(sampleTree))

	entries := idx.WalkPrefix("folder1/")
	if len(entries) != 2 {
		t.Fatalf("WalkPrefix = %d entries, want 2", len(entries))
	}
	if entries[0].Path != "folder1/file1.txt" || entries[0].Node.Name != "file1.txt" {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func TestIndexNamedRoot(t *testing.T) {
	idx := NewIndex(ParseASCII("project\n└── main.go\n"))

	if _, ok := idx.Lookup("project/main.go"); !ok {
		t.Error("named root should contribute a path segment")
	}
}

func TestIndexDuplicatePathsKeepFirst(t *testing.T) {
	forest := []*Node{
		{Name: "a.txt", Type: TypeFile, Meta: Meta{Icon: "first"}},
		{Name: "a.txt", Type: TypeFile, Meta: Meta{Icon: "second"}},
	}
	n, ok := NewIndex(forest).Lookup("a.txt")
	if !ok || n.Meta.Icon != "first" {
		t.Errorf("Lookup = %+v, want first node", n)
	}
}

func TestIndexTrailingSlashNames(t *testing.T) {
	idx := NewIndex(ParseASCII("project/\n└── src/\n    └── main.go\n"))

	for _, p := range []string{"project", "project/src", "project/src/main.go"} {
		if _, ok := idx.Lookup(p); !ok {
			t.Errorf("Lookup(%q) failed; paths = %v", p, idx.Paths())
		}
	}
}
