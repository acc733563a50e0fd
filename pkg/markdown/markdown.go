// Package markdown finds tree blocks in markdown documents.
//
// A tree block is a fenced code block whose info string starts with the word
// "tree". An optional second word selects the block format:
//
//	```tree
//	src/
//	└── main.go
//	```
//
//	```tree json
//	[{"name": "src", "type": "directory"}]
//	```
//
// Documents may carry YAML frontmatter with document-wide defaults under the
// "treeview" key:
//
//	---
//	title: Layout
//	treeview:
//	  format: ascii
//	  collapsed: true
//	---
package markdown

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/tree"
)

// InfoWord is the first word of a tree block's info string.
const InfoWord = "tree"

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---[ \t]*(?:\n|$)`)

// Settings are the treeview defaults a document declares in its frontmatter.
type Settings struct {
	Format    string `yaml:"format,omitempty"`
	Collapsed *bool  `yaml:"collapsed,omitempty"`
}

// Frontmatter is the part of a document's frontmatter treeview reads.
type Frontmatter struct {
	Title    string   `yaml:"title,omitempty"`
	Treeview Settings `yaml:"treeview,omitempty"`
}

// Block is one tree block.
type Block struct {
	// Index is the position among the document's tree blocks.
	Index int

	// Line is the 1-based line of the opening fence.
	Line int

	// Info is the full info string.
	Info string

	// Format is the format named in the info string, FormatAuto if none.
	Format tree.Format

	// Source is the block content with the fence indentation removed.
	Source string
}

// Document is a parsed markdown document.
type Document struct {
	Frontmatter Frontmatter
	Blocks      []Block
}

// Parse extracts the frontmatter and tree blocks of a markdown document.
//
// Malformed frontmatter is an INVALID_INPUT error. An unknown format in the
// frontmatter or in a block info string is an INVALID_FORMAT error naming the
// line. An unclosed fence runs to the end of the document.
func Parse(content string) (*Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	doc := &Document{}

	body := content
	offset := 0
	if m := frontmatterPattern.FindStringSubmatchIndex(content); m != nil {
		raw := content[m[2]:m[3]]
		if err := yaml.Unmarshal([]byte(raw), &doc.Frontmatter); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid frontmatter")
		}
		if _, err := tree.ParseFormat(doc.Frontmatter.Treeview.Format); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "frontmatter")
		}
		offset = strings.Count(content[:m[1]], "\n")
		if !strings.HasSuffix(content[:m[1]], "\n") {
			offset++
		}
		body = content[m[1]:]
	}

	blocks, err := scanBlocks(body, offset)
	if err != nil {
		return nil, err
	}
	doc.Blocks = blocks
	return doc, nil
}

// DefaultFormat returns the document-wide format, FormatAuto if unset.
func (d *Document) DefaultFormat() tree.Format {
	f, _ := tree.ParseFormat(d.Frontmatter.Treeview.Format)
	return f
}

// Collapsed returns the document-wide default state, or def when the
// frontmatter does not set one.
func (d *Document) Collapsed(def bool) bool {
	if c := d.Frontmatter.Treeview.Collapsed; c != nil {
		return *c
	}
	return def
}

// fence is an open code fence.
type fence struct {
	char   byte
	length int
	indent int
	line   int
	info   string
	lines  []string
}

func scanBlocks(body string, offset int) ([]Block, error) {
	var blocks []Block
	var open *fence

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lineNo := offset + i + 1

		if open != nil {
			if closesFence(line, open) {
				if b, ok, err := open.block(len(blocks)); err != nil {
					return nil, err
				} else if ok {
					blocks = append(blocks, b)
				}
				open = nil
				continue
			}
			open.lines = append(open.lines, stripIndent(line, open.indent))
			continue
		}

		if f := openFence(line); f != nil {
			f.line = lineNo
			open = f
		}
	}

	if open != nil {
		if b, ok, err := open.block(len(blocks)); err != nil {
			return nil, err
		} else if ok {
			blocks = append(blocks, b)
		}
	}
	return blocks, nil
}

// openFence recognizes an opening fence: up to three spaces, then at least
// three backticks or tildes, then the info string.
func openFence(line string) *fence {
	indent := leadingSpaces(line)
	if indent > 3 {
		return nil
	}
	rest := line[indent:]
	if rest == "" || (rest[0] != '`' && rest[0] != '~') {
		return nil
	}
	ch := rest[0]
	n := 0
	for n < len(rest) && rest[n] == ch {
		n++
	}
	if n < 3 {
		return nil
	}
	info := strings.TrimSpace(rest[n:])
	if ch == '`' && strings.ContainsRune(info, '`') {
		return nil
	}
	return &fence{char: ch, length: n, indent: indent, info: info}
}

func closesFence(line string, f *fence) bool {
	indent := leadingSpaces(line)
	if indent > 3 {
		return false
	}
	rest := line[indent:]
	n := 0
	for n < len(rest) && rest[n] == f.char {
		n++
	}
	return n >= f.length && strings.TrimSpace(rest[n:]) == ""
}

// block converts a closed fence into a Block. ok is false for fences that are
// not tree blocks.
func (f *fence) block(index int) (Block, bool, error) {
	words := strings.Fields(f.info)
	if len(words) == 0 || !strings.EqualFold(words[0], InfoWord) {
		return Block{}, false, nil
	}

	format := tree.FormatAuto
	if len(words) > 1 {
		var err error
		format, err = tree.ParseFormat(words[1])
		if err != nil {
			return Block{}, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "tree block at line %d", f.line)
		}
	}

	return Block{
		Index:  index,
		Line:   f.line,
		Info:   f.info,
		Format: format,
		Source: strings.Join(f.lines, "\n"),
	}, true, nil
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}

// stripIndent removes up to n leading spaces.
func stripIndent(s string, n int) string {
	i := 0
	for i < n && i < len(s) && s[i] == ' ' {
		i++
	}
	return s[i:]
}
