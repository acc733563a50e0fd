package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/treeview/pkg/errors"
)

// ParseJSON parses a JSON array of node descriptors into a forest.
//
// Each element is an object of the form:
//
//	{"name": "src", "type": "directory", "contents": [...], "collapsed": true, "icon": "star"}
//
// The "type" field is authoritative: "directory" yields a directory and any
// other value, including a missing field, yields a file. "name" is copied as-is.
// "collapsed" is coerced to a boolean by truthiness and "icon" to a string.
//
// Malformed JSON fails with errors.ErrCodeInvalidSyntax. A top level that is
// not an array, an element that is not an object, or a "contents" value that
// is not an array fails with errors.ErrCodeInvalidShape.
func ParseJSON(source string) ([]*Node, error) {
	dec := json.NewDecoder(strings.NewReader(source))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSyntax, err, "invalid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidSyntax, "invalid JSON: unexpected data after top-level value")
	}

	items, ok := data.([]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidShape, "JSON tree must be an array of nodes")
	}

	return mapJSONNodes(items, 0, "$")
}

func mapJSONNodes(items []any, depth int, path string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		n, err := mapJSONNode(item, depth, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func mapJSONNode(item any, depth int, path string) (*Node, error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidShape, "node at %s must be an object", path)
	}

	n := &Node{
		Name: jsonString(obj["name"]),
		Type: TypeFile,
		Meta: Meta{Depth: depth},
	}
	if t, ok := obj["type"].(string); ok && t == string(TypeDirectory) {
		n.Type = TypeDirectory
	}
	if v, ok := obj["collapsed"]; ok {
		n.Meta.Collapsed = boolPtr(truthy(v))
	}
	if v, ok := obj["icon"]; ok {
		n.Meta.Icon = jsonString(v)
	}

	switch contents := obj["contents"].(type) {
	case nil:
		n.Children = []*Node{}
	case []any:
		children, err := mapJSONNodes(contents, depth+1, path+".contents")
		if err != nil {
			return nil, err
		}
		n.Children = children
	default:
		return nil, errors.New(errors.ErrCodeInvalidShape, "contents at %s must be an array", path)
	}

	return n, nil
}

// jsonString renders a decoded JSON value as a string. Strings are returned
// unchanged, missing values become empty and anything else uses its JSON text.
func jsonString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(data)
	}
}

// truthy coerces a decoded JSON value to a boolean: false, null, 0 and ""
// are false, everything else is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		f, err := b.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

// wireNode is the serialized form written by EncodeJSON.
type wireNode struct {
	Name      string     `json:"name"`
	Type      Type       `json:"type"`
	Contents  []wireNode `json:"contents,omitempty"`
	Collapsed *bool      `json:"collapsed,omitempty"`
	Icon      string     `json:"icon,omitempty"`
}

// EncodeJSON writes the forest in the JSON input format accepted by ParseJSON.
// The output is indented and ends with a newline.
func EncodeJSON(w io.Writer, forest []*Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(toWire(forest))
}

// MarshalJSON returns the forest in the JSON input format.
func MarshalJSON(forest []*Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, forest); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toWire(forest []*Node) []wireNode {
	out := make([]wireNode, 0, len(forest))
	for _, n := range forest {
		out = append(out, wireNode{
			Name:      n.Name,
			Type:      n.Type,
			Contents:  toWire(n.Children),
			Collapsed: n.Meta.Collapsed,
			Icon:      n.Meta.Icon,
		})
	}
	return out
}
