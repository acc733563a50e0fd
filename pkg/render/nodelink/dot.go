package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeview/pkg/tree"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node type and icon override to labels.
	// When false, only the name is shown.
	Detailed bool

	// Horizontal lays the tree out left to right instead of top to bottom.
	Horizontal bool

	// HonorCollapsed leaves out the children of nodes whose metadata marks
	// them collapsed. Such nodes are drawn with a dashed outline.
	HonorCollapsed bool
}

// ToDOT converts a forest to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Directories are drawn as folder shapes and files as note shapes. Node ids
// are tree positions ("0", "0/1"), so names may repeat freely.
func ToDOT(forest []*tree.Node, opts Options) string {
	rankdir := "TB"
	if opts.Horizontal {
		rankdir = "LR"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [arrowhead=none, color=\"#888888\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(nodes []*tree.Node, parent string)
	walk = func(nodes []*tree.Node, parent string) {
		for i, n := range nodes {
			id := strconv.Itoa(i)
			if parent != "" {
				id = parent + "/" + id
			}

			hidden := opts.HonorCollapsed && n.HasChildren() && n.Meta.InitiallyCollapsed(false)
			fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(n, opts.Detailed, hidden), ", "))
			if parent != "" {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", parent, id))
			}
			if !hidden {
				walk(n.Children, id)
			}
		}
	}
	walk(forest, "")

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *tree.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}

	parts := []string{string(n.Type)}
	if n.Meta.Icon != "" {
		parts = append(parts, "icon: "+n.Meta.Icon)
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *tree.Node, detailed, hidden bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsDir() {
		attrs = append(attrs, "shape=folder", "fillcolor=\"#fdf3d0\"")
	} else {
		attrs = append(attrs, "shape=note")
	}
	if hidden {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the image scales cleanly in pages.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
