// Package nodelink renders parsed forests as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz diagrams of a forest, with directories drawn
// as folders and files as notes, connected by plain edges. It is a static
// alternative to the collapsible outline, suited for documentation images.
//
// # Usage
//
// Convert a forest to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(forest, nodelink.Options{HonorCollapsed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: labels include the node type and icon override
//   - Horizontal: left-to-right layout (rankdir=LR)
//   - HonorCollapsed: children of collapsed nodes are left out
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
