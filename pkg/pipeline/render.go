package pipeline

import (
	"context"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/render"
	"github.com/matzehuels/treeview/pkg/render/dom"
	"github.com/matzehuels/treeview/pkg/render/nodelink"
	"github.com/matzehuels/treeview/pkg/tree"
)

// Render generates the requested outputs for a forest.
func Render(ctx context.Context, forest []*tree.Node, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Outputs))
	for _, output := range opts.Outputs {
		data, err := RenderOutput(ctx, forest, output, opts)
		if err != nil {
			return nil, err
		}
		artifacts[output] = data
	}
	return artifacts, nil
}

// RenderOutput generates a single output.
func RenderOutput(ctx context.Context, forest []*tree.Node, output string, opts Options) ([]byte, error) {
	switch output {
	case OutputHTML:
		return RenderPage(opts.Title, OutlineSection("", forest, opts.Collapsed))
	case OutputSVG:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(forest, nodelinkOptions(opts)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return data, nil
	case OutputDOT:
		return []byte(nodelink.ToDOT(forest, nodelinkOptions(opts))), nil
	case OutputASCII:
		return []byte(tree.DrawASCII(forest)), nil
	case OutputJSON:
		data, err := tree.MarshalJSON(forest)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return data, nil
	default:
		return nil, ValidateOutput(output)
	}
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{
		Detailed:       opts.Detailed,
		Horizontal:     opts.Horizontal,
		HonorCollapsed: true,
	}
}

// OutlineSection renders a forest as a collapsible outline for a page.
func OutlineSection(heading string, forest []*tree.Node, collapsed bool) dom.Section {
	root := dom.NewRoot()
	outline := render.Render(root, dom.Glyphs{}, forest, render.WithDefaultCollapsed(collapsed))
	return dom.Section{Heading: heading, Root: root, Outline: outline}
}

// ErrorSection renders a parse failure in place of an outline.
func ErrorSection(heading string, err error) dom.Section {
	root := dom.NewRoot()
	render.RenderError(root, err)
	return dom.Section{Heading: heading, Root: root}
}

// RenderPage writes sections into a standalone HTML page.
func RenderPage(title string, sections ...dom.Section) ([]byte, error) {
	if title == "" {
		title = DefaultTitle
	}
	data, err := dom.Page(title, sections...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return data, nil
}
