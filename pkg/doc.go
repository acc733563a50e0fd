// Package pkg provides the core libraries for Treeview file-tree outlines.
//
// # Overview
//
// Treeview turns file trees written as ASCII art (the output of the tree
// command) or JSON into collapsible outlines. The pkg directory is organized
// into three areas:
//
//  1. Domain logic: [tree], [markdown], [render]
//  2. Orchestration: [pipeline]
//  3. Infrastructure: [cache], [store], [server], [config], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	ASCII / JSON source (or ```tree blocks in markdown)
//	         ↓
//	    [tree] package (detect format, parse, prune ignored paths)
//	         ↓
//	    [render] package (outline construction + collapse state)
//	         ↓
//	    HTML page / SVG / DOT / ASCII / JSON output
//
// # Quick Start
//
// Parse a tree and render it into an in-memory DOM:
//
//	forest, _ := tree.Parse(source, tree.FormatAuto)
//	root := dom.NewRoot()
//	outline := render.Render(root, nil, forest, render.WithDefaultCollapsed(true))
//	outline.Toggle(outline.IDs()[0])
//	fmt.Println(root.HTML())
//
// Or run the cached pipeline used by the CLI and the HTTP API:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, source, pipeline.Options{
//	    Outputs: []string{pipeline.OutputHTML, pipeline.OutputDOT},
//	})
//
// # Main Packages
//
// [tree] - The node model, the ASCII and JSON parsers, format detection,
// gitignore-style pruning and a radix index of node paths.
//
// [markdown] - Extraction of ```tree fenced blocks and YAML frontmatter.
//
// [render] - The collapsible outline renderer. It builds against the
// [render.Element] host interface and owns the collapse state machine.
// [render/dom] is the in-memory host that also serializes HTML pages;
// [render/nodelink] draws node-link diagrams with Graphviz.
//
// [pipeline] - Parse, render and markdown execution with artifact caching.
//
// [cache] - Null, file and Redis caches plus cache key derivation.
//
// [store] - Saved trees in memory, on disk or in MongoDB.
//
// [server] - The HTTP API.
//
// [errors] - Coded errors shared by every layer.
package pkg
