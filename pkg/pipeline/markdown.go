package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/matzehuels/treeview/pkg/markdown"
	"github.com/matzehuels/treeview/pkg/render/dom"
	"github.com/matzehuels/treeview/pkg/tree"
)

// BlockResult is the outcome of one tree block. Err holds the block's parse
// or render failure; other blocks are unaffected by it.
type BlockResult struct {
	Block  markdown.Block
	Result *Result
	Err    error
}

// MarkdownResult contains the outcome of every tree block of a document, in
// document order.
type MarkdownResult struct {
	Title     string
	Collapsed bool
	Blocks    []BlockResult

	// Page is the combined HTML page when the html output was requested.
	// Failed blocks appear in it as error messages.
	Page []byte
}

// Failed returns the number of blocks that failed.
func (m *MarkdownResult) Failed() int {
	n := 0
	for _, b := range m.Blocks {
		if b.Err != nil {
			n++
		}
	}
	return n
}

// ExecuteMarkdown runs the pipeline for every tree block of a markdown
// document. Blocks are processed concurrently, bounded by opts.Concurrency.
//
// Settings resolve from most to least specific: the block info string, the
// document frontmatter, then opts. The html output becomes one page holding
// all blocks; other outputs are produced per block.
func (r *Runner) ExecuteMarkdown(ctx context.Context, content string, opts Options) (*MarkdownResult, error) {
	doc, err := markdown.Parse(content)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = doc.Frontmatter.Title
	}
	opts.Title = title
	opts.Collapsed = doc.Collapsed(opts.Collapsed)
	if f := doc.DefaultFormat(); f != tree.FormatAuto {
		opts.Format = f.String()
	}

	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	wantPage := false
	var blockOutputs []string
	for _, o := range opts.Outputs {
		if o == OutputHTML {
			wantPage = true
			continue
		}
		blockOutputs = append(blockOutputs, o)
	}

	res := &MarkdownResult{
		Title:     opts.Title,
		Collapsed: opts.Collapsed,
		Blocks:    make([]BlockResult, len(doc.Blocks)),
	}

	start := time.Now()
	p := pool.New().WithMaxGoroutines(opts.Concurrency).WithContext(ctx)
	for i, block := range doc.Blocks {
		p.Go(func(ctx context.Context) error {
			blockOpts := opts
			blockOpts.Outputs = blockOutputs
			if block.Format != tree.FormatAuto {
				blockOpts.Format = block.Format.String()
			}
			result, err := r.executeBlock(ctx, block.Source, blockOpts)
			res.Blocks[i] = BlockResult{Block: block, Result: result, Err: err}
			return nil
		})
	}
	_ = p.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts.Logger.Info("processed markdown",
		"blocks", len(doc.Blocks),
		"failed", res.Failed(),
		"duration", time.Since(start))

	if wantPage {
		sections := make([]dom.Section, len(res.Blocks))
		for i, b := range res.Blocks {
			heading := BlockHeading(b.Block)
			if b.Err != nil {
				sections[i] = ErrorSection(heading, b.Err)
				continue
			}
			sections[i] = OutlineSection(heading, b.Result.Forest, opts.Collapsed)
		}
		page, err := RenderPage(opts.Title, sections...)
		if err != nil {
			return nil, err
		}
		res.Page = page
	}

	return res, nil
}

// executeBlock parses one block and renders opts.Outputs, which may be empty.
func (r *Runner) executeBlock(ctx context.Context, source string, opts Options) (*Result, error) {
	if len(opts.Outputs) > 0 {
		return r.Execute(ctx, source, opts)
	}

	start := time.Now()
	forest, format, hit, err := r.ParseWithCacheInfo(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Forest:     forest,
		Format:     format,
		ForestHash: ForestHash(forest),
		Artifacts:  map[string][]byte{},
	}
	result.Stats.ParseTime = time.Since(start)
	result.Stats.NodeCount, result.Stats.DirCount = tree.Count(forest)
	result.CacheInfo.ParseHit = hit
	return result, nil
}

// BlockHeading labels a block in pages and tables.
func BlockHeading(b markdown.Block) string {
	return fmt.Sprintf("Block %d (line %d)", b.Index+1, b.Line)
}
