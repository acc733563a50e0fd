package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/pipeline"
)

// defaultBase names outputs rendered from standard input.
const defaultBase = "tree"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single output) or base path (several)
	outputs    string   // comma-separated outputs: html, svg, dot, ascii, json
	format     string   // input format: auto, ascii, json
	title      string   // html page title
	ignore     []string // gitignore-style patterns to drop
	collapsed  bool     // start directories collapsed
	detailed   bool     // node-link diagrams show node types and depths
	horizontal bool     // node-link diagrams flow left to right
	markdown   bool     // treat the input as markdown with tree blocks
	noCache    bool     // bypass the artifact cache
	refresh    bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a file tree to HTML, SVG, DOT, ASCII or JSON",
		Long: `Render a file tree to one or more artifacts. The html output is a
self-contained page with a collapsible outline; svg and dot are node-link
diagrams. Markdown input (.md files or --markdown) renders every tree block,
combining them into one html page.`,
		Example: `  treeview render layout.txt
  treeview render layout.txt -t html,svg -o docs/layout
  treeview render README.md --collapsed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single output) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.outputs, "type", "t", "", "output(s): html (default), svg, dot, ascii, json (comma-separated)")
	cmd.Flags().StringVar(&opts.format, "format", "", "input format: auto (default), ascii, json")
	cmd.Flags().StringVar(&opts.title, "title", "", "html page title")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "gitignore-style patterns to drop (comma-separated)")
	cmd.Flags().BoolVar(&opts.collapsed, "collapsed", false, "start directories collapsed")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node types and depths (svg, dot)")
	cmd.Flags().BoolVar(&opts.horizontal, "horizontal", false, "lay diagrams out left to right (svg, dot)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "treat input as markdown (default for .md files)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	return cmd
}

// pipelineOptions builds pipeline options from flags and configured defaults.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	outputs := c.config().Outputs
	if cmd.Flags().Changed("type") {
		outputs = pipeline.ParseOutputs(opts.outputs)
	}
	if err := pipeline.ValidateOutputs(outputs); err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Format:     c.inputFormat(cmd, opts.format),
		Ignore:     c.ignorePatterns(opts.ignore),
		Refresh:    opts.refresh,
		Outputs:    outputs,
		Collapsed:  c.collapsed(cmd, opts.collapsed),
		Detailed:   opts.detailed,
		Horizontal: opts.horizontal,
		Title:      opts.title,
		Logger:     loggerFromContext(cmd.Context()),
	}, nil
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	popts, err := c.pipelineOptions(cmd, opts)
	if err != nil {
		return err
	}
	source, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	base := basePath(opts.output, input)
	single := len(popts.Outputs) == 1 && opts.output != ""

	if opts.markdown || isMarkdown(input) {
		return c.renderMarkdown(ctx, runner, source, base, single, opts.output, popts)
	}
	return c.renderSource(ctx, runner, source, base, single, opts.output, popts)
}

func (c *CLI) renderSource(ctx context.Context, runner *pipeline.Runner, source, base string, single bool, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := newSpinner(ctx, c.status, "Rendering "+strings.Join(opts.Outputs, ", "))
	spin.Start()
	result, err := runner.Execute(ctx, source, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.Outputs, ", ")))

	c.ui().success("Rendered %s tree", result.Format)
	c.ui().stats(result.Stats.NodeCount, result.Stats.DirCount, result.CacheInfo.ParseHit && result.CacheInfo.RenderHit)
	for _, out := range opts.Outputs {
		path := output
		if !single {
			path = base + pipeline.Extensions[out]
		}
		if err := writeFile(path, result.Artifacts[out]); err != nil {
			return err
		}
		c.ui().file(path)
	}
	return nil
}

func (c *CLI) renderMarkdown(ctx context.Context, runner *pipeline.Runner, content, base string, single bool, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	res, err := runner.ExecuteMarkdown(ctx, content, opts)
	if err != nil {
		return err
	}
	if len(res.Blocks) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no tree blocks found (expected ```tree fences)")
	}
	prog.done(fmt.Sprintf("Processed %d tree blocks", len(res.Blocks)))

	c.ui().success("Rendered %d tree blocks", len(res.Blocks))
	for _, b := range res.Blocks {
		if b.Err != nil {
			c.ui().warning("%s: %s", pipeline.BlockHeading(b.Block), errors.UserMessage(b.Err))
		}
	}

	for _, out := range opts.Outputs {
		if out == pipeline.OutputHTML {
			path := output
			if !single {
				path = base + pipeline.Extensions[out]
			}
			if err := writeFile(path, res.Page); err != nil {
				return err
			}
			c.ui().file(path)
			continue
		}
		for _, b := range res.Blocks {
			if b.Err != nil {
				continue
			}
			path := fmt.Sprintf("%s_%d%s", base, b.Block.Index+1, pipeline.Extensions[out])
			if err := writeFile(path, b.Result.Artifacts[out]); err != nil {
				return err
			}
			c.ui().file(path)
		}
	}

	if n := res.Failed(); n == len(res.Blocks) {
		return errors.New(errors.ErrCodeInvalidInput, "all %d tree blocks failed to parse", n)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; standard input
// yields "tree". A known output extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == stdinName {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range pipeline.Extensions {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
