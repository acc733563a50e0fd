package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/markdown"
	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/tree"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	format    string
	ignore    []string
	collapsed bool
	block     int // 1-based tree block of markdown input
}

// viewCommand creates the view command, an interactive terminal outline.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{block: 1}

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Browse a file tree as a collapsible outline in the terminal",
		Example: `  tree -F | treeview view
  treeview view layout.txt --collapsed
  treeview view README.md --block 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format: auto (default), ascii, json")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "gitignore-style patterns to drop (comma-separated)")
	cmd.Flags().BoolVar(&opts.collapsed, "collapsed", false, "start directories collapsed")
	cmd.Flags().IntVar(&opts.block, "block", opts.block, "tree block to show for markdown input")

	return cmd
}

func (c *CLI) runView(cmd *cobra.Command, input string, opts *viewOpts) error {
	source, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	model, err := c.outlineModel(cmd, input, source, opts)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if input == stdinName {
		// Standard input carried the tree, so keys come from the terminal.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	_, err = tea.NewProgram(model, progOpts...).Run()
	return err
}

// outlineModel parses the input into the model the view command runs.
func (c *CLI) outlineModel(cmd *cobra.Command, input, source string, opts *viewOpts) (OutlineModel, error) {
	title := appName
	if input != stdinName {
		title = filepath.Base(input)
	}
	collapsed := c.collapsed(cmd, opts.collapsed)

	if isMarkdown(input) {
		doc, err := markdown.Parse(source)
		if err != nil {
			return OutlineModel{}, err
		}
		if opts.block < 1 || opts.block > len(doc.Blocks) {
			return OutlineModel{}, errors.New(errors.ErrCodeInvalidInput,
				"block %d out of range (document has %d tree blocks)", opts.block, len(doc.Blocks))
		}
		b := doc.Blocks[opts.block-1]
		collapsed = doc.Collapsed(collapsed)

		format := c.inputFormat(cmd, opts.format)
		if f := doc.DefaultFormat(); f != tree.FormatAuto {
			format = f.String()
		}
		if b.Format != tree.FormatAuto {
			format = b.Format.String()
		}
		title += " · " + pipeline.BlockHeading(b)
		forest, _, err := pipeline.Parse(b.Source, pipeline.Options{
			Format: format,
			Ignore: c.ignorePatterns(opts.ignore),
			Logger: c.Logger,
		})
		if err != nil {
			return OutlineModel{}, err
		}
		return NewOutlineModel(title, forest, collapsed), nil
	}

	forest, _, err := c.parseForest(cmd, source, opts.format, opts.ignore)
	if err != nil {
		return OutlineModel{}, err
	}
	return NewOutlineModel(title, forest, collapsed), nil
}
