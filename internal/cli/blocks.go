package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/pipeline"
)

// blocksCommand creates the blocks command, which lists the tree blocks of a
// markdown document.
func (c *CLI) blocksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks [file.md|-]",
		Short: "List the tree blocks of a markdown document",
		Long: "List every ```tree fenced block of a markdown document with its line, " +
			"resolved format, size and parse status.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBlocks(cmd, inputArg(args))
		},
	}
}

func (c *CLI) runBlocks(cmd *cobra.Command, input string) error {
	content, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.ExecuteMarkdown(cmd.Context(), content, pipeline.Options{
		Format:    c.config().Format,
		Collapsed: c.config().Collapsed,
		Logger:    loggerFromContext(cmd.Context()),
	})
	if err != nil {
		return err
	}
	if len(res.Blocks) == 0 {
		c.ui().info("No tree blocks found")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), blocksTable(res))
	if n := res.Failed(); n > 0 {
		c.ui().warning("%d of %d blocks failed to parse", n, len(res.Blocks))
	}
	return nil
}

// blocksTable renders one row per block.
func blocksTable(res *pipeline.MarkdownResult) string {
	rows := make([][]string, 0, len(res.Blocks))
	for _, b := range res.Blocks {
		format, nodes, dirs, status := "-", "-", "-", iconSuccess
		if b.Err != nil {
			status = iconError + " " + errors.UserMessage(b.Err)
		} else {
			format = b.Result.Format.String()
			nodes = strconv.Itoa(b.Result.Stats.NodeCount)
			dirs = strconv.Itoa(b.Result.Stats.DirCount)
		}
		rows = append(rows, []string{
			strconv.Itoa(b.Block.Index + 1),
			strconv.Itoa(b.Block.Line),
			format,
			nodes,
			dirs,
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Line", "Format", "Nodes", "Dirs", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(res.Blocks) {
				return lipgloss.NewStyle()
			}
			if res.Blocks[row].Err != nil {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
