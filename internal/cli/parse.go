package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/tree"
)

// Targets for `treeview parse --to`.
const (
	toJSON  = "json"
	toASCII = "ascii"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	format string   // input format: auto, ascii, json
	to     string   // output encoding: json or ascii
	output string   // output file; stdout when empty
	ignore []string // gitignore-style patterns to drop
}

// parseCommand creates the parse command, which normalizes a tree to JSON or
// ASCII.
func (c *CLI) parseCommand() *cobra.Command {
	opts := parseOpts{to: toJSON}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a file tree and print it as JSON or ASCII",
		Long: `Parse a file tree written as ASCII art or JSON and print the normalized
forest. With no file, or "-", the tree is read from standard input.`,
		Example: `  tree -F src | treeview parse
  treeview parse layout.txt --to ascii --ignore '*.log'
  treeview parse tree.json --format json -o normalized.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format: auto (default), ascii, json")
	cmd.Flags().StringVar(&opts.to, "to", opts.to, "output encoding: json, ascii")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "gitignore-style patterns to drop (comma-separated)")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, input string, opts *parseOpts) error {
	logger := loggerFromContext(cmd.Context())

	if opts.to != toJSON && opts.to != toASCII {
		return errors.New(errors.ErrCodeInvalidOutput, "invalid --to %q (must be 'json' or 'ascii')", opts.to)
	}

	source, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	prog := newProgress(logger)
	forest, format, err := c.parseForest(cmd, source, opts.format, opts.ignore)
	if err != nil {
		return err
	}
	nodes, dirs := tree.Count(forest)
	logger.Debug("parsed tree", "format", format, "roots", len(forest), "nodes", nodes, "dirs", dirs)

	data, err := encodeForest(forest, opts.to)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d nodes", nodes))
	c.ui().file(opts.output)
	return nil
}

func encodeForest(forest []*tree.Node, to string) ([]byte, error) {
	if to == toASCII {
		return []byte(tree.DrawASCII(forest)), nil
	}
	return tree.MarshalJSON(forest)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout if path is empty.
// The caller must close the returned writer.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
