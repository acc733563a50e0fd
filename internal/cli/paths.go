package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/tree"
)

// pathsOpts holds the command-line flags for the paths command.
type pathsOpts struct {
	format string
	prefix string
	ignore []string
	dirs   bool // only directories
	files  bool // only files
}

// pathsCommand creates the paths command, which lists node paths.
func (c *CLI) pathsCommand() *cobra.Command {
	var opts pathsOpts

	cmd := &cobra.Command{
		Use:   "paths [file|-]",
		Short: "List the paths of a file tree",
		Long: `List every node path of a file tree in lexicographic order. With --prefix
only paths under the prefix are listed; a trailing slash restricts the listing
to the descendants of a directory.`,
		Example: `  treeview paths layout.txt --prefix src/
  tree -F | treeview paths --files`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dirs && opts.files {
				return fmt.Errorf("--dirs and --files are mutually exclusive")
			}
			return c.runPaths(cmd, inputArg(args), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "input format: auto (default), ascii, json")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "only list paths under this prefix")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "gitignore-style patterns to drop (comma-separated)")
	cmd.Flags().BoolVar(&opts.dirs, "dirs", false, "only list directories")
	cmd.Flags().BoolVar(&opts.files, "files", false, "only list files")

	return cmd
}

func (c *CLI) runPaths(cmd *cobra.Command, input string, opts *pathsOpts) error {
	source, err := readInput(cmd, input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	forest, _, err := c.parseForest(cmd, source, opts.format, opts.ignore)
	if err != nil {
		return err
	}

	entries := tree.NewIndex(forest).WalkPrefix(opts.prefix)
	loggerFromContext(cmd.Context()).Debug("indexed paths", "prefix", opts.prefix, "matches", len(entries))
	return writePaths(cmd.OutOrStdout(), entries, opts)
}

func writePaths(w io.Writer, entries []tree.Entry, opts *pathsOpts) error {
	for _, e := range entries {
		isDir := e.Node.IsDir()
		if (opts.dirs && !isDir) || (opts.files && isDir) {
			continue
		}
		line := e.Path
		if isDir {
			line += "/"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
