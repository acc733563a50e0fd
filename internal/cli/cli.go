package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/buildinfo"
	"github.com/matzehuels/treeview/pkg/cache"
	"github.com/matzehuels/treeview/pkg/config"
	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/tree"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treeview"

	// stdinName names standard input in arguments and derived file names.
	stdinName = "-"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// status receives transient progress output such as spinners.
	status io.Writer

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), status: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Treeview renders file trees as collapsible outlines",
		Long: `Treeview parses file trees written as ASCII art (the output of the tree
command) or JSON and renders them as collapsible outlines: interactive HTML
pages, a terminal view, node-link diagrams or normalized text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/treeview/config.toml)")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.blocksCommand())
	root.AddCommand(c.pathsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded settings, or the defaults before loading.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		d := config.Defaults()
		return &d
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cch, nil, c.Logger)
	ttl, err := c.config().TTL()
	if err != nil {
		return nil, err
	}
	runner.TTL = ttl
	return runner, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, defaulting to the user
// cache dir (~/.cache/treeview on Linux).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config().CacheDir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// inputFormat returns the --format flag, falling back to the configured
// default when the flag was not set.
func (c *CLI) inputFormat(cmd *cobra.Command, flag string) string {
	if cmd.Flags().Changed("format") {
		return flag
	}
	return c.config().Format
}

// ignorePatterns merges configured ignore patterns with the --ignore flag.
func (c *CLI) ignorePatterns(flag []string) []string {
	return append(append([]string{}, c.config().Ignore...), flag...)
}

// collapsed returns the --collapsed flag, falling back to the configured
// default state.
func (c *CLI) collapsed(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("collapsed") {
		return flag
	}
	return c.config().Collapsed
}

// readInput reads the named file, or standard input for "" and "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == stdinName {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// inputArg returns the optional file argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdinName
	}
	return args[0]
}

// isMarkdown reports whether path names a markdown file.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// parseForest parses source with the CLI's format and ignore settings.
func (c *CLI) parseForest(cmd *cobra.Command, source, format string, ignore []string) ([]*tree.Node, tree.Format, error) {
	return pipeline.Parse(source, pipeline.Options{
		Format: c.inputFormat(cmd, format),
		Ignore: c.ignorePatterns(ignore),
		Logger: c.Logger,
	})
}
