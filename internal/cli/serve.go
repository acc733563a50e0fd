package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeview/pkg/cache"
	"github.com/matzehuels/treeview/pkg/observability"
	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/server"
	"github.com/matzehuels/treeview/pkg/store"
)

// connectTimeout bounds backend connection attempts at startup.
const connectTimeout = 15 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	mongoURI  string
	mongoDB   string
	storeDir  string
	noCache   bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Rendered artifacts are cached in Redis when --redis is
set and in the local cache directory otherwise. Saved trees live in MongoDB
when --mongo is set, in --store-dir when given, and in memory otherwise.`,
		Example: `  treeview serve --addr :8080
  treeview serve --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for saved trees")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database (default treeview)")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for saved trees when MongoDB is not used")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// withDefaults fills unset flags from the config file.
func (c *CLI) withDefaults(opts serveOpts) serveOpts {
	srv := c.config().Server
	if opts.addr == "" {
		opts.addr = srv.Addr
	}
	if opts.redisAddr == "" {
		opts.redisAddr = srv.RedisAddr
	}
	if opts.mongoURI == "" {
		opts.mongoURI = srv.MongoURI
	}
	if opts.mongoDB == "" {
		opts.mongoDB = srv.MongoDatabase
	}
	return opts
}

func (c *CLI) runServe(cmd *cobra.Command, flags *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts := c.withDefaults(*flags)

	observability.SetHTTPHooks(observability.NewLogHooks(logger))
	observability.SetCacheHooks(observability.NewLogHooks(logger))
	observability.SetPipelineHooks(observability.NewLogHooks(logger))
	defer observability.Reset()

	runner, err := c.serverRunner(ctx, opts)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, err := c.serverStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(server.Config{Runner: runner, Store: st, Logger: logger})
	c.ui().success("Serving on %s", StyleHighlight.Render(opts.addr))
	c.ui().nextStep("Render a tree", "curl --data-binary @tree.txt "+localURL(opts.addr)+"/api/v1/render")
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serverRunner(ctx context.Context, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redisAddr == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	rc, err := cache.NewRedisCache(connectCtx, cache.RedisConfig{Addr: opts.redisAddr})
	if err != nil {
		return nil, err
	}
	c.ui().detail("Cache: redis %s", opts.redisAddr)

	runner := pipeline.NewRunner(rc, nil, c.Logger)
	if runner.TTL, err = c.config().TTL(); err != nil {
		rc.Close()
		return nil, err
	}
	return runner, nil
}

func (c *CLI) serverStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		st, err := store.NewMongoStore(connectCtx, store.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
		if err != nil {
			return nil, err
		}
		c.ui().detail("Store: mongodb %s", opts.mongoDB)
		return st, nil
	case opts.storeDir != "":
		st, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		c.ui().detail("Store: %s", st.Path())
		return st, nil
	default:
		c.ui().detail("Store: memory")
		return store.NewMemoryStore(), nil
	}
}

// localURL turns a listen address into a URL for examples.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
