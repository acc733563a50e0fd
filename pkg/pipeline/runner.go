package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeview/pkg/cache"
	"github.com/matzehuels/treeview/pkg/observability"
	"github.com/matzehuels/treeview/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs parse → render for one source block.
func (r *Runner) Execute(ctx context.Context, source string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	parseStart := time.Now()
	forest, format, parseHit, err := r.ParseWithCacheInfo(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	result.Forest = forest
	result.Format = format
	result.ForestHash = ForestHash(forest)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount, result.Stats.DirCount = tree.Count(forest)
	result.CacheInfo.ParseHit = parseHit

	opts.Logger.Info("parsed tree",
		"format", format,
		"roots", len(forest),
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.ParseTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.renderHashed(ctx, forest, result.ForestHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"outputs", opts.Outputs,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo parses source with caching and returns cache hit info.
// Cached forests are stored in the JSON encoding.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, source string, opts Options) ([]*tree.Node, tree.Format, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, tree.FormatAuto, false, err
	}

	format := opts.TreeFormat()
	if format == tree.FormatAuto {
		format = tree.Detect(source)
	}
	cacheKey := r.Keyer.ForestKey(source, format.String(), opts.Ignore)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if forest, err := tree.ParseJSON(string(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "forest")
				return forest, format, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "forest")

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, format.String(), len(source))
	start := time.Now()

	opts.Format = format.String()
	forest, _, err := Parse(source, opts)

	nodes, _ := tree.Count(forest)
	hooks.OnParseComplete(ctx, format.String(), nodes, time.Since(start), err)
	if err != nil {
		return nil, format, false, err
	}

	if data, err := tree.MarshalJSON(forest); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLForest)); err != nil {
			r.Logger.Debug("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "forest", len(data))
		}
	}

	return forest, format, false, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Parse(ctx context.Context, source string, opts Options) ([]*tree.Node, error) {
	forest, _, _, err := r.ParseWithCacheInfo(ctx, source, opts)
	return forest, err
}

// RenderWithCacheInfo generates artifacts with caching and returns true when
// every artifact came from the cache. Only missing outputs are rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, forest []*tree.Node, opts Options) (map[string][]byte, bool, error) {
	return r.renderHashed(ctx, forest, ForestHash(forest), opts)
}

func (r *Runner) renderHashed(ctx context.Context, forest []*tree.Node, forestHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Outputs))
	var missing []string
	for _, output := range opts.Outputs {
		key := r.Keyer.ArtifactKey(forestHash, opts.ArtifactKeyOpts(output))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[output] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, output)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	for _, output := range missing {
		data, err := RenderOutput(ctx, forest, output, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
			return nil, false, err
		}
		artifacts[output] = data

		key := r.Keyer.ArtifactKey(forestHash, opts.ArtifactKeyOpts(output))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			r.Logger.Debug("cache write failed", "output", output, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	hooks.OnRenderComplete(ctx, missing, time.Since(start), nil)

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, forest []*tree.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, forest, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// ForestHash returns the content hash of a forest's JSON encoding.
func ForestHash(forest []*tree.Node) string {
	data, err := tree.MarshalJSON(forest)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
