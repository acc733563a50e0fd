// Package pipeline runs the parse → render flow shared by the CLI and the
// HTTP API.
//
// The pipeline has two stages:
//
//  1. Parse: turn a source block into a forest (ASCII or JSON), then drop
//     paths matching the ignore patterns
//  2. Render: produce outputs from the forest (html, svg, dot, ascii, json)
//
// Both stages are cached through a [cache.Cache] keyed by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, source, pipeline.Options{
//	    Outputs: []string{"html", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	page := result.Artifacts["html"]
//
// Markdown documents are handled block by block:
//
//	res, err := runner.ExecuteMarkdown(ctx, content, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeview/pkg/cache"
	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTitle is the HTML page title when none is given.
	DefaultTitle = "File tree"

	// DefaultConcurrency bounds how many markdown blocks are processed at once.
	DefaultConcurrency = 4
)

// Output constants.
const (
	OutputHTML  = "html"
	OutputSVG   = "svg"
	OutputDOT   = "dot"
	OutputASCII = "ascii"
	OutputJSON  = "json"
)

// DefaultOutput is rendered when no output is requested.
const DefaultOutput = OutputHTML

// ValidOutputs is the set of supported outputs.
var ValidOutputs = map[string]bool{
	OutputHTML:  true,
	OutputSVG:   true,
	OutputDOT:   true,
	OutputASCII: true,
	OutputJSON:  true,
}

// ContentTypes maps outputs to their MIME types.
var ContentTypes = map[string]string{
	OutputHTML:  "text/html; charset=utf-8",
	OutputSVG:   "image/svg+xml",
	OutputDOT:   "text/vnd.graphviz; charset=utf-8",
	OutputASCII: "text/plain; charset=utf-8",
	OutputJSON:  "application/json",
}

// Extensions maps outputs to file extensions.
var Extensions = map[string]string{
	OutputHTML:  ".html",
	OutputSVG:   ".svg",
	OutputDOT:   ".dot",
	OutputASCII: ".txt",
	OutputJSON:  ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Format  string   `json:"format,omitempty"` // "", "auto", "ascii" or "json"
	Ignore  []string `json:"ignore,omitempty"` // gitignore-style patterns
	Refresh bool     `json:"refresh,omitempty"`

	// Render options
	Outputs    []string `json:"outputs,omitempty"`
	Collapsed  bool     `json:"collapsed,omitempty"` // default state of directories in html
	Detailed   bool     `json:"detailed,omitempty"`
	Horizontal bool     `json:"horizontal,omitempty"`
	Title      string   `json:"title,omitempty"`

	// Concurrency bounds parallel markdown block processing.
	Concurrency int `json:"-"`

	// Logger receives progress messages. Defaults to a discarding logger.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the parsed (and pruned) forest.
	Forest []*tree.Node

	// Format is the parser that produced Forest.
	Format tree.Format

	// ForestHash is the content hash of the forest's JSON encoding.
	ForestHash string

	// Artifacts contains rendered outputs keyed by output name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	DirCount   int
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the forest came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateOutput checks that an output is valid.
func ValidateOutput(output string) error {
	if !ValidOutputs[output] {
		return errors.New(errors.ErrCodeInvalidOutput,
			"invalid output: %q (must be one of: html, svg, dot, ascii, json)", output)
	}
	return nil
}

// ValidateOutputs checks that all outputs are valid.
func ValidateOutputs(outputs []string) error {
	for _, o := range outputs {
		if err := ValidateOutput(o); err != nil {
			return err
		}
	}
	return nil
}

// ParseOutputs splits a comma-separated output list, dropping blanks and
// duplicates.
func ParseOutputs(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the parse options.
func (o *Options) ValidateForParse() error {
	if _, err := tree.ParseFormat(o.Format); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Outputs) == 0 {
		o.Outputs = []string{DefaultOutput}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateOutputs(o.Outputs)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// TreeFormat returns the parsed Format. Call after ValidateForParse.
func (o *Options) TreeFormat() tree.Format {
	f, _ := tree.ParseFormat(o.Format)
	return f
}

// ArtifactKeyOpts returns cache key options for one output.
func (o *Options) ArtifactKeyOpts(output string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Output: output}
	switch output {
	case OutputHTML:
		k.Collapsed = o.Collapsed
		k.Title = o.Title
	case OutputSVG, OutputDOT:
		k.Detailed = o.Detailed
		k.Horizontal = o.Horizontal
	}
	return k
}

// String describes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("format=%s outputs=%s", o.TreeFormat(), strings.Join(o.Outputs, ","))
}
