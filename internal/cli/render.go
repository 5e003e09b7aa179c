package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgraph/pkg/cache"
	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
	rgio "github.com/matzehuels/roomgraph/pkg/io"
	"github.com/matzehuels/roomgraph/pkg/render/nodelink"
	"github.com/matzehuels/roomgraph/pkg/roomgraph"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"

	renderTTL = 7 * 24 * time.Hour // rendered SVGs depend only on their DOT source
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from the graph name when empty
	format   string // "svg" or "dot"
	detailed bool   // show position, size and child count in node labels
	fromFile bool   // the argument is a JSON document rather than a stored graph
	noCache  bool   // bypass the render cache
}

// renderCommand draws a graph as a node-link diagram.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <graph>",
		Short: "Render a graph as a node-link diagram",
		Long: `Render a graph as a node-link diagram through Graphviz. Nodes are colored
by kind: the entrance green, the boss room red, corridors small and grey,
unassigned nodes dashed. SVG output is cached by its DOT source.`,
		Example: `  roomgraph render level1
  roomgraph render level1 --detailed -o level1.svg
  roomgraph render --file level1.json --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatSVG && opts.format != formatDOT {
				return rgerrors.New(rgerrors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg' or 'dot')", opts.format)
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <graph>.<format>, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show position, size and children in labels")
	cmd.Flags().BoolVar(&opts.fromFile, "file", false, "read the graph from a JSON document")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, arg string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, name, err := c.loadForRender(ctx, arg, opts.fromFile)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded graph: %d nodes, %d edges", g.Len(), g.EdgeCount())

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})
	data := []byte(dot)
	cached := false
	if opts.format == formatSVG {
		data, cached, err = renderCached(ctx, dot, opts.noCache)
		if err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = name + "." + opts.format
	}
	if err := writeOutput(path, data); err != nil {
		return err
	}
	if path != "-" {
		prog.done("Rendered", "graph", name, "format", opts.format, "cached", cached)
		printFile(path)
		printStats(g.Len(), g.EdgeCount(), cached)
	}
	return nil
}

// loadForRender returns the graph and the base name used for output files.
func (c *CLI) loadForRender(ctx context.Context, arg string, fromFile bool) (*roomgraph.Graph, string, error) {
	if !fromFile {
		s, err := c.openSession(ctx, arg)
		if err != nil {
			return nil, "", err
		}
		defer s.close()
		return s.g, arg, nil
	}

	if err := rgerrors.ValidatePath(arg); err != nil {
		return nil, "", err
	}
	cfg, err := c.config()
	if err != nil {
		return nil, "", err
	}
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, "", err
	}
	g, err := rgio.ImportJSON(arg, cat, graphOptions(cfg)...)
	if err != nil {
		return nil, "", importError(err)
	}
	return g, strings.TrimSuffix(arg, filepath.Ext(arg)), nil
}

// renderCached renders dot to SVG, consulting the render cache first.
func renderCached(ctx context.Context, dot string, noCache bool) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)

	c, err := newCache(noCache)
	if err != nil {
		logger.Warnf("Render cache unavailable: %v", err)
		c = cache.NewNullCache()
	}
	defer c.Close()

	key := cache.RenderKey([]byte(dot), formatSVG)
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	spin := startSpinner(ctx, os.Stderr, "Rendering SVG...")
	svg, err := nodelink.RenderSVG(dot)
	spin.Stop()
	if err != nil {
		return nil, false, rgerrors.Wrap(rgerrors.ErrCodeInternal, err, "render svg")
	}

	if err := c.Set(ctx, key, svg, renderTTL); err != nil {
		logger.Debugf("Render cache write failed: %v", err)
	}
	return svg, false, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := rgerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return rgerrors.Wrap(rgerrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func graphOptions(cfg Config) []roomgraph.Option {
	if cfg.MaxChildCorridors > 0 {
		return []roomgraph.Option{roomgraph.WithMaxChildCorridors(cfg.MaxChildCorridors)}
	}
	return nil
}

// importError codes a document read failure.
func importError(err error) error {
	if rgerrors.GetCode(err) != "" {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) {
		return rgerrors.Wrap(rgerrors.ErrCodeNotFound, err, "graph document not found")
	}
	return rgerrors.Wrap(rgerrors.ErrCodeInvalidFormat, err, "read graph document")
}
