package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orthogram/orthogram/pkg/cache"
	"github.com/orthogram/orthogram/pkg/ddf"
	"github.com/orthogram/orthogram/pkg/diagram"
	"github.com/orthogram/orthogram/pkg/render"
	"github.com/orthogram/orthogram/pkg/render/debugdot"
	"github.com/orthogram/orthogram/pkg/route"
)

type renderOpts struct {
	output   string
	formats  []string
	tracks   int
	scale    float64
	noCache  bool
	debugDot string
}

// newRenderCmd builds the "render" command: load a DDF document, run it
// through pkg/diagram's two-stage pipeline (Build then Render), and
// write the resulting artifact(s) to disk.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DDF document to SVG, PNG or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().IntVar(&opts.tracks, "tracks", 0, "refinement lattice sub-tracks per block edge (default from pkg/refine)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster output scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the diagram and artifact caches")
	cmd.Flags().StringVar(&opts.debugDot, "debug-dot", "", "write a Graphviz SVG of the refinement lattice and routes to this path")

	return cmd
}

func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	logger.Infof("Rendering %s", input)

	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	doc, err := ddf.Load(input)
	if err != nil {
		return err
	}

	backend, err := newCache(opts.noCache, cfg)
	if err != nil {
		return err
	}
	runner := diagram.NewRunner(backend, nil)
	runner.Logger = logger
	defer runner.Close()

	diagOpts := diagram.DefaultOptions()
	if opts.tracks > 0 {
		diagOpts.K = opts.tracks
	}
	if opts.scale > 0 {
		diagOpts.Scale = opts.scale
	}
	ddfHash := cache.Hash(source)

	var d render.Diagram
	var cached bool
	err = withProgress(func() error {
		p := newProgress(logger)
		result, hit, buildErr := runner.BuildWithCacheInfo(ctx, doc, ddfHash, diagOpts)
		if buildErr != nil {
			return buildErr
		}
		d, cached = result, hit
		p.done(fmt.Sprintf("Built diagram: %d blocks, %d connections", len(result.Blocks), len(result.Connections)))
		return nil
	})
	if err != nil {
		return err
	}
	printDiagramStats(len(d.Blocks), len(d.Connections), cached)

	if opts.debugDot != "" {
		if err := writeDebugDot(doc, diagOpts, opts.debugDot); err != nil {
			return fmt.Errorf("debug-dot: %w", err)
		}
		printFile(opts.debugDot)
	}

	base := basePath(opts.output, input)
	single := len(opts.formats) == 1
	for _, format := range opts.formats {
		path := base + "." + format
		if single && opts.output != "" && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := renderFormatToFile(ctx, runner, d, format, path, opts.scale); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// writeDebugDot reruns the grid/refine/route stages for doc and writes a
// Graphviz SVG of the resulting lattice, with the first connection's
// route highlighted, to path. It is a diagnostic side channel and does
// not touch the diagram/artifact caches.
func writeDebugDot(doc ddf.Document, opts diagram.Options, path string) error {
	rg, routes, err := diagram.BuildDebugGraph(doc, opts)
	if err != nil {
		return err
	}
	var highlight *route.Route
	if len(routes) > 0 {
		highlight = &routes[0]
	}
	svg, err := debugdot.RenderSVG(debugdot.ToDOT(rg, highlight))
	if err != nil {
		return err
	}
	return os.WriteFile(path, svg, 0o644)
}

func renderFormatToFile(ctx context.Context, runner *diagram.Runner, d render.Diagram, format, path string, scale float64) error {
	logger := loggerFromContext(ctx)

	data, hit, err := runner.RenderWithCacheInfo(ctx, d, format, scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	status := "fresh"
	if hit {
		status = "cached"
	}
	logger.Infof("Generated %s (%s, %d bytes)", path, status, len(data))
	printFile(path)
	return nil
}
