package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/anim"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/lifecycle"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/nodelink"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render/sink"
	"github.com/matzehuels/fightmetrics/pkg/config"
	"github.com/matzehuels/fightmetrics/pkg/errors"
)

// Output formats.
const (
	formatSVG      = "svg"      // animated frame as SVG
	formatPNG      = "png"      // animated frame as PNG
	formatJSON     = "json"     // graph structure
	formatDOT      = "dot"      // graph as Graphviz source
	formatNodelink = "nodelink" // graph laid out by Graphviz, as SVG
)

var validFormats = []string{formatSVG, formatPNG, formatJSON, formatDOT, formatNodelink}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path
	formats []string // output formats
	ticks   int      // frames to advance before capturing
}

// frame is one captured instant of a headless instance.
type frame struct {
	cfg    config.Config
	graph  graph.Graph
	stats  graph.Stats
	offset float64
	svg    *sink.SVG
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var flags configFlags
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of the background to files",
		Long: `Render generates a graph, optionally advances the scroll animation by
--ticks frames, and writes the captured frame in each requested format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.ticks < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--ticks must not be negative")
			}
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, dot, nodelink (comma-separated)")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "animation frames to advance before capturing")

	return cmd
}

// validateFormats ensures all formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

func runRender(ctx context.Context, cfg config.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	fr := capture(ctx, cfg, opts.ticks)
	logger.Debug("captured frame", "ticks", opts.ticks, "offset", fr.offset)

	paths := outputPaths(opts.output, opts.formats)
	for _, f := range opts.formats {
		data, err := encodeFrame(ctx, fr, f)
		if err != nil {
			return err
		}
		if err := os.WriteFile(paths[f], data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeRender, err, "write %s", paths[f])
		}
	}

	prog.done("Rendered frame", "formats", len(opts.formats), "ticks", opts.ticks)
	printSuccess("Rendered %d file(s)", len(opts.formats))
	printStats(fr.stats.Nodes, fr.stats.Edges, fr.stats.Forced)
	for _, f := range opts.formats {
		printFile(paths[f])
	}
	return nil
}

// capture mounts a headless instance, steps it ticks frames and snapshots it.
func capture(ctx context.Context, cfg config.Config, ticks int) frame {
	sched := &anim.ManualScheduler{}
	svg := sink.NewSVG(cfg.Width, cfg.Height)
	m := lifecycle.New(lifecycle.Options{
		Config:    cfg,
		Scheduler: sched,
		Logger:    loggerFromContext(ctx),
	})
	m.Mount(lifecycle.NewViewport(svg, cfg.Bounds()))
	defer m.Unmount()

	sched.Run(ticks)
	m.Paint()
	return frame{cfg: cfg, graph: m.Graph(), stats: m.Stats(), offset: m.Offset(), svg: svg}
}

func encodeFrame(ctx context.Context, fr frame, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case formatSVG:
		return fr.svg.Bytes(), nil
	case formatPNG:
		png := sink.NewPNG(fr.cfg.Width, fr.cfg.Height)
		render.RenderWrapped(png, fr.graph, fr.offset, fr.cfg.Width, fr.cfg.Style())
		if err := png.Encode(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
		}
	case formatJSON:
		if err := graph.WriteJSON(&buf, fr.graph); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "encode json")
		}
	case formatDOT:
		buf.WriteString(nodelink.ToDOT(fr.graph))
	case formatNodelink:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(fr.graph))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "render node-link diagram")
		}
		return data, nil
	}
	return buf.Bytes(), nil
}

// outputPaths maps each format to its file. A single format honours output
// verbatim; multiple formats share output (minus extension) as base path.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := appName
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + extension(f)
	}
	return paths
}

func extension(format string) string {
	if format == formatNodelink {
		return ".nodelink.svg"
	}
	return "." + format
}
