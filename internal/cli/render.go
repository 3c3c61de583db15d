package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/termdag/pkg/errors"
	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/observability"
	"github.com/matzehuels/termdag/pkg/render"
	"github.com/matzehuels/termdag/pkg/render/dot"
	"github.com/matzehuels/termdag/pkg/render/term"
)

const (
	formatText = "text" // character grid for terminals
	formatDOT  = "dot"  // Graphviz DOT source
	formatSVG  = "svg"  // SVG rendered via Graphviz
)

const (
	placementBelow = "below"
	placementAbove = "above"
)

// renderOpts holds the command-line flags for the render command.
// These options control layout spacing, glyph selection, and output formats.
type renderOpts struct {
	output      string // output file path ("" or "-" means stdout)
	format      string // output format: "text", "dot", "svg"
	minWidth    int    // minimum node box width in columns
	hSpacing    int    // minimum columns between adjacent nodes
	vSpacing    int    // minimum rows between adjacent layers
	feedback    string // feedback edge placement: "below" or "above"
	unicode     bool   // use box-drawing glyphs instead of ASCII
	maxPerLayer int    // cap on nodes per layer (0 = unlimited)
	reduce      bool   // drop transitively redundant edges
	color       bool   // colorize text output per edge
}

// newRenderCmd creates the render command for drawing graph files.
// It reads a graph from a JSON or TOML file and writes the diagram in the
// requested format.
//
// Default settings:
//   - format: text (character grid)
//   - minimum node width: 3, spacing: 3 columns / 2 rows
//   - feedback placement: below the source layer
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format:   formatText,
		minWidth: 3,
		hSpacing: 3,
		vSpacing: 2,
		feedback: placementBelow,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a graph file as a terminal diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if err := validatePlacement(opts.feedback); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), dot, svg")
	cmd.Flags().IntVar(&opts.minWidth, "min-width", opts.minWidth, "minimum node width in columns")
	cmd.Flags().IntVar(&opts.hSpacing, "hspacing", opts.hSpacing, "minimum columns between nodes")
	cmd.Flags().IntVar(&opts.vSpacing, "vspacing", opts.vSpacing, "minimum rows between layers")
	cmd.Flags().StringVar(&opts.feedback, "feedback", opts.feedback, "feedback edge placement: below (default), above")
	cmd.Flags().BoolVar(&opts.unicode, "unicode", false, "use box-drawing glyphs")
	cmd.Flags().IntVar(&opts.maxPerLayer, "max-per-layer", 0, "maximum nodes per layer (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", false, "drop transitively redundant edges")
	cmd.Flags().BoolVar(&opts.color, "color", false, "colorize text output per edge")

	return cmd
}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	switch f {
	case formatText, formatDOT, formatSVG:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text', 'dot', or 'svg')", f)
	}
}

// validatePlacement checks that the feedback placement is valid.
func validatePlacement(p string) error {
	switch p {
	case placementBelow, placementAbove:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidPlacement, "invalid feedback placement: %s (must be 'below' or 'above')", p)
	}
}

// buildConfig translates command-line flags into a render configuration.
func buildConfig(opts *renderOpts) render.Config {
	cfg := render.DefaultConfig()
	cfg.MinNodeWidth = opts.minWidth
	cfg.HorizontalSpacing = opts.hSpacing
	cfg.VerticalSpacing = opts.vSpacing
	cfg.MaxPerLayer = opts.maxPerLayer
	cfg.ReduceEdges = opts.reduce
	if opts.feedback == placementAbove {
		cfg.FeedbackPlacement = render.PlaceAbove
	}
	if opts.unicode {
		cfg.Glyphs = render.UnicodeGlyphs()
	}
	return cfg
}

// loadGraph reads and validates a graph file, logging its size.
func loadGraph(ctx context.Context, input string) (*graph.Graph, error) {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadFile(input)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", input)
		}
		return nil, err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	return g, nil
}

// runRender loads the graph from input and writes it in the requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	data, err := renderGraph(ctx, g, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d nodes as %s", g.NodeCount(), opts.format))

	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		printSuccess("Generated %s", opts.output)
		printStats(g.NodeCount(), g.EdgeCount())
	}
	return nil
}

// renderGraph dispatches to the appropriate backend based on the format.
func renderGraph(ctx context.Context, g *graph.Graph, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)
	start := time.Now()

	observability.Render().OnRenderStart(ctx, opts.format)
	data, err := func() ([]byte, error) {
		switch opts.format {
		case formatText:
			return renderText(ctx, g, opts)
		case formatDOT:
			logger.Debug("Generating DOT source")
			return []byte(dot.ToDOT(g)), nil
		case formatSVG:
			logger.Debug("Rendering SVG via Graphviz")
			return dot.RenderSVG(ctx, dot.ToDOT(g))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", opts.format)
		}
	}()
	observability.Render().OnRenderComplete(ctx, opts.format, time.Since(start), err)

	return data, err
}

// renderText runs the layout pipeline and serializes the grid, optionally
// with per-edge colors.
func renderText(ctx context.Context, g *graph.Graph, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	observability.Render().OnLayoutStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	grid := render.Render(g, buildConfig(opts))
	observability.Render().OnLayoutComplete(ctx, grid.Rows(), grid.Cols(), time.Since(start))
	logger.Debugf("Grid computed: %d rows x %d cols", grid.Rows(), grid.Cols())

	var wopts []term.Option
	if opts.color {
		wopts = append(wopts, term.WithColor())
	}

	var b strings.Builder
	if err := term.New(wopts...).Write(&b, grid); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// writeOutput writes data to the output path, or to stdout when the path is
// empty or "-". Parent directories are created as needed.
func writeOutput(output string, data []byte) error {
	if output == "" || output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(output, data, 0o644)
}
