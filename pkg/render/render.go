package render

import (
	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/layout"
)

// Render lays out and paints the graph into a grid of styled cells. It is
// a pure function of its inputs: the graph is not mutated, all derived
// state is call-local, and the same graph and configuration always produce
// an identical grid. Render is total for any well-formed graph, including
// empty, self-looping, and fully cyclic ones.
func Render(g *graph.Graph, cfg Config) *Grid {
	cfg = cfg.withDefaults()
	if g.IsEmpty() {
		return &Grid{}
	}

	cyc := layout.BreakCycles(g)

	var skip map[int]bool
	if cfg.ReduceEdges {
		skip = layout.RedundantEdges(g, cyc)
	}

	layers := layout.AssignLayers(g, cyc, cfg.MaxPerLayer)
	cols := layout.AllocateColumns(g, layers, cfg.MinNodeWidth, cfg.HorizontalSpacing, cfg.WidthFunc)

	r := newRouter(g, cfg, cyc, layers, cols, skip)
	return compose(g, cfg, layers, r.geo, r.routeAll())
}
