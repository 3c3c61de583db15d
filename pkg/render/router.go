package render

import (
	"fmt"
	"slices"

	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/layout"
)

// cellKind is the abstract shape of one path cell. The compositor maps
// kinds to glyphs and resolves overlaps; two kinds meeting in one cell of
// the same edge form a corner.
type cellKind int8

const (
	kindVertical cellKind = iota
	kindHorizontal
	kindArrowDown
	kindArrowRight
	kindLoop
)

// pathCell is one grid position of a routed edge.
type pathCell struct {
	row, col int
	kind     cellKind
}

// routedEdge is the cell path of a single original edge, from source
// anchor to target anchor, arrowhead included.
type routedEdge struct {
	edge     int
	feedback bool
	style    graph.Style
	cells    []pathCell
}

type viaKey struct {
	edge  int
	layer int
}

// geometry fixes every coordinate of the output grid: node rows, gap
// bands, column spans shifted right of the feedback margin, lane columns
// for multi-layer edges, and the margin lane of every feedback edge.
type geometry struct {
	rows    int
	width   int
	margin  int
	nodeRow []int                  // layer -> node row
	gapTop  []int                  // gap -> first row (len == layer count; last is the bottom band)
	gapH    []int                  // gap -> height
	span    map[string]layout.Span // absolute spans
	vias    map[viaKey]int         // lane column at an intermediate layer
	lane    map[int]int            // feedback edge -> margin column
}

// segment is one gap crossing of a forward edge.
type segment struct {
	edge   int
	gap    int
	sx, tx int
	final  bool
}

type router struct {
	g      *graph.Graph
	cfg    Config
	cyc    layout.Cycles
	layers layout.Layers
	skip   map[int]bool
	geo    geometry

	segs   map[int][]segment // gap -> segments, jog-ordered
	fexits map[int][]int     // gap -> feedback edge indices exiting there
	exitAt map[int]int       // feedback edge -> exit row
}

func newRouter(g *graph.Graph, cfg Config, cyc layout.Cycles, layers layout.Layers, cols layout.Columns, skip map[int]bool) *router {
	r := &router{
		g:      g,
		cfg:    cfg,
		cyc:    cyc,
		layers: layers,
		skip:   skip,
		segs:   make(map[int][]segment),
		fexits: make(map[int][]int),
		exitAt: make(map[int]int),
	}
	r.plan(cols)
	return r
}

// plan decides every coordinate before any cell is painted.
func (r *router) plan(cols layout.Columns) {
	count := r.layers.Count()
	geo := geometry{
		span: make(map[string]layout.Span, r.g.NodeCount()),
		vias: make(map[viaKey]int),
		lane: make(map[int]int),
	}

	// Margin lanes, one per feedback edge, shallowest target leftmost.
	var fb []int
	for _, idx := range r.cyc.Feedback {
		if !r.g.Edge(idx).IsLoop() {
			fb = append(fb, idx)
		}
	}
	slices.SortStableFunc(fb, func(a, b int) int {
		return r.layers.Index[r.g.Edge(a).To] - r.layers.Index[r.g.Edge(b).To]
	})
	if len(fb) > 0 {
		geo.margin = 2 * len(fb)
	}
	for k, idx := range fb {
		geo.lane[idx] = 2 * k
	}

	// Shift node spans right of the margin.
	for id, s := range cols.Span {
		geo.span[id] = layout.Span{Start: s.Start + geo.margin, End: s.End + geo.margin}
	}
	geo.width = geo.margin + cols.Width

	// Lane columns for edges passing through intermediate layers.
	for l := 1; l < count; l++ {
		var passing []int
		for idx, e := range r.g.Edges() {
			if r.skipped(idx) || e.IsLoop() || r.cyc.IsFeedback(idx) {
				continue
			}
			if r.layers.Index[e.From] < l && l < r.layers.Index[e.To] {
				passing = append(passing, idx)
			}
		}
		if len(passing) == 0 {
			continue
		}
		slices.SortStableFunc(passing, func(a, b int) int {
			return geo.span[r.g.Edge(a).To].Center() - geo.span[r.g.Edge(b).To].Center()
		})
		end := 0
		for _, id := range r.layers.Order[l] {
			if geo.span[id].End > end {
				end = geo.span[id].End
			}
		}
		for k, idx := range passing {
			x := end + r.cfg.HorizontalSpacing + 2*k
			geo.vias[viaKey{edge: idx, layer: l}] = x
			if x+1 > geo.width {
				geo.width = x + 1
			}
		}
	}

	// Room for self-loop annotations.
	for idx, e := range r.g.Edges() {
		if e.IsLoop() && !r.skipped(idx) {
			if end := geo.span[e.From].End + 2; end > geo.width {
				geo.width = end
			}
		}
	}

	// Gap crossings of every forward edge.
	for idx, e := range r.g.Edges() {
		if r.skipped(idx) || e.IsLoop() || r.cyc.IsFeedback(idx) {
			continue
		}
		a, b := r.layers.Index[e.From], r.layers.Index[e.To]
		for gi := a; gi < b; gi++ {
			seg := segment{edge: idx, gap: gi, final: gi == b-1}
			if gi == a {
				seg.sx = geo.span[e.From].Center()
			} else {
				seg.sx = geo.vias[viaKey{edge: idx, layer: gi}]
			}
			if gi == b-1 {
				seg.tx = geo.span[e.To].Center()
			} else {
				seg.tx = geo.vias[viaKey{edge: idx, layer: gi + 1}]
			}
			r.segs[gi] = append(r.segs[gi], seg)
		}
	}
	// Jogging segments run left-to-right by target column within a gap.
	for gi := range r.segs {
		slices.SortStableFunc(r.segs[gi], func(a, b segment) int {
			if a.tx != b.tx {
				return a.tx - b.tx
			}
			return a.edge - b.edge
		})
	}

	// Feedback exits, grouped by the gap they leave through.
	for _, idx := range fb {
		src := r.layers.Index[r.g.Edge(idx).From]
		gi := src
		if r.cfg.FeedbackPlacement == PlaceAbove && src > 0 {
			gi = src - 1
		}
		r.fexits[gi] = append(r.fexits[gi], idx)
	}

	// Gap heights. Spacing is a lower bound; a gap widens to fit one stub
	// row, one row per jog, one row per feedback exit, and the entry row.
	geo.nodeRow = make([]int, count)
	geo.gapTop = make([]int, count)
	geo.gapH = make([]int, count)
	for gi := 0; gi < count; gi++ {
		jogs := 0
		for _, s := range r.segs[gi] {
			if s.sx != s.tx {
				jogs++
			}
		}
		needed := len(r.fexits[gi])
		if len(r.segs[gi]) > 0 {
			needed += jogs + 2
		}
		if gi == count-1 {
			// Bottom band: feedback exits only, no spacing minimum.
			geo.gapH[gi] = len(r.fexits[gi])
			continue
		}
		geo.gapH[gi] = max(r.cfg.VerticalSpacing, needed)
	}

	row := 0
	for l := 0; l < count; l++ {
		geo.nodeRow[l] = row
		geo.gapTop[l] = row + 1
		row += 1 + geo.gapH[l]
	}
	geo.rows = row
	if count == 0 {
		geo.rows = 0
	}

	// Exit row per feedback edge: below the jog rows of its gap.
	for gi, exits := range r.fexits {
		base := geo.gapTop[gi]
		if len(r.segs[gi]) > 0 {
			jogs := 0
			for _, s := range r.segs[gi] {
				if s.sx != s.tx {
					jogs++
				}
			}
			base += 1 + jogs
		}
		for i, idx := range exits {
			r.exitAt[idx] = base + i
		}
	}

	r.geo = geo
}

func (r *router) skipped(idx int) bool { return r.skip != nil && r.skip[idx] }

// routeAll computes the cell path of every edge that is drawn.
func (r *router) routeAll() []routedEdge {
	var routes []routedEdge
	for idx, e := range r.g.Edges() {
		if r.skipped(idx) {
			continue
		}
		switch {
		case e.IsLoop():
			routes = append(routes, r.routeLoop(idx, e))
		case r.cyc.IsFeedback(idx):
			routes = append(routes, r.routeFeedback(idx, e))
		default:
			routes = append(routes, r.routeForward(idx, e))
		}
	}
	return routes
}

// routeForward threads an edge down through every gap it spans: a straight
// drop where source and target anchors align, otherwise a vertical to the
// segment's run row, a horizontal run, and a vertical into the entry row.
// The arrowhead sits directly above the target anchor.
func (r *router) routeForward(idx int, e graph.Edge) routedEdge {
	re := routedEdge{edge: idx, style: r.forwardStyle(idx, e)}
	a, b := r.layers.Index[e.From], r.layers.Index[e.To]

	for gi := a; gi < b; gi++ {
		seg, jog := r.segmentFor(idx, gi)
		top := r.geo.gapTop[gi]
		last := top + r.geo.gapH[gi] - 1

		if seg.sx == seg.tx {
			for row := top; row < last; row++ {
				re.cells = append(re.cells, pathCell{row: row, col: seg.sx, kind: kindVertical})
			}
		} else {
			hrow := top + 1 + jog
			for row := top; row <= hrow; row++ {
				re.cells = append(re.cells, pathCell{row: row, col: seg.sx, kind: kindVertical})
			}
			lo, hi := min(seg.sx, seg.tx), max(seg.sx, seg.tx)
			for col := lo; col <= hi; col++ {
				re.cells = append(re.cells, pathCell{row: hrow, col: col, kind: kindHorizontal})
			}
			for row := hrow; row < last; row++ {
				re.cells = append(re.cells, pathCell{row: row, col: seg.tx, kind: kindVertical})
			}
		}

		if seg.final {
			re.cells = append(re.cells, pathCell{row: last, col: seg.tx, kind: kindArrowDown})
		} else {
			// Pass through the intermediate layer's node row in the lane.
			re.cells = append(re.cells,
				pathCell{row: last, col: seg.tx, kind: kindVertical},
				pathCell{row: r.geo.nodeRow[gi+1], col: seg.tx, kind: kindVertical})
		}
	}
	return re
}

// routeFeedback leaves the layer band sideways: out of the source into its
// exit row, left to the margin lane, up the lane to the target's row, and
// right into the target's side with the arrowhead pointing at it.
func (r *router) routeFeedback(idx int, e graph.Edge) routedEdge {
	style := e.Style
	if style == "" {
		style = graph.StyleFeedback
	}
	re := routedEdge{edge: idx, feedback: true, style: style}

	src, dst := r.layers.Index[e.From], r.layers.Index[e.To]
	lane := r.geo.lane[idx]
	exit := r.exitAt[idx]
	srcX := r.geo.span[e.From].Center()
	srcRow := r.geo.nodeRow[src]
	dstRow := r.geo.nodeRow[dst]

	// Stub from the source anchor to the exit row.
	if exit > srcRow {
		for row := srcRow + 1; row <= exit; row++ {
			re.cells = append(re.cells, pathCell{row: row, col: srcX, kind: kindVertical})
		}
	} else {
		for row := exit; row < srcRow; row++ {
			re.cells = append(re.cells, pathCell{row: row, col: srcX, kind: kindVertical})
		}
	}

	// Exit run to the margin, climb, and entry run into the target.
	for col := lane; col <= srcX; col++ {
		re.cells = append(re.cells, pathCell{row: exit, col: col, kind: kindHorizontal})
	}
	for row := dstRow; row <= exit; row++ {
		re.cells = append(re.cells, pathCell{row: row, col: lane, kind: kindVertical})
	}
	entry := r.geo.span[e.To].Start
	for col := lane; col < entry-1; col++ {
		re.cells = append(re.cells, pathCell{row: dstRow, col: col, kind: kindHorizontal})
	}
	re.cells = append(re.cells, pathCell{row: dstRow, col: entry - 1, kind: kindArrowRight})
	return re
}

// routeLoop renders a self-loop as an annotation beside the node rather
// than a zero-length path.
func (r *router) routeLoop(idx int, e graph.Edge) routedEdge {
	style := e.Style
	if style == "" {
		style = graph.StyleFeedback
	}
	return routedEdge{
		edge:     idx,
		feedback: true,
		style:    style,
		cells: []pathCell{{
			row:  r.geo.nodeRow[r.layers.Index[e.From]],
			col:  r.geo.span[e.From].End + 1,
			kind: kindLoop,
		}},
	}
}

// segmentFor finds the planned segment of an edge in a gap and its jog
// index (position among the gap's jogging segments).
func (r *router) segmentFor(idx, gap int) (segment, int) {
	jog := 0
	for _, s := range r.segs[gap] {
		if s.edge == idx {
			return s, jog
		}
		if s.sx != s.tx {
			jog++
		}
	}
	panic(fmt.Sprintf("render: no segment planned for edge %d in gap %d", idx, gap))
}

func (r *router) forwardStyle(idx int, e graph.Edge) graph.Style {
	if e.Style != "" {
		return e.Style
	}
	return graph.Style(fmt.Sprintf("edge:%d", idx))
}
