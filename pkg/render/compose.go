package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/layout"
)

// Overlap priorities: a cell is only repainted by an element of strictly
// higher priority; equal-priority path cells merge instead.
const (
	prioBlank int8 = iota
	prioPath
	prioArrow
	prioNode
)

// painter accumulates cells with priority and ownership bookkeeping so the
// compositor can resolve overlaps deterministically.
type painter struct {
	cells [][]Cell
	prio  [][]int8
	owner [][]int // edge index that painted a path cell, -1 otherwise
	glyph Glyphs
}

func newPainter(rows, cols int, glyph Glyphs) *painter {
	p := &painter{
		cells: make([][]Cell, rows),
		prio:  make([][]int8, rows),
		owner: make([][]int, rows),
		glyph: glyph,
	}
	for i := range p.cells {
		p.cells[i] = make([]Cell, cols)
		p.prio[i] = make([]int8, cols)
		p.owner[i] = make([]int, cols)
		for j := range p.owner[i] {
			p.owner[i][j] = -1
		}
	}
	return p
}

// paintNode claims the whole span at node priority, then centers the label
// inside it. Wide runes occupy their full width via continuation cells;
// labels wider than the span are clipped.
func (p *painter) paintNode(row int, span layout.Span, label graph.Label, labelWidth int) {
	for col := span.Start; col < span.End; col++ {
		p.cells[row][col] = Cell{}
		p.prio[row][col] = prioNode
		p.owner[row][col] = -1
	}

	col := span.Start + (span.Width()-labelWidth)/2
	if col < span.Start {
		col = span.Start
	}
	for _, seg := range label {
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if col+w > span.End {
				return
			}
			p.cells[row][col] = Cell{Rune: r, Style: seg.Style}
			for k := 1; k < w; k++ {
				p.cells[row][col+k] = Cell{Rune: Continuation, Style: seg.Style}
			}
			col += w
		}
	}
}

// paintPath places one routed cell. Nodes and arrows always win; among
// path cells, a same-edge overlap of different shapes is a corner, and an
// overlap between different edges keeps the shared glyph or degrades to
// the junction glyph.
func (p *painter) paintPath(c pathCell, edge int, style graph.Style) {
	r := p.rune(c.kind)
	row, col := c.row, c.col

	switch {
	case p.prio[row][col] > prioPath:
		return
	case p.prio[row][col] < prioPath:
		p.cells[row][col] = Cell{Rune: r, Style: style}
		p.prio[row][col] = prioPath
		p.owner[row][col] = edge
	case p.owner[row][col] == edge:
		if p.cells[row][col].Rune != r {
			p.cells[row][col] = Cell{Rune: p.glyph.Junction, Style: style}
		}
	default:
		if p.cells[row][col].Rune == r {
			p.cells[row][col].Style = ""
		} else {
			p.cells[row][col] = Cell{Rune: p.glyph.Junction}
		}
		p.owner[row][col] = edge
	}
}

// paintArrow places an arrowhead or loop annotation; first one wins, nodes
// still take precedence.
func (p *painter) paintArrow(c pathCell, style graph.Style) {
	if p.prio[c.row][c.col] >= prioArrow {
		return
	}
	p.cells[c.row][c.col] = Cell{Rune: p.rune(c.kind), Style: style}
	p.prio[c.row][c.col] = prioArrow
	p.owner[c.row][c.col] = -1
}

func (p *painter) rune(k cellKind) rune {
	switch k {
	case kindHorizontal:
		return p.glyph.Horizontal
	case kindArrowDown:
		return p.glyph.ArrowDown
	case kindArrowRight:
		return p.glyph.ArrowRight
	case kindLoop:
		return p.glyph.Loop
	default:
		return p.glyph.Vertical
	}
}

// compose merges node labels and routed edges into the final grid,
// honoring the priority order node > arrowhead > path > blank.
func compose(g *graph.Graph, cfg Config, layers layout.Layers, geo geometry, routes []routedEdge) *Grid {
	p := newPainter(geo.rows, geo.width, cfg.Glyphs)

	for _, ids := range layers.Order {
		for _, id := range ids {
			n, _ := g.Node(id)
			row := geo.nodeRow[layers.Index[id]]
			p.paintNode(row, geo.span[id], n.Label, cfg.WidthFunc(n.Label.String()))
		}
	}

	for _, re := range routes {
		for _, c := range re.cells {
			switch c.kind {
			case kindArrowDown, kindArrowRight, kindLoop:
				p.paintArrow(c, re.style)
			default:
				p.paintPath(c, re.edge, re.style)
			}
		}
	}

	return &Grid{cells: p.cells}
}
