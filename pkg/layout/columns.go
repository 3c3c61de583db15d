package layout

import "github.com/matzehuels/termdag/pkg/graph"

// Span is a half-open column range [Start, End) occupied by a node.
type Span struct {
	Start int
	End   int
}

// Width returns the number of columns the span covers.
func (s Span) Width() int { return s.End - s.Start }

// Center returns the column used as the node's vertical anchor.
func (s Span) Center() int { return s.Start + (s.Width()-1)/2 }

// Columns maps every node to its column span and records the widest layer
// extent. Spans within a layer never overlap.
type Columns struct {
	Span  map[string]Span
	Width int
}

// WidthFunc measures how many terminal columns a label occupies. It is an
// injected capability so callers can account for wide scripts; the default
// lives in the render package.
type WidthFunc func(string) int

// AllocateColumns assigns each node a column span within its layer. Nodes
// keep their insertion order, each span is max(minWidth, widthOf(label))
// columns wide, and consecutive spans are separated by gap columns. The
// allocator is total: an empty layering yields zero width.
func AllocateColumns(g *graph.Graph, layers Layers, minWidth, gap int, widthOf WidthFunc) Columns {
	cols := Columns{Span: make(map[string]Span, g.NodeCount())}
	for _, layer := range layers.Order {
		x := 0
		for _, id := range layer {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			w := widthOf(n.Label.String())
			if w < minWidth {
				w = minWidth
			}
			cols.Span[id] = Span{Start: x, End: x + w}
			x += w + gap
			if x-gap > cols.Width {
				cols.Width = x - gap
			}
		}
	}
	return cols
}
