package layout

import (
	"slices"

	"github.com/matzehuels/termdag/pkg/graph"
)

// Layers is the result of layer assignment: a layer index per node plus
// the nodes of each layer in insertion order. For every forward edge u→v,
// Index[u] < Index[v].
type Layers struct {
	Index map[string]int
	Order [][]string
}

// Count returns the number of layers.
func (l Layers) Count() int { return len(l.Order) }

// AssignLayers computes longest-path layers over the forward subgraph:
// a node with no incoming forward edges sits at the first layer of its
// component, and every other node sits one layer below its deepest
// predecessor. Weakly connected components are layered independently and
// stacked top to bottom in order of their earliest-inserted node.
//
// maxPerLayer caps how many nodes share a layer (0 means unlimited). A node
// that would overflow its layer spills to the next one down; spilling only
// ever moves nodes downward, so forward edges keep strictly increasing
// layers.
func AssignLayers(g *graph.Graph, cyc Cycles, maxPerLayer int) Layers {
	res := Layers{Index: make(map[string]int, g.NodeCount())}
	if g.IsEmpty() {
		return res
	}

	base := 0
	for _, comp := range components(g) {
		depth := assignComponent(g, cyc, comp, maxPerLayer, base, res.Index)
		base += depth
	}

	res.Order = make([][]string, base)
	for _, id := range g.NodeIDs() {
		l := res.Index[id]
		res.Order[l] = append(res.Order[l], id)
	}
	return res
}

// assignComponent layers one component starting at the given base layer and
// returns the number of layers it occupies. Nodes are processed in
// topological order over forward edges, always picking the ready node with
// the lowest insertion index.
func assignComponent(g *graph.Graph, cyc Cycles, comp []string, maxPerLayer, base int, out map[string]int) int {
	indeg := make(map[string]int, len(comp))
	member := make(map[string]bool, len(comp))
	for _, id := range comp {
		member[id] = true
	}
	for _, id := range comp {
		for idx, e := range g.Incoming(id) {
			if cyc.IsFeedback(idx) || e.IsLoop() || !member[e.From] {
				continue
			}
			indeg[id]++
		}
	}

	ready := make([]string, 0, len(comp))
	for _, id := range comp {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	occupancy := make(map[int]int)
	depth := 0
	for len(ready) > 0 {
		// Lowest insertion index first keeps the order deterministic.
		pick := 0
		for i := 1; i < len(ready); i++ {
			if g.Index(ready[i]) < g.Index(ready[pick]) {
				pick = i
			}
		}
		id := ready[pick]
		ready = slices.Delete(ready, pick, pick+1)

		layer := 0
		for idx, e := range g.Incoming(id) {
			if cyc.IsFeedback(idx) || e.IsLoop() || !member[e.From] {
				continue
			}
			if l := out[e.From] - base + 1; l > layer {
				layer = l
			}
		}
		if maxPerLayer > 0 {
			for occupancy[layer] >= maxPerLayer {
				layer++
			}
		}
		occupancy[layer]++
		out[id] = base + layer
		if layer+1 > depth {
			depth = layer + 1
		}

		for idx, e := range g.Outgoing(id) {
			if cyc.IsFeedback(idx) || e.IsLoop() {
				continue
			}
			indeg[e.To]--
			if indeg[e.To] == 0 {
				ready = append(ready, e.To)
			}
		}
	}
	return depth
}

// components returns the weakly connected components of the graph, each as
// a list of node IDs in insertion order. Components are ordered by their
// earliest-inserted node. All edges connect, including feedback edges.
func components(g *graph.Graph) [][]string {
	seen := make(map[string]bool, g.NodeCount())
	var comps [][]string

	for _, root := range g.NodeIDs() {
		if seen[root] {
			continue
		}
		var comp []string
		queue := []string{root}
		seen[root] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			comp = append(comp, id)
			for _, e := range g.Outgoing(id) {
				if !seen[e.To] {
					seen[e.To] = true
					queue = append(queue, e.To)
				}
			}
			for _, e := range g.Incoming(id) {
				if !seen[e.From] {
					seen[e.From] = true
					queue = append(queue, e.From)
				}
			}
		}
		slices.SortFunc(comp, func(a, b string) int { return g.Index(a) - g.Index(b) })
		comps = append(comps, comp)
	}
	return comps
}
