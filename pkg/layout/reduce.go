package layout

import "github.com/matzehuels/termdag/pkg/graph"

// RedundantEdges marks forward edges that transitive reduction would
// remove: an edge u→v is redundant when u reaches v through at least one
// intermediate node. Feedback edges and self-loops are never marked. The
// graph itself is not mutated; the renderer skips marked edges when
// configured to reduce.
//
// Reachability is computed with DFS per node, so the cost is O(V·E) for
// sparse graphs. That is fine at terminal-display sizes.
func RedundantEdges(g *graph.Graph, cyc Cycles) map[int]bool {
	ids := g.NodeIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	adjacency := make([][]int, len(ids))
	for i, id := range ids {
		for idx, e := range g.Outgoing(id) {
			if cyc.IsFeedback(idx) || e.IsLoop() {
				continue
			}
			adjacency[i] = append(adjacency[i], index[e.To])
		}
	}

	reachable := make([][]bool, len(ids))
	for i := range reachable {
		reachable[i] = make([]bool, len(ids))
	}
	var dfs func(source, current int)
	dfs = func(source, current int) {
		if reachable[source][current] {
			return
		}
		reachable[source][current] = true
		for _, next := range adjacency[current] {
			dfs(source, next)
		}
	}
	for i := range reachable {
		dfs(i, i)
	}

	redundant := make(map[int]bool)
	for idx, e := range g.Edges() {
		if cyc.IsFeedback(idx) || e.IsLoop() {
			continue
		}
		src, dst := index[e.From], index[e.To]
		for _, intermediate := range adjacency[src] {
			if intermediate != dst && reachable[intermediate][dst] {
				redundant[idx] = true
				break
			}
		}
	}
	return redundant
}
