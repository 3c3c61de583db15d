package layout

import "github.com/matzehuels/termdag/pkg/graph"

// EdgeClass says how an edge participates in layering.
type EdgeClass int

const (
	// ClassForward marks tree and cross edges; they constrain layering.
	ClassForward EdgeClass = iota
	// ClassFeedback marks back edges whose inclusion would create a cycle.
	// They are excluded from layering and routed separately.
	ClassFeedback
)

// Cycles is the edge partition produced by [BreakCycles]. Class is indexed
// by graph-wide edge index; Feedback lists the feedback edge indices in
// insertion order.
type Cycles struct {
	Class    []EdgeClass
	Feedback []int
}

// IsFeedback reports whether the edge at the given index is a back edge.
func (c Cycles) IsFeedback(edgeIdx int) bool {
	return c.Class[edgeIdx] == ClassFeedback
}

// BreakCycles classifies every edge as forward or feedback so the forward
// subgraph is acyclic. It runs a depth-first traversal with white/gray/black
// coloring: an edge whose target is gray (on the current traversal stack)
// is a back edge. Roots are visited in node insertion order and outgoing
// edges in edge insertion order, so the partition is deterministic for a
// fixed graph. Self-loops are always feedback.
func BreakCycles(g *graph.Graph) Cycles {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	c := Cycles{Class: make([]EdgeClass, g.EdgeCount())}

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for idx, e := range g.Outgoing(id) {
			switch color[e.To] {
			case white:
				dfs(e.To)
			case gray:
				c.Class[idx] = ClassFeedback
			}
		}
		color[id] = black
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			dfs(id)
		}
	}

	for idx, class := range c.Class {
		if class == ClassFeedback {
			c.Feedback = append(c.Feedback, idx)
		}
	}
	return c
}
