// Package render turns a directed graph into a bounded two-dimensional
// grid of styled character cells suitable for a terminal.
//
// # Pipeline
//
// [Render] runs the full pipeline in one synchronous pass with no shared
// state between calls:
//
//	cycle breaking → layer assignment → column allocation →
//	edge routing → grid composition
//
// The graph itself is never mutated, so the same graph may be rendered
// repeatedly (and concurrently) with different configurations.
//
//	g := graph.New()
//	g.AddNode("a")
//	g.AddNode("b")
//	g.AddEdge(graph.Edge{From: "a", To: "b"})
//	grid := render.Render(g, render.DefaultConfig())
//	fmt.Println(grid)
//
// # Geometry
//
// Each layer occupies one node row. Between consecutive layers sits a gap
// band holding the edge plumbing: a stub row under the sources, one run
// row per edge that needs a horizontal jog (ordered by target column), and
// an entry row whose cells directly above the targets carry the
// arrowheads. Edges spanning several layers reserve a lane column at each
// intermediate layer so they never pass through another node's span.
// Feedback edges leave the band entirely and climb a margin lane on the
// left, entering their target from the side. Self-loops become a loop
// annotation beside the node. Spacing values in [Config] are lower bounds:
// a gap grows as needed to fit its runs, it never fails.
//
// # Output
//
// The result is a [Grid] of [Cell] values. A cell is a rune plus an opaque
// style tag; translating tags to real colors is the job of the writers in
// the term subpackage, keeping this package free of terminal concerns.
package render
