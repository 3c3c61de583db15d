// Package graph provides the directed graph model consumed by the termdag
// rendering pipeline.
//
// # Overview
//
// A [Graph] holds nodes with stable string identities and directed edges
// between them. Unlike a strict DAG container, cycles are allowed: the
// layout stage breaks them into a feedback-edge set before layering, and
// the renderer draws feedback edges separately. Insertion order of both
// nodes and edges is preserved and is the tie-breaker for every
// deterministic decision downstream, so building the same graph twice
// always renders the same picture.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and edges with
// [Graph.AddEdge]. Node IDs must be unique and edge endpoints must already
// exist:
//
//	g := graph.New()
//	g.AddNode("app", graph.Text("app"))
//	g.AddNode("lib", graph.Text("lib"))
//	g.AddEdge(graph.Edge{From: "app", To: "lib"})
//
// Both construction errors ([ErrDuplicateNode], [ErrUnknownNode]) surface
// immediately; the graph is append-only and is never mutated by rendering.
//
// # Labels and Styles
//
// A node label is a sequence of [Segment] values, each carrying a text run
// and an optional [Style] tag. Style tags are opaque to the pipeline: they
// travel through layout and rendering unchanged and are resolved to actual
// terminal formatting only by the writer in [term].
//
// # File Formats
//
// [ReadFile], [Decode], and [Marshal] translate graphs to and from a small
// JSON/TOML document format used by the CLI and the HTTP endpoint. The
// format is round-trip faithful for IDs, labels, styles, and edge order.
//
// [term]: github.com/matzehuels/termdag/pkg/render/term
package graph
