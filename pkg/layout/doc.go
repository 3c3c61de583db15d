// Package layout computes the discrete placement of a directed graph:
// which horizontal layer each node belongs to and which column span it
// occupies within its layer.
//
// The stages run in order and are all pure functions of their inputs:
//
//  1. [BreakCycles] partitions edges into forward and feedback sets via a
//     depth-first traversal, so that the forward subgraph is acyclic.
//  2. [AssignLayers] gives every node a longest-path layer index over the
//     forward subgraph; disconnected components are stacked in insertion
//     order.
//  3. [AllocateColumns] orders each layer by node insertion order and
//     assigns non-overlapping column spans from the configured glyph-width
//     function and spacing.
//
// [RedundantEdges] is an optional pre-pass that marks transitive edges so
// the renderer can skip them, mirroring the classic transitive reduction.
//
// All tie-breaks are by insertion order, which makes every stage
// deterministic for a fixed graph.
package layout
