package graph

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the graph. Endpoints must be added before edges.
	ErrUnknownNode = errors.New("unknown node ID")
)

// Node is a vertex of the graph: a stable identity plus a display label.
// Nodes are immutable once added; layout results (layer, column) are
// computed state owned by the pipeline, never written back onto the node.
type Node struct {
	ID    string
	Label Label
}

// Edge is a directed connection between two nodes, optionally carrying a
// style tag resolved by the terminal writer. Multiple edges between the
// same pair are allowed and kept apart by insertion order.
type Edge struct {
	From  string
	To    string
	Style Style
}

// IsLoop reports whether the edge connects a node to itself.
func (e Edge) IsLoop() bool { return e.From == e.To }

// Graph is an append-only directed graph with insertion-ordered nodes and
// edges. It is the sole input (besides configuration) to the render
// pipeline. Cycles and self-loops are permitted.
//
// The zero value is not usable - use [New]. A Graph is safe for concurrent
// reads, including concurrent renders, as long as no goroutine mutates it.
type Graph struct {
	nodes    map[string]*Node
	order    []string         // node IDs in insertion order
	pos      map[string]int   // node ID -> insertion index
	edges    []Edge
	outgoing map[string][]int // node ID -> outgoing edge indices, in insertion order
	incoming map[string][]int // node ID -> incoming edge indices, in insertion order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		pos:      make(map[string]int),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}
}

// AddNode adds a node with the given ID and label segments.
// Returns [ErrInvalidNodeID] for an empty ID or [ErrDuplicateNode] if the
// ID is already present. A node with no segments renders as its ID.
func (g *Graph) AddNode(id string, label ...Segment) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	if len(label) == 0 {
		label = Label{Text(id)}
	}
	g.pos[id] = len(g.order)
	g.order = append(g.order, id)
	g.nodes[id] = &Node{ID: id, Label: label}
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns [ErrUnknownNode] naming the missing endpoint if either side has
// not been added yet. Self-loops are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("%w: source %q", ErrUnknownNode, e.From)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("%w: target %q", ErrUnknownNode, e.To)
	}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], idx)
	g.incoming[e.To] = append(g.incoming[e.To], idx)
	return nil
}

// Node returns the node with the given ID, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Index returns the insertion index of the node, or -1 if absent.
func (g *Graph) Index(id string) int {
	if i, ok := g.pos[id]; ok {
		return i
	}
	return -1
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Edge returns the edge at the given insertion index.
func (g *Graph) Edge(idx int) Edge { return g.edges[idx] }

// Outgoing yields the edges leaving the node, in insertion order, keyed by
// their graph-wide edge index.
func (g *Graph) Outgoing(id string) iter.Seq2[int, Edge] {
	return func(yield func(int, Edge) bool) {
		for _, idx := range g.outgoing[id] {
			if !yield(idx, g.edges[idx]) {
				return
			}
		}
	}
}

// Incoming yields the edges entering the node, in insertion order, keyed by
// their graph-wide edge index.
func (g *Graph) Incoming(id string) iter.Seq2[int, Edge] {
	return func(yield func(int, Edge) bool) {
		for _, idx := range g.incoming[id] {
			if !yield(idx, g.edges[idx]) {
				return
			}
		}
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool { return len(g.order) == 0 }
