package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the document form of a graph, shared by the JSON and TOML
// codecs. It is designed for round-trip fidelity: decode → render →
// re-encode preserves IDs, labels, styles, and edge order.
type File struct {
	Nodes []NodeSpec `json:"nodes" toml:"nodes"`
	Edges []EdgeSpec `json:"edges" toml:"edges"`
}

// NodeSpec describes one node in a graph document.
type NodeSpec struct {
	ID    string `json:"id" toml:"id"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`
	Style string `json:"style,omitempty" toml:"style,omitempty"`
}

// EdgeSpec describes one directed edge in a graph document.
type EdgeSpec struct {
	From  string `json:"from" toml:"from"`
	To    string `json:"to" toml:"to"`
	Style string `json:"style,omitempty" toml:"style,omitempty"`
}

// ToGraph builds a Graph from the document, applying the same validation
// as manual construction. A node without a label uses its ID.
func (f File) ToGraph() (*Graph, error) {
	g := New()
	for _, n := range f.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if err := g.AddNode(n.ID, Styled(label, Style(n.Style))); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range f.Edges {
		if err := g.AddEdge(Edge{From: e.From, To: e.To, Style: Style(e.Style)}); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// FromGraph converts a Graph back to its document form.
func FromGraph(g *Graph) File {
	f := File{
		Nodes: make([]NodeSpec, 0, g.NodeCount()),
		Edges: make([]EdgeSpec, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		spec := NodeSpec{ID: n.ID, Label: n.Label.String()}
		if len(n.Label) > 0 {
			spec.Style = string(n.Label[0].Style)
		}
		if spec.Label == n.ID {
			spec.Label = ""
		}
		f.Nodes = append(f.Nodes, spec)
	}
	for _, e := range g.Edges() {
		f.Edges = append(f.Edges, EdgeSpec{From: e.From, To: e.To, Style: string(e.Style)})
	}
	return f
}

// Decode reads a JSON graph document from r.
func Decode(r io.Reader) (*Graph, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return f.ToGraph()
}

// DecodeTOML reads a TOML graph document from r.
func DecodeTOML(r io.Reader) (*Graph, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return f.ToGraph()
}

// ReadFile reads a graph document from path, choosing the codec by file
// extension: .json or .toml.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Decode(f)
	case ".toml":
		return DecodeTOML(f)
	default:
		return nil, fmt.Errorf("unsupported graph file extension %q (want .json or .toml)", filepath.Ext(path))
	}
}

// Marshal converts a graph to indented JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
