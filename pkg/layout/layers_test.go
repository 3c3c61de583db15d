package layout

import (
	"testing"

	"github.com/matzehuels/termdag/pkg/graph"
)

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name      string
		nodes     []string
		edges     [][2]string
		wantIndex map[string]int
		wantCount int
	}{
		{
			name:      "SingleNode",
			nodes:     []string{"a"},
			wantIndex: map[string]int{"a": 0},
			wantCount: 1,
		},
		{
			name:      "Chain",
			nodes:     []string{"a", "b", "c"},
			edges:     [][2]string{{"a", "b"}, {"b", "c"}},
			wantIndex: map[string]int{"a": 0, "b": 1, "c": 2},
			wantCount: 3,
		},
		{
			name:  "LongestPathWins",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}},
			// c is reachable directly and through b; the longer path decides.
			wantIndex: map[string]int{"a": 0, "b": 1, "c": 2},
			wantCount: 3,
		},
		{
			name:      "Diamond",
			nodes:     []string{"a", "b", "c", "d"},
			edges:     [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			wantIndex: map[string]int{"a": 0, "b": 1, "c": 1, "d": 2},
			wantCount: 3,
		},
		{
			name:  "FeedbackIgnored",
			nodes: []string{"a", "b"},
			edges: [][2]string{{"a", "b"}, {"b", "a"}},
			// The back edge b->a does not drag a below b.
			wantIndex: map[string]int{"a": 0, "b": 1},
			wantCount: 2,
		},
		{
			name:      "SelfLoopIgnored",
			nodes:     []string{"a", "b"},
			edges:     [][2]string{{"a", "a"}, {"a", "b"}},
			wantIndex: map[string]int{"a": 0, "b": 1},
			wantCount: 2,
		},
		{
			name:  "ComponentsStacked",
			nodes: []string{"a", "b", "x", "y"},
			edges: [][2]string{{"a", "b"}, {"x", "y"}},
			// The second component starts below the first.
			wantIndex: map[string]int{"a": 0, "b": 1, "x": 2, "y": 3},
			wantCount: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.nodes, tt.edges)
			cyc := BreakCycles(g)
			layers := AssignLayers(g, cyc, 0)

			if got := layers.Count(); got != tt.wantCount {
				t.Fatalf("Count = %d, want %d (order %v)", got, tt.wantCount, layers.Order)
			}
			for id, want := range tt.wantIndex {
				if got := layers.Index[id]; got != want {
					t.Errorf("Index[%s] = %d, want %d", id, got, want)
				}
			}

			// Order must list every node exactly once, in its layer.
			seen := 0
			for l, ids := range layers.Order {
				for _, id := range ids {
					seen++
					if layers.Index[id] != l {
						t.Errorf("node %s listed in layer %d but Index says %d", id, l, layers.Index[id])
					}
				}
			}
			if seen != g.NodeCount() {
				t.Errorf("Order covers %d nodes, want %d", seen, g.NodeCount())
			}
		})
	}
}

func TestAssignLayersMaxPerLayer(t *testing.T) {
	// Five roots all start at layer 0; a cap of 2 spills the rest down.
	g := build(t,
		[]string{"a", "b", "c", "d", "e", "sink"},
		[][2]string{{"a", "sink"}, {"b", "sink"}, {"c", "sink"}, {"d", "sink"}, {"e", "sink"}})
	cyc := BreakCycles(g)
	layers := AssignLayers(g, cyc, 2)

	for _, ids := range layers.Order {
		if len(ids) > 2 {
			t.Errorf("layer %v exceeds cap of 2", ids)
		}
	}

	// Spilling must not break the ordering invariant.
	for idx, e := range g.Edges() {
		if cyc.IsFeedback(idx) || e.IsLoop() {
			continue
		}
		if layers.Index[e.From] >= layers.Index[e.To] {
			t.Errorf("edge %s->%s: layers %d >= %d", e.From, e.To, layers.Index[e.From], layers.Index[e.To])
		}
	}
}

func TestAssignLayersEmpty(t *testing.T) {
	g := graph.New()
	layers := AssignLayers(g, BreakCycles(g), 0)
	if layers.Count() != 0 {
		t.Errorf("Count = %d, want 0", layers.Count())
	}
}

func TestLayerOrderFollowsInsertion(t *testing.T) {
	g := build(t,
		[]string{"root", "late", "early"},
		[][2]string{{"root", "late"}, {"root", "early"}})
	layers := AssignLayers(g, BreakCycles(g), 0)

	row := layers.Order[1]
	if len(row) != 2 || row[0] != "late" || row[1] != "early" {
		t.Errorf("layer 1 = %v, want [late early] (insertion order)", row)
	}
}
