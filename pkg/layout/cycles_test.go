package layout

import (
	"testing"

	"github.com/matzehuels/termdag/pkg/graph"
)

// build constructs a graph from node IDs and from→to pairs, failing the test
// on invalid input.
func build(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, id := range nodes {
		if err := g.AddNode(id); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name         string
		nodes        []string
		edges        [][2]string
		wantFeedback []int
	}{
		{
			name:  "Chain",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
		},
		{
			name:  "Diamond",
			nodes: []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
		},
		{
			name:         "TwoCycle",
			nodes:        []string{"a", "b"},
			edges:        [][2]string{{"a", "b"}, {"b", "a"}},
			wantFeedback: []int{1},
		},
		{
			name:         "SelfLoop",
			nodes:        []string{"a"},
			edges:        [][2]string{{"a", "a"}},
			wantFeedback: []int{0},
		},
		{
			name:         "TriangleCycle",
			nodes:        []string{"a", "b", "c"},
			edges:        [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			wantFeedback: []int{2},
		},
		{
			name:  "CrossEdgeIsForward",
			nodes: []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
		},
		{
			name:         "TwoDisjointCycles",
			nodes:        []string{"a", "b", "c", "d"},
			edges:        [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			wantFeedback: []int{1, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.nodes, tt.edges)
			cyc := BreakCycles(g)

			if got, want := len(cyc.Feedback), len(tt.wantFeedback); got != want {
				t.Fatalf("feedback count = %d (%v), want %d", got, cyc.Feedback, want)
			}
			for i, idx := range tt.wantFeedback {
				if cyc.Feedback[i] != idx {
					t.Errorf("Feedback[%d] = %d, want %d", i, cyc.Feedback[i], idx)
				}
				if !cyc.IsFeedback(idx) {
					t.Errorf("IsFeedback(%d) = false, want true", idx)
				}
			}

			// The forward subgraph must be acyclic: layering it succeeds
			// with strictly increasing layers along every forward edge.
			layers := AssignLayers(g, cyc, 0)
			for idx, e := range g.Edges() {
				if cyc.IsFeedback(idx) || e.IsLoop() {
					continue
				}
				if layers.Index[e.From] >= layers.Index[e.To] {
					t.Errorf("forward edge %s->%s: layers %d >= %d",
						e.From, e.To, layers.Index[e.From], layers.Index[e.To])
				}
			}
		})
	}
}

func TestBreakCyclesDeterministic(t *testing.T) {
	mk := func() *graph.Graph {
		return build(t,
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "b"}})
	}

	first := BreakCycles(mk())
	for i := 0; i < 10; i++ {
		again := BreakCycles(mk())
		if len(again.Feedback) != len(first.Feedback) {
			t.Fatalf("run %d: feedback count changed: %v vs %v", i, again.Feedback, first.Feedback)
		}
		for j := range first.Feedback {
			if again.Feedback[j] != first.Feedback[j] {
				t.Fatalf("run %d: feedback set changed: %v vs %v", i, again.Feedback, first.Feedback)
			}
		}
	}
}
