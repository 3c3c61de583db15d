package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/termdag/pkg/graph"
)

func TestToDOT(t *testing.T) {
	g := graph.New()
	if err := g.AddNode("a"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode("b", graph.Text("backend")); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(graph.Edge{From: "a", To: "b"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(graph.Edge{From: "b", To: "a"}); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(g)

	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("not a digraph document:\n%s", dot)
	}
	for _, want := range []string{
		`"a" [label="a"];`,
		`"b" [label="backend"];`,
		`"a" -> "b";`,
		`"b" -> "a" [style=dashed, constraint=false];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(graph.New())
	if !strings.Contains(dot, "digraph G {") {
		t.Errorf("empty graph should still produce a digraph:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("empty graph should have no edges:\n%s", dot)
	}
}
