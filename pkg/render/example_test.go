package render_test

import (
	"fmt"

	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/render"
)

func ExampleRender() {
	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")
	g.AddEdge(graph.Edge{From: "a", To: "b"})

	grid := render.Render(g, render.DefaultConfig())
	fmt.Println(grid)
	// Output:
	//  a
	//  |
	//  v
	//  b
}
