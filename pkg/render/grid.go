package render

import (
	"strings"

	"github.com/matzehuels/termdag/pkg/graph"
)

// Continuation marks the trailing cells of a rune that occupies more than
// one terminal column. Writers print the leading rune and skip these.
const Continuation rune = -1

// Cell is one character position of the output grid: a rune (0 for blank)
// and the style tag carried over from the node or edge that painted it.
type Cell struct {
	Rune  rune
	Style graph.Style
}

// IsBlank reports whether nothing was painted into the cell.
func (c Cell) IsBlank() bool { return c.Rune == 0 }

// Grid is the bounded, immutable result of a render call. Row 0 is the
// top of the drawing.
type Grid struct {
	cells [][]Cell
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the grid width.
func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// At returns the cell at the given position.
func (g *Grid) At(row, col int) Cell { return g.cells[row][col] }

// Lines renders every row as plain text with style tags dropped, trailing
// blanks trimmed. Continuation cells are skipped so wide runes keep their
// visual width.
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.cells))
	for i, row := range g.cells {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.Rune == Continuation:
			case c.IsBlank():
				b.WriteByte(' ')
			default:
				b.WriteRune(c.Rune)
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

// String joins Lines with newlines.
func (g *Grid) String() string { return strings.Join(g.Lines(), "\n") }
