package layout

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestAllocateColumns(t *testing.T) {
	g := build(t,
		[]string{"a", "bb", "wide-label", "c"},
		[][2]string{{"a", "c"}, {"bb", "c"}, {"wide-label", "c"}})
	layers := AssignLayers(g, BreakCycles(g), 0)
	cols := AllocateColumns(g, layers, 4, 3, runewidth.StringWidth)

	tests := []struct {
		id   string
		want Span
	}{
		{id: "a", want: Span{Start: 0, End: 4}},           // padded to min width
		{id: "bb", want: Span{Start: 7, End: 11}},         // previous end + gap
		{id: "wide-label", want: Span{Start: 14, End: 24}}, // label wider than min
		{id: "c", want: Span{Start: 0, End: 4}},            // next layer restarts at 0
	}
	for _, tt := range tests {
		if got := cols.Span[tt.id]; got != tt.want {
			t.Errorf("Span[%s] = %+v, want %+v", tt.id, got, tt.want)
		}
	}

	if cols.Width != 24 {
		t.Errorf("Width = %d, want 24", cols.Width)
	}
}

func TestAllocateColumnsDisjoint(t *testing.T) {
	g := build(t,
		[]string{"r", "n1", "n2", "n3", "n4"},
		[][2]string{{"r", "n1"}, {"r", "n2"}, {"r", "n3"}, {"r", "n4"}})
	layers := AssignLayers(g, BreakCycles(g), 0)
	cols := AllocateColumns(g, layers, 3, 2, runewidth.StringWidth)

	for _, layer := range layers.Order {
		for i := 1; i < len(layer); i++ {
			prev, cur := cols.Span[layer[i-1]], cols.Span[layer[i]]
			if cur.Start < prev.End+2 {
				t.Errorf("spans %s %+v and %s %+v closer than gap", layer[i-1], prev, layer[i], cur)
			}
		}
	}
}

func TestAllocateColumnsWideRunes(t *testing.T) {
	g := build(t, []string{"データ"}, nil)
	layers := AssignLayers(g, BreakCycles(g), 0)
	cols := AllocateColumns(g, layers, 3, 3, runewidth.StringWidth)

	// Three full-width runes occupy six terminal columns.
	if got := cols.Span["データ"].Width(); got != 6 {
		t.Errorf("Width = %d, want 6", got)
	}
}

func TestSpanCenter(t *testing.T) {
	tests := []struct {
		span Span
		want int
	}{
		{span: Span{Start: 0, End: 3}, want: 1},
		{span: Span{Start: 0, End: 4}, want: 1},
		{span: Span{Start: 2, End: 5}, want: 3},
		{span: Span{Start: 10, End: 11}, want: 10},
	}
	for _, tt := range tests {
		if got := tt.span.Center(); got != tt.want {
			t.Errorf("Center(%+v) = %d, want %d", tt.span, got, tt.want)
		}
	}
}
