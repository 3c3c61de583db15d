package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/termdag/pkg/layout"
)

// Placement selects which side of the source layer a feedback edge uses to
// reach the margin lane.
type Placement int

const (
	// PlaceBelow routes feedback edges out through the gap below the
	// source layer. This is the default.
	PlaceBelow Placement = iota
	// PlaceAbove routes feedback edges out through the gap above the
	// source layer. Sources in the first layer fall back to PlaceBelow.
	PlaceAbove
)

// Glyphs is the character set used for edge plumbing. The zero value is
// replaced by [ASCIIGlyphs].
type Glyphs struct {
	Vertical   rune // vertical run
	Horizontal rune // horizontal run
	Junction   rune // corners, and the merge glyph where distinct edges share a cell
	ArrowUp    rune
	ArrowDown  rune
	ArrowLeft  rune
	ArrowRight rune
	Loop       rune // self-loop annotation beside the node
}

// ASCIIGlyphs returns the default 7-bit glyph set.
func ASCIIGlyphs() Glyphs {
	return Glyphs{
		Vertical:   '|',
		Horizontal: '-',
		Junction:   '+',
		ArrowUp:    '^',
		ArrowDown:  'v',
		ArrowLeft:  '<',
		ArrowRight: '>',
		Loop:       '*',
	}
}

// UnicodeGlyphs returns a box-drawing glyph set for terminals with good
// font coverage.
func UnicodeGlyphs() Glyphs {
	return Glyphs{
		Vertical:   '│',
		Horizontal: '─',
		Junction:   '┼',
		ArrowUp:    '▲',
		ArrowDown:  '▼',
		ArrowLeft:  '◀',
		ArrowRight: '▶',
		Loop:       '⟲',
	}
}

func (gl Glyphs) isZero() bool { return gl == Glyphs{} }

// Config controls layout geometry and glyph choice. Construct it once
// before rendering; [Render] never mutates it. Zero fields take the
// defaults documented per field (see [DefaultConfig]).
type Config struct {
	// MinNodeWidth is the minimum column span of a node. Labels wider
	// than this get their full width. Default 3.
	MinNodeWidth int

	// HorizontalSpacing is the minimum number of blank columns between
	// adjacent nodes in a layer and between lane columns. Default 3.
	HorizontalSpacing int

	// VerticalSpacing is the minimum height of the gap band between two
	// layers. Gaps widen beyond it when edge runs need more rows; it is a
	// lower bound, never a cap. Default 2.
	VerticalSpacing int

	// WidthFunc measures label width in terminal columns. The default
	// handles wide scripts via go-runewidth.
	WidthFunc layout.WidthFunc

	// FeedbackPlacement picks the exit side for feedback edges.
	FeedbackPlacement Placement

	// Glyphs is the drawing character set. Glyphs.Junction doubles as the
	// merge glyph painted where paths of different edges share a cell.
	Glyphs Glyphs

	// MaxPerLayer caps nodes per layer; overflow spills downward.
	// 0 means unlimited.
	MaxPerLayer int

	// ReduceEdges skips transitive edges (u→v when a longer path u⇝v
	// exists), decluttering dense graphs.
	ReduceEdges bool
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MinNodeWidth:      3,
		HorizontalSpacing: 3,
		VerticalSpacing:   2,
		WidthFunc:         runewidth.StringWidth,
		FeedbackPlacement: PlaceBelow,
		Glyphs:            ASCIIGlyphs(),
	}
}

// withDefaults fills zero fields so Render never branches on them.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinNodeWidth <= 0 {
		c.MinNodeWidth = d.MinNodeWidth
	}
	if c.HorizontalSpacing <= 0 {
		c.HorizontalSpacing = d.HorizontalSpacing
	}
	if c.VerticalSpacing <= 0 {
		c.VerticalSpacing = d.VerticalSpacing
	}
	if c.WidthFunc == nil {
		c.WidthFunc = d.WidthFunc
	}
	if c.Glyphs.isZero() {
		c.Glyphs = d.Glyphs
	}
	return c
}
