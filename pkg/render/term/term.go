// Package term writes rendered grids to a terminal, translating the
// pipeline's opaque style tags into lipgloss styles. It is the only place
// where colors exist; the grid itself stays abstract.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/termdag/pkg/graph"
	"github.com/matzehuels/termdag/pkg/render"
)

// DefaultPalette is cycled through for edges that carry no explicit style,
// so parallel edge runs stay tellable apart.
func DefaultPalette() []lipgloss.Style {
	colors := []string{"1", "2", "3", "4", "5", "6"} // red green yellow blue magenta cyan
	styles := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return styles
}

// Writer renders grids as text. The zero value writes plain text; use the
// options to enable colors and custom tag mappings.
type Writer struct {
	palette  []lipgloss.Style
	styles   map[graph.Style]lipgloss.Style
	feedback lipgloss.Style
	color    bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithColor enables styled output using the default palette.
func WithColor() Option {
	return func(w *Writer) {
		w.color = true
		if w.palette == nil {
			w.palette = DefaultPalette()
		}
	}
}

// WithPalette enables styled output with a custom edge palette.
func WithPalette(p []lipgloss.Style) Option {
	return func(w *Writer) {
		w.color = true
		w.palette = p
	}
}

// WithStyle maps a specific tag to a lipgloss style. Tags not mapped here
// fall back to the palette (edge tags) or plain text.
func WithStyle(tag graph.Style, s lipgloss.Style) Option {
	return func(w *Writer) {
		if w.styles == nil {
			w.styles = make(map[graph.Style]lipgloss.Style)
		}
		w.styles[tag] = s
	}
}

// New creates a writer.
func New(opts ...Option) *Writer {
	w := &Writer{
		feedback: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write prints the grid row by row. Without color it is equivalent to
// printing [render.Grid.Lines].
func (w *Writer) Write(out io.Writer, grid *render.Grid) error {
	if !w.color {
		for _, line := range grid.Lines() {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	}

	for row := 0; row < grid.Rows(); row++ {
		var b strings.Builder
		for col := 0; col < grid.Cols(); col++ {
			c := grid.At(row, col)
			switch {
			case c.Rune == render.Continuation:
			case c.IsBlank():
				b.WriteByte(' ')
			default:
				b.WriteString(w.styleFor(c.Style).Render(string(c.Rune)))
			}
		}
		if _, err := fmt.Fprintln(out, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

// styleFor resolves a tag: explicit mappings first, then the feedback
// style, then the palette for generated edge tags, plain otherwise.
func (w *Writer) styleFor(tag graph.Style) lipgloss.Style {
	if s, ok := w.styles[tag]; ok {
		return s
	}
	if tag == graph.StyleFeedback {
		return w.feedback
	}
	var n int
	if len(w.palette) > 0 {
		if _, err := fmt.Sscanf(string(tag), "edge:%d", &n); err == nil {
			return w.palette[n%len(w.palette)]
		}
	}
	return lipgloss.NewStyle()
}
