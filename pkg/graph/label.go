package graph

import "strings"

// Style is an opaque tag attached to nodes, edges, and grid cells.
// The pipeline carries tags through unchanged; only the terminal writer
// resolves them to actual formatting. An empty tag means unstyled.
type Style string

// StyleFeedback is the tag the renderer assigns to feedback-edge cells
// that carry no explicit style of their own.
const StyleFeedback Style = "feedback"

// Segment is one run of label text sharing a single style tag.
type Segment struct {
	Text  string
	Style Style
}

// Label is a node's display label: an ordered sequence of styled segments.
type Label []Segment

// Text builds an unstyled segment.
func Text(s string) Segment { return Segment{Text: s} }

// Styled builds a segment with the given style tag.
func Styled(s string, style Style) Segment { return Segment{Text: s, Style: style} }

// String returns the label's text with style tags stripped.
func (l Label) String() string {
	var b strings.Builder
	for _, seg := range l {
		b.WriteString(seg.Text)
	}
	return b.String()
}
