package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/termdag/pkg/render"
	"github.com/matzehuels/termdag/pkg/render/term"
)

// newViewCmd creates the view command for browsing a rendered graph in an
// interactive pager. Diagrams wider or taller than the terminal can be
// scrolled in both directions.
func newViewCmd() *cobra.Command {
	opts := renderOpts{
		format:   formatText,
		minWidth: 3,
		hSpacing: 3,
		vSpacing: 2,
		feedback: placementBelow,
		color:    true,
	}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a rendered graph interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validatePlacement(opts.feedback); err != nil {
				return err
			}
			return runView(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.minWidth, "min-width", opts.minWidth, "minimum node width in columns")
	cmd.Flags().IntVar(&opts.hSpacing, "hspacing", opts.hSpacing, "minimum columns between nodes")
	cmd.Flags().IntVar(&opts.vSpacing, "vspacing", opts.vSpacing, "minimum rows between layers")
	cmd.Flags().StringVar(&opts.feedback, "feedback", opts.feedback, "feedback edge placement: below (default), above")
	cmd.Flags().BoolVar(&opts.unicode, "unicode", false, "use box-drawing glyphs")
	cmd.Flags().IntVar(&opts.maxPerLayer, "max-per-layer", 0, "maximum nodes per layer (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", false, "drop transitively redundant edges")
	cmd.Flags().BoolVar(&opts.color, "color", opts.color, "colorize edges")

	return cmd
}

func runView(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}

	grid := render.Render(g, buildConfig(opts))

	var wopts []term.Option
	if opts.color {
		wopts = append(wopts, term.WithColor())
	}
	var b strings.Builder
	if err := term.New(wopts...).Write(&b, grid); err != nil {
		return err
	}

	m := newGridViewModel(input, strings.Split(strings.TrimRight(b.String(), "\n"), "\n"))
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// gridViewModel is the bubbletea model for the scrollable diagram pager.
type gridViewModel struct {
	Title  string
	Lines  []string
	Width  int
	Height int
	RowOff int
	ColOff int
}

func newGridViewModel(title string, lines []string) gridViewModel {
	return gridViewModel{
		Title:  title,
		Lines:  lines,
		Width:  80,
		Height: 24,
	}
}

func (m gridViewModel) Init() tea.Cmd {
	return nil
}

func (m gridViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.RowOff = max(0, m.RowOff-1)
		case "down", "j":
			m.RowOff = min(m.maxRowOff(), m.RowOff+1)
		case "left", "h":
			m.ColOff = max(0, m.ColOff-4)
		case "right", "l":
			m.ColOff += 4
		case "pgup", "b":
			m.RowOff = max(0, m.RowOff-m.viewHeight())
		case "pgdown", "f", " ":
			m.RowOff = min(m.maxRowOff(), m.RowOff+m.viewHeight())
		case "g", "home":
			m.RowOff = 0
			m.ColOff = 0
		case "G", "end":
			m.RowOff = m.maxRowOff()
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.RowOff = min(m.RowOff, m.maxRowOff())
	}
	return m, nil
}

// viewHeight is the number of diagram rows visible below the header.
func (m gridViewModel) viewHeight() int {
	return max(1, m.Height-3)
}

func (m gridViewModel) maxRowOff() int {
	return max(0, len(m.Lines)-m.viewHeight())
}

func (m gridViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓/←/→ scroll  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := min(len(m.Lines), m.RowOff+m.viewHeight())
	for i := m.RowOff; i < end; i++ {
		b.WriteString(clipLeft(m.Lines[i], m.ColOff))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(m.Lines) > m.viewHeight() {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.RowOff+1, end, len(m.Lines))))
	}

	return b.String()
}

// clipLeft drops the first off visible characters of a line while keeping
// any ANSI escape sequences that precede them, so colors survive scrolling.
func clipLeft(line string, off int) string {
	if off <= 0 {
		return line
	}
	var b strings.Builder
	visible := 0
	inEscape := false
	for _, r := range line {
		switch {
		case inEscape:
			b.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			b.WriteRune(r)
			inEscape = true
		case visible < off:
			visible++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
