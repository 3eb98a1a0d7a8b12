package client

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used by the line-mode client
type Styles struct {
	Header    lipgloss.Style
	Dealer    lipgloss.Style
	Player    lipgloss.Style
	Self      lipgloss.Style
	Turn      lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
}

// NewStyles builds styles bound to a renderer for w. The color mode picks the
// termenv profile: auto detects the terminal, never forces plain ASCII.
func NewStyles(w io.Writer, colorMode string) Styles {
	var opts []termenv.OutputOption
	switch colorMode {
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.TrueColor))
	}
	r := lipgloss.NewRenderer(w, opts...)

	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),

		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Self: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),

		Turn: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),

		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0")).
			Bold(true),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),

		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
