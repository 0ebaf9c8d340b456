package tui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used to render a session transcript.
type Styles struct {
	Banner   lipgloss.Style // Welcome lines at the top of the transcript.
	Echo     lipgloss.Style // Echoed command lines.
	Info     lipgloss.Style // Normal command output.
	Error    lipgloss.Style // User-facing failure text.
	Farewell lipgloss.Style // Session-ending farewell.
}

// NewStyles returns the transcript styles. With colored false every
// style is a no-op and output stays plain.
func NewStyles(colored bool) Styles {
	if !colored {
		return Styles{
			Banner:   lipgloss.NewStyle(),
			Echo:     lipgloss.NewStyle(),
			Info:     lipgloss.NewStyle(),
			Error:    lipgloss.NewStyle(),
			Farewell: lipgloss.NewStyle(),
		}
	}
	return Styles{
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		Echo: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
		Info: lipgloss.NewStyle(),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Farewell: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
	}
}
