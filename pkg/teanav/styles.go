package teanav

import "github.com/charmbracelet/lipgloss"

// Styles controls how the host frames screens.
type Styles struct {
	Breadcrumb lipgloss.Style
	Separator  string
	Modal      lipgloss.Style
	ModalTitle lipgloss.Style
	Popup      lipgloss.Style
	Footer     lipgloss.Style
}

// DefaultStyles returns the default host styles.
func DefaultStyles() Styles {
	return Styles{
		Breadcrumb: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("4")),
		Separator: " › ",
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 1),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("3")).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}
