package theme

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles derived from a palette.
type Styles struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Failure   lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style
	Selected  lipgloss.Style
}

// NewStyles derives the shell styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Section: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).MarginTop(1),
		Body:    lipgloss.NewStyle().Foreground(p.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Failure: lipgloss.NewStyle().Foreground(p.Danger).Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Background).
			Background(p.Accent).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
	}
}

// Styles derives the styles for the active palette.
func (s *Service) Styles() Styles {
	return NewStyles(s.Current())
}
