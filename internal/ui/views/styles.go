package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	PageBody      lipgloss.Style
	PageEdge      lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusPage    lipgloss.Style
	FlagOn        lipgloss.Style
	FlagOff       lipgloss.Style
	Help          lipgloss.Style
	Prompt        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		PageBody: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PageEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusPage: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		FlagOn:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		FlagOff:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Help:          lipgloss.NewStyle().Faint(true),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
