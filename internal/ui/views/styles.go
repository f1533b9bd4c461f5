package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Breadcrumb  lipgloss.Style
	Back        lipgloss.Style
	Dim         lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Entry       lipgloss.Style
	Selected    lipgloss.Style
	LineNumber  lipgloss.Style
	Spinner     lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Breadcrumb: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Back:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Dim:        lipgloss.NewStyle().Faint(true),
		Help:       lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Entry:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		StatusInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
