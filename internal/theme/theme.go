package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Status       *lipgloss.Style
	Footer       *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Band         *lipgloss.Style
	SelectedBand *lipgloss.Style
	ActiveBand   *lipgloss.Style
	Hint         *lipgloss.Style
	Spinner      *lipgloss.Style
	EntryTopic   *lipgloss.Style
	EntryTitle   *lipgloss.Style
	Empty        *lipgloss.Style

	// ProgressFrom and ProgressTo are the gradient ends of the pull bar.
	ProgressFrom string
	ProgressTo   string
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Band: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Align(lipgloss.Center),
	),
	SelectedBand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Align(lipgloss.Center),
	),
	ActiveBand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Bold(true).Align(lipgloss.Center),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Spinner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	EntryTopic: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	EntryTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	ProgressFrom: "#005FAF",
	ProgressTo:   "#00AFFF",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
