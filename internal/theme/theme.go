package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item              *lipgloss.Style
	ItemIndicator     *lipgloss.Style
	FocusedIndicator  *lipgloss.Style
	FocusedItem       *lipgloss.Style
	OpenItem          *lipgloss.Style
	Cell              *lipgloss.Style
	FocusedCell       *lipgloss.Style
	KeyHint           *lipgloss.Style
	SubmenuArrow      *lipgloss.Style
	Column            *lipgloss.Style
	Error             *lipgloss.Style
	Info              *lipgloss.Style
	Header            *lipgloss.Style
	Footer            *lipgloss.Style
	SearchPrompt      *lipgloss.Style
	SearchText        *lipgloss.Style
	SearchPlaceholder *lipgloss.Style
	SearchMatch       *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	FocusedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	FocusedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	OpenItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Cell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).PaddingRight(1),
	),
	FocusedCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).PaddingRight(1),
	),
	KeyHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SubmenuArrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Column: ptr(
		lipgloss.NewStyle().PaddingRight(2),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	SearchText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SearchPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SearchMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
