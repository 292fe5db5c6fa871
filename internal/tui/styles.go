// Package tui: Lipgloss style constants for the plan browser theme.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all theme-aware Lipgloss styles.
type Styles struct {
	// Colors
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color

	// Component styles
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	GroupTitle  lipgloss.Style
	RowKeep     lipgloss.Style
	RowDelete   lipgloss.Style
	BadgeKeep   lipgloss.Style
	BadgeDelete lipgloss.Style
	Footer      lipgloss.Style
	FooterKey   lipgloss.Style
}

// newStyles returns the default dark theme styles.
func newStyles() Styles {
	primary := lipgloss.Color("#8CB4DE")
	accent := lipgloss.Color("#56E0A0")
	danger := lipgloss.Color("#F56565")
	success := lipgloss.Color("#68D391")
	muted := lipgloss.Color("#4A5568")
	text := lipgloss.Color("#E2E8F0")

	return Styles{
		Primary: primary, Accent: accent, Danger: danger,
		Success: success, Muted: muted, Text: text,

		Header: lipgloss.NewStyle().
			Foreground(text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(muted),
		HeaderTitle: lipgloss.NewStyle().Foreground(primary).Bold(true),
		GroupTitle:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		RowKeep:     lipgloss.NewStyle().Foreground(text),
		RowDelete:   lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		BadgeKeep:   lipgloss.NewStyle().Foreground(success).Bold(true),
		BadgeDelete: lipgloss.NewStyle().Foreground(danger).Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(muted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(muted),
		FooterKey: lipgloss.NewStyle().Foreground(primary).Bold(true),
	}
}
