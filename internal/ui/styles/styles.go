// Package styles provides shared lipgloss styles for the branch dialog.
//
// Colors come from the active theme, which is selected from config and
// terminal background. Call Init before rendering any UI.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Active colors, updated by Init.
var (
	// Error colors field content that fails validation.
	Error color.Color = lipgloss.Color("#EE4B2B")

	// Label colors the field labels.
	Label color.Color = lipgloss.Color("#cccccc")

	// Field colors valid field content.
	Field color.Color = lipgloss.Color("#ffffff")

	// Accent highlights the focused field and default action.
	Accent color.Color = lipgloss.Color("212")

	// Success is used for the created-branch confirmation.
	Success color.Color = lipgloss.Color("82")

	// Muted is used for disabled controls and hints.
	Muted color.Color = lipgloss.Color("240")
)

// Active styles, updated by Init.
var (
	// ErrorStyle renders invalid field content.
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// LabelStyle renders field labels.
	LabelStyle = lipgloss.NewStyle().Foreground(Label)

	// FieldStyle renders valid field content.
	FieldStyle = lipgloss.NewStyle().Foreground(Field)

	// AccentStyle renders the focused element
	AccentStyle = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	// SuccessStyle renders positive outcomes.
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// MutedStyle renders disabled controls and hints.
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// TitleStyle renders the dialog title.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// DialogBorder frames the form.
	DialogBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)
