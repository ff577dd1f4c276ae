package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"

	"mkbranch/internal/config"
)

// Theme is the color palette for one background variant.
type Theme struct {
	Error color.Color // invalid field content
	Label color.Color // field labels
	Field color.Color // valid field content
}

// Built-in palettes per background variant.
var (
	DarkTheme = Theme{
		Error: lipgloss.Color("#EE4B2B"),
		Label: lipgloss.Color("#cccccc"),
		Field: lipgloss.Color("#ffffff"),
	}

	LightTheme = Theme{
		Error: lipgloss.Color("#ffffff"),
		Label: lipgloss.Color("#222222"),
		Field: lipgloss.Color("#EE4B2B"),
	}
)

// currentTheme holds the active theme
var currentTheme = DarkTheme

// Current returns the active theme.
func Current() Theme {
	return currentTheme
}

// Init selects the dark or light palette and applies any per-color
// overrides from config. Call after loading config and before
// rendering any UI.
func Init(cfg config.ThemeConfig) {
	dark := isDarkBackground(cfg)

	theme := LightTheme
	overrides := cfg.Light
	if dark {
		theme = DarkTheme
		overrides = cfg.Dark
	}

	if overrides.ErrorForeground != "" {
		theme.Error = lipgloss.Color(overrides.ErrorForeground)
	}
	if overrides.LabelForeground != "" {
		theme.Label = lipgloss.Color(overrides.LabelForeground)
	}
	if overrides.FieldForeground != "" {
		theme.Field = lipgloss.Color(overrides.FieldForeground)
	}

	currentTheme = theme
	applyTheme(theme)
}

// isDarkBackground honors an explicit dark_mode setting and otherwise
// queries the terminal.
func isDarkBackground(cfg config.ThemeConfig) bool {
	if cfg.DarkMode != nil {
		return *cfg.DarkMode
	}
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}

// applyTheme updates the global style variables to use the given theme.
func applyTheme(t Theme) {
	Error = t.Error
	Label = t.Label
	Field = t.Field

	ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	LabelStyle = lipgloss.NewStyle().Foreground(t.Label)
	FieldStyle = lipgloss.NewStyle().Foreground(t.Field)
}
