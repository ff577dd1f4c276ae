package styles

import (
	"testing"

	"charm.land/lipgloss/v2"

	"mkbranch/internal/config"
)

func boolPtr(b bool) *bool { return &b }

func TestInit_DarkTheme(t *testing.T) {
	Init(config.ThemeConfig{DarkMode: boolPtr(true)})

	theme := Current()
	if theme.Error != lipgloss.Color("#EE4B2B") {
		t.Errorf("expected dark error color #EE4B2B, got %v", theme.Error)
	}
	if theme.Field != lipgloss.Color("#ffffff") {
		t.Errorf("expected dark field color #ffffff, got %v", theme.Field)
	}

	// Reset to default
	Init(config.ThemeConfig{DarkMode: boolPtr(true)})
}

func TestInit_LightTheme(t *testing.T) {
	Init(config.ThemeConfig{DarkMode: boolPtr(false)})

	theme := Current()
	if theme.Label != lipgloss.Color("#222222") {
		t.Errorf("expected light label color #222222, got %v", theme.Label)
	}

	Init(config.ThemeConfig{DarkMode: boolPtr(true)})
}

func TestInit_CustomColors(t *testing.T) {
	Init(config.ThemeConfig{
		DarkMode: boolPtr(true),
		Dark: config.Palette{
			ErrorForeground: "#ff0000",
			LabelForeground: "#00ff00",
		},
	})

	theme := Current()
	if theme.Error != lipgloss.Color("#ff0000") {
		t.Errorf("expected overridden error color #ff0000, got %v", theme.Error)
	}
	if theme.Label != lipgloss.Color("#00ff00") {
		t.Errorf("expected overridden label color #00ff00, got %v", theme.Label)
	}
	// Field keeps the variant default when not overridden
	if theme.Field != lipgloss.Color("#ffffff") {
		t.Errorf("expected default field color #ffffff, got %v", theme.Field)
	}

	Init(config.ThemeConfig{DarkMode: boolPtr(true)})
}

func TestInit_OverridesApplyToSelectedVariantOnly(t *testing.T) {
	Init(config.ThemeConfig{
		DarkMode: boolPtr(false),
		Dark:     config.Palette{ErrorForeground: "#ff0000"},
	})

	theme := Current()
	if theme.Error != lipgloss.Color("#ffffff") {
		t.Errorf("dark override leaked into light theme: got %v", theme.Error)
	}

	Init(config.ThemeConfig{DarkMode: boolPtr(true)})
}
