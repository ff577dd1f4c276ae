package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeGlobalConfig points XDG_CONFIG_HOME at a temp dir containing the
// given config content.
func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "mkbranch")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load = %v, want nil", err)
		}
		if cfg.CommandTemplate != DefaultCommandTemplate {
			t.Errorf("CommandTemplate = %q, want default", cfg.CommandTemplate)
		}
		if cfg.CursorStart != CursorDescription {
			t.Errorf("CursorStart = %q, want %q", cfg.CursorStart, CursorDescription)
		}
		if cfg.TimeoutMinutes != 10 {
			t.Errorf("TimeoutMinutes = %d, want 10", cfg.TimeoutMinutes)
		}
	})

	t.Run("reads all keys", func(t *testing.T) {
		writeGlobalConfig(t, `
username = "alice"
username_readonly = true
jira_prefix = "ABC-"
branch_types = ["story", "bug"]
branch_create_command_template = 'git switch -c "{branch_name}"'
cursor_start = "jira_after_dash"
timeout_minutes = 5
allow_dirty = true
forbidden_source_branches = ["^main$", "^release/.*$"]

[regex]
jira = "^[A-Z]{2}-[0-9]+$"

[field_widths]
description = 40

[theme]
dark_mode = true

[theme.dark]
error_foreground = "#FF0000"
`)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load = %v, want nil", err)
		}
		if cfg.Username != "alice" || !cfg.UsernameReadonly {
			t.Errorf("username = (%q, %v)", cfg.Username, cfg.UsernameReadonly)
		}
		if cfg.JiraPrefix != "ABC-" {
			t.Errorf("JiraPrefix = %q", cfg.JiraPrefix)
		}
		if len(cfg.BranchTypes) != 2 || cfg.BranchTypes[0] != "story" {
			t.Errorf("BranchTypes = %v", cfg.BranchTypes)
		}
		if cfg.CursorStart != CursorJiraAfterDash {
			t.Errorf("CursorStart = %q", cfg.CursorStart)
		}
		if got := cfg.Timeout(); got != 5*time.Minute {
			t.Errorf("Timeout = %v", got)
		}
		if !cfg.AllowDirty {
			t.Error("AllowDirty = false")
		}
		if cfg.Regex.Jira != "^[A-Z]{2}-[0-9]+$" {
			t.Errorf("Regex.Jira = %q", cfg.Regex.Jira)
		}
		if cfg.FieldWidths.Description != 40 {
			t.Errorf("FieldWidths.Description = %d", cfg.FieldWidths.Description)
		}
		if cfg.Theme.DarkMode == nil || !*cfg.Theme.DarkMode {
			t.Error("Theme.DarkMode not set")
		}
		if cfg.Theme.Dark.ErrorForeground != "#FF0000" {
			t.Errorf("Theme.Dark.ErrorForeground = %q", cfg.Theme.Dark.ErrorForeground)
		}
	})

	t.Run("invalid cursor_start is an error", func(t *testing.T) {
		writeGlobalConfig(t, `cursor_start = "bogus"`)
		if _, err := Load(); err == nil {
			t.Error("Load = nil error for invalid cursor_start")
		}
	})

	t.Run("invalid forbidden pattern is an error", func(t *testing.T) {
		writeGlobalConfig(t, `forbidden_source_branches = ["[unclosed"]`)
		if _, err := Load(); err == nil {
			t.Error("Load = nil error for invalid forbidden_source_branches")
		}
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		writeGlobalConfig(t, `username = [`)
		if _, err := Load(); err == nil {
			t.Error("Load = nil error for malformed TOML")
		}
	})
}

func TestTimeoutDisabled(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.TimeoutMinutes = 0
	if got := cfg.Timeout(); got != 0 {
		t.Errorf("Timeout = %v, want 0 (disabled)", got)
	}
	cfg.TimeoutMinutes = -3
	if got := cfg.Timeout(); got != 0 {
		t.Errorf("Timeout = %v, want 0 (disabled)", got)
	}
}

func TestLoadLocal(t *testing.T) {
	t.Parallel()

	t.Run("not found returns nil", func(t *testing.T) {
		t.Parallel()
		local, err := LoadLocal(t.TempDir())
		if err != nil {
			t.Fatalf("LoadLocal = %v, want nil", err)
		}
		if local != nil {
			t.Error("LoadLocal found a config in an empty dir")
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		nested := filepath.Join(root, "a", "b")
		if err := os.MkdirAll(nested, 0755); err != nil {
			t.Fatal(err)
		}
		content := "jira_prefix = \"XY-\"\n"
		if err := os.WriteFile(filepath.Join(root, LocalConfigFileName), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		local, err := LoadLocal(nested)
		if err != nil {
			t.Fatalf("LoadLocal = %v, want nil", err)
		}
		if local == nil || local.JiraPrefix == nil || *local.JiraPrefix != "XY-" {
			t.Errorf("LoadLocal = %+v, want jira_prefix XY-", local)
		}
	})

	t.Run("invalid cursor_start is an error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, LocalConfigFileName), []byte(`cursor_start = "nope"`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadLocal(dir); err == nil {
			t.Error("LoadLocal = nil error for invalid cursor_start")
		}
	})
}

func TestMergeLocal(t *testing.T) {
	t.Parallel()

	t.Run("nil local returns global", func(t *testing.T) {
		t.Parallel()
		global := Default()
		if got := MergeLocal(&global, nil); got != &global {
			t.Error("MergeLocal(nil) should return global unchanged")
		}
	})

	t.Run("local overrides set fields only", func(t *testing.T) {
		t.Parallel()
		global := Default()
		global.Username = "alice"
		global.JiraPrefix = "ABC-"
		global.Theme.Dark.ErrorForeground = "#FF0000"

		readonly := true
		timeout := 0
		local := &LocalConfig{
			UsernameReadonly: &readonly,
			TimeoutMinutes:   &timeout,
			BranchTypes:      []string{"story"},
			Regex:            RegexConfig{Jira: "^[A-Z]+-[0-9]+$"},
		}

		merged := MergeLocal(&global, local)
		if merged.Username != "alice" {
			t.Errorf("Username = %q, want inherited %q", merged.Username, "alice")
		}
		if !merged.UsernameReadonly {
			t.Error("UsernameReadonly not overridden")
		}
		if merged.TimeoutMinutes != 0 {
			t.Errorf("TimeoutMinutes = %d, want 0 (explicitly disabled locally)", merged.TimeoutMinutes)
		}
		if len(merged.BranchTypes) != 1 || merged.BranchTypes[0] != "story" {
			t.Errorf("BranchTypes = %v", merged.BranchTypes)
		}
		if merged.Regex.Jira != "^[A-Z]+-[0-9]+$" {
			t.Errorf("Regex.Jira = %q", merged.Regex.Jira)
		}
		if merged.Theme.Dark.ErrorForeground != "#FF0000" {
			t.Error("global-only Theme not inherited")
		}
		// global must be untouched
		if global.UsernameReadonly {
			t.Error("MergeLocal mutated the global config")
		}
	})
}
