package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"mkbranch/internal/branch"
)

// DefaultCommandTemplate is the branch creation command run on submit.
// {branch_name} is replaced with the finished branch name.
const DefaultCommandTemplate = `git branch --quiet --create --track inherit "{branch_name}"`

// Cursor start positions for the dialog.
const (
	CursorUsername      = "username"
	CursorType          = "type"
	CursorJiraStart     = "jira_start"
	CursorJiraAfterDash = "jira_after_dash"
	CursorDescription   = "description"
)

var cursorStarts = []string{
	CursorUsername, CursorType, CursorJiraStart, CursorJiraAfterDash, CursorDescription,
}

// RegexConfig holds per-field validation pattern overrides.
// Patterns that fail to compile fall back to the built-in defaults with a
// logged warning; they never abort startup.
type RegexConfig struct {
	Username    string `toml:"username"`
	Type        string `toml:"type"`
	Jira        string `toml:"jira"`
	Description string `toml:"description"`
}

// FieldWidths holds display widths (in cells) for the dialog fields.
type FieldWidths struct {
	Username    int `toml:"username"`
	Type        int `toml:"type"`
	Jira        int `toml:"jira"`
	Description int `toml:"description"`
}

// Palette holds the foreground colors for one theme variant.
type Palette struct {
	ErrorForeground string `toml:"error_foreground"`
	LabelForeground string `toml:"label_foreground"`
	FieldForeground string `toml:"field_foreground"`
}

// ThemeConfig selects and overrides the dialog color palette.
type ThemeConfig struct {
	DarkMode *bool   `toml:"dark_mode"` // nil = follow terminal background
	Dark     Palette `toml:"dark"`
	Light    Palette `toml:"light"`
}

// Config holds the mkbranch configuration.
type Config struct {
	Username                string      `toml:"username"`          // overrides the OS-detected user
	UsernameReadonly        bool        `toml:"username_readonly"` // lock the username field
	JiraPrefix              string      `toml:"jira_prefix"`       // issue id seed, e.g. "ABC-"
	BranchTypes             []string    `toml:"branch_types"`      // ordered allowed type tags
	CommandTemplate         string      `toml:"branch_create_command_template"`
	CursorStart             string      `toml:"cursor_start"`
	TimeoutMinutes          int         `toml:"timeout_minutes"` // <=0 disables the inactivity timeout
	AllowDirty              bool        `toml:"allow_dirty"`
	ForbiddenSourceBranches []string    `toml:"forbidden_source_branches"`
	Regex                   RegexConfig `toml:"regex"`
	FieldWidths             FieldWidths `toml:"field_widths"`
	Theme                   ThemeConfig `toml:"theme"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BranchTypes:     nil, // branch.DefaultTypes applies
		CommandTemplate: DefaultCommandTemplate,
		CursorStart:     CursorDescription,
		TimeoutMinutes:  10,
	}
}

// RegexOverrides returns the configured pattern overrides keyed by field.
func (c *Config) RegexOverrides() map[branch.Field]string {
	return map[branch.Field]string{
		branch.FieldUsername:    c.Regex.Username,
		branch.FieldType:        c.Regex.Type,
		branch.FieldJira:        c.Regex.Jira,
		branch.FieldDescription: c.Regex.Description,
	}
}

// Timeout returns the inactivity timeout, or zero when disabled.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutMinutes <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

// ForbiddenPatterns compiles forbidden_source_branches.
// Invalid patterns are a configuration error: the dialog must not open
// when the source branch gate cannot be evaluated.
func (c *Config) ForbiddenPatterns() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(c.ForbiddenSourceBranches))
	for _, p := range c.ForbiddenSourceBranches {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid forbidden_source_branches pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// configPath returns the path to the global config file.
func configPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mkbranch", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mkbranch", "config.toml"), nil
}

// Load reads the global config file.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFile(path)
}

// loadFile reads and validates one config file.
func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := validate(&cfg, path); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// validate checks enum fields and other constraints that should abort
// startup rather than be silently papered over.
func validate(cfg *Config, path string) error {
	if cfg.CursorStart == "" {
		cfg.CursorStart = CursorDescription
	}
	if !validCursorStart(cfg.CursorStart) {
		return fmt.Errorf("invalid cursor_start %q in %s: must be one of %v", cfg.CursorStart, path, cursorStarts)
	}
	if cfg.CommandTemplate == "" {
		cfg.CommandTemplate = DefaultCommandTemplate
	}
	if _, err := cfg.ForbiddenPatterns(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, tag := range cfg.BranchTypes {
		if tag == "" {
			return fmt.Errorf("empty branch_types entry in %s", path)
		}
	}
	return nil
}

func validCursorStart(s string) bool {
	for _, v := range cursorStarts {
		if v == s {
			return true
		}
	}
	return false
}
