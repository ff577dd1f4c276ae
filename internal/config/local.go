package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-project config file, discovered by
// walking up from the working directory.
const LocalConfigFileName = ".mkbranch.toml"

// LocalConfig holds per-project overrides from .mkbranch.toml.
// Pointer fields and zero values mean "not set" (inherit from global).
// Theme is global-only.
type LocalConfig struct {
	Username                *string     `toml:"username"`
	UsernameReadonly        *bool       `toml:"username_readonly"`
	JiraPrefix              *string     `toml:"jira_prefix"`
	BranchTypes             []string    `toml:"branch_types"`
	CommandTemplate         *string     `toml:"branch_create_command_template"`
	CursorStart             *string     `toml:"cursor_start"`
	TimeoutMinutes          *int        `toml:"timeout_minutes"`
	AllowDirty              *bool       `toml:"allow_dirty"`
	ForbiddenSourceBranches []string    `toml:"forbidden_source_branches"`
	Regex                   RegexConfig `toml:"regex"`
	FieldWidths             FieldWidths `toml:"field_widths"`
}

// FindLocal walks from startDir up to the filesystem root and returns the
// path of the first .mkbranch.toml found, or "" if there is none.
func FindLocal(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, LocalConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// LoadLocal reads a per-project config starting the upward search at
// startDir. Returns nil (no error) when no file is found.
// Returns an error only on parse or validation failure.
func LoadLocal(startDir string) (*LocalConfig, error) {
	path := FindLocal(startDir)
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", path, err)
	}

	var local LocalConfig
	if err := toml.Unmarshal(data, &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", path, err)
	}

	if local.CursorStart != nil && !validCursorStart(*local.CursorStart) {
		return nil, fmt.Errorf("invalid cursor_start %q in %s: must be one of %v", *local.CursorStart, path, cursorStarts)
	}
	for _, tag := range local.BranchTypes {
		if tag == "" {
			return nil, fmt.Errorf("empty branch_types entry in %s", path)
		}
	}

	return &local, nil
}
