package config

// MergeLocal merges a per-project config into the global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy: global-only fields (Theme) are inherited as-is.
	merged := *global

	if local.Username != nil {
		merged.Username = *local.Username
	}
	if local.UsernameReadonly != nil {
		merged.UsernameReadonly = *local.UsernameReadonly
	}
	if local.JiraPrefix != nil {
		merged.JiraPrefix = *local.JiraPrefix
	}
	if len(local.BranchTypes) > 0 {
		merged.BranchTypes = append([]string(nil), local.BranchTypes...)
	}
	if local.CommandTemplate != nil {
		merged.CommandTemplate = *local.CommandTemplate
	}
	if local.CursorStart != nil {
		merged.CursorStart = *local.CursorStart
	}
	if local.TimeoutMinutes != nil {
		merged.TimeoutMinutes = *local.TimeoutMinutes
	}
	if local.AllowDirty != nil {
		merged.AllowDirty = *local.AllowDirty
	}
	if len(local.ForbiddenSourceBranches) > 0 {
		merged.ForbiddenSourceBranches = append([]string(nil), local.ForbiddenSourceBranches...)
	}

	if local.Regex.Username != "" {
		merged.Regex.Username = local.Regex.Username
	}
	if local.Regex.Type != "" {
		merged.Regex.Type = local.Regex.Type
	}
	if local.Regex.Jira != "" {
		merged.Regex.Jira = local.Regex.Jira
	}
	if local.Regex.Description != "" {
		merged.Regex.Description = local.Regex.Description
	}

	if local.FieldWidths.Username > 0 {
		merged.FieldWidths.Username = local.FieldWidths.Username
	}
	if local.FieldWidths.Type > 0 {
		merged.FieldWidths.Type = local.FieldWidths.Type
	}
	if local.FieldWidths.Jira > 0 {
		merged.FieldWidths.Jira = local.FieldWidths.Jira
	}
	if local.FieldWidths.Description > 0 {
		merged.FieldWidths.Description = local.FieldWidths.Description
	}

	return &merged
}
