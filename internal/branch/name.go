package branch

import (
	"fmt"
	"strings"
)

// Components holds the four parts of a conventional branch name.
type Components struct {
	Username    string
	Type        string
	Jira        string
	Description string
}

// Format joins the four components into the canonical branch name:
// "{username}/{type}/{jira}/{description}". The description is lowercased
// and space-to-dash mapped at format time, which is a no-op for already
// normalized input.
func Format(username, typ, jira, description string) string {
	desc := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(description)), " ", "-")
	return fmt.Sprintf("%s/%s/%s/%s", username, typ, jira, desc)
}

// Parse extracts the four components from a full branch name using the
// same field patterns used for validation, joined with '/' and anchored
// as a whole, matched case-insensitively. Returns false for branch names
// that do not follow the convention; that is an expected outcome, not an
// error.
func (r *Rules) Parse(branchName string) (Components, bool) {
	m := r.parse.FindStringSubmatch(branchName)
	if m == nil {
		return Components{}, false
	}
	return Components{
		Username:    m[r.parse.SubexpIndex("username")],
		Type:        m[r.parse.SubexpIndex("type")],
		Jira:        m[r.parse.SubexpIndex("jira")],
		Description: m[r.parse.SubexpIndex("description")],
	}, true
}

// combinedPattern builds the full branch name pattern from the per-field
// patterns with their own anchors stripped.
func combinedPattern(loose map[Field]string) string {
	return fmt.Sprintf(`(?i)\A(?P<username>%s)/(?P<type>%s)/(?P<jira>%s)/(?P<description>%s)\z`,
		group(loose[FieldUsername]),
		group(loose[FieldType]),
		group(loose[FieldJira]),
		group(loose[FieldDescription]))
}

// group wraps a pattern fragment so alternations stay contained.
func group(pattern string) string {
	return "(?:" + pattern + ")"
}

// Scan is the relaxed, best-effort inspection of an arbitrary branch name
// used only to pre-fill fields: the issue id is searched anywhere in the
// string, and the type is taken from a '/tag/'-bracketed segment matching
// an allowed tag. Scan and Parse use different matching strategies and can
// disagree on malformed branch names; both results are empty strings when
// nothing is found.
func (r *Rules) Scan(branchName string) (jira, typ string) {
	if m := r.jiraAny.FindString(branchName); m != "" {
		jira = m
	}
	if m := r.typeSeg.FindStringSubmatch(branchName); m != nil {
		typ = m[1]
	}
	return jira, typ
}
