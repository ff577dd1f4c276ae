// Package branch implements conventional branch name rules: per-field
// validation patterns, keystroke normalization, and formatting/parsing of
// the "{username}/{type}/{jira}/{description}" branch name form.
package branch

import (
	"fmt"
	"regexp"
	"strings"
)

// Field identifies one of the four branch name components.
type Field string

const (
	FieldUsername    Field = "username"
	FieldType        Field = "type"
	FieldJira        Field = "jira"
	FieldDescription Field = "description"
)

// Fields lists all fields in branch name order.
var Fields = []Field{FieldUsername, FieldType, FieldJira, FieldDescription}

// DefaultTypes is the built-in ordered set of allowed type tags.
var DefaultTypes = []string{"feat", "fix", "chore", "test", "refactor", "hotfix"}

// defaultPatterns are the built-in validation patterns. Config overrides
// that fail to compile fall back to these.
var defaultPatterns = map[Field]string{
	FieldUsername:    `^[a-zA-Z0-9_-]{2,7}$`,
	FieldType:        `^(feat|fix|chore|test|refactor|hotfix)$`,
	FieldJira:        `^[A-Z]{2,6}-[1-9][0-9]{0,4}$`,
	FieldDescription: `^[a-z][a-z0-9-]{0,30}$`,
}

// maxUsernameLen is the length the username normalizer truncates to.
const maxUsernameLen = 32

// Rules holds the compiled validation pattern and normalization rule for
// each field plus the ordered set of allowed type tags.
//
// The same compiled pattern backs validation, the preview, and branch name
// parsing, so a value that validates always round-trips through
// Format/Parse.
type Rules struct {
	full    map[Field]*regexp.Regexp // anchored, for full-match validation
	loose   map[Field]string         // pattern source with anchors stripped
	types   []string
	parse   *regexp.Regexp // combined anchored pattern for Parse
	typeSeg *regexp.Regexp // /type/ segment for the relaxed scan
	jiraAny *regexp.Regexp // jira pattern, unanchored, for the relaxed scan
}

// WarnFunc is called when a configured pattern override is invalid and the
// built-in default is used instead.
type WarnFunc func(field Field, pattern string, err error)

// DefaultRules returns Rules with the built-in patterns and type tags.
func DefaultRules() *Rules {
	r, err := NewRules(nil, nil, nil)
	if err != nil {
		// Built-in patterns always compile.
		panic(err)
	}
	return r
}

// NewRules builds Rules from optional pattern overrides and type tags.
// Empty or missing overrides use the built-in defaults; overrides that do
// not compile fall back to the default for that field, reported through
// warn. The returned error covers only internal pattern assembly, which
// cannot fail for compilable field patterns.
func NewRules(overrides map[Field]string, types []string, warn WarnFunc) (*Rules, error) {
	if len(types) == 0 {
		types = DefaultTypes
	}

	r := &Rules{
		full:  make(map[Field]*regexp.Regexp, len(Fields)),
		loose: make(map[Field]string, len(Fields)),
		types: append([]string(nil), types...),
	}

	for _, f := range Fields {
		pattern := defaultPatterns[f]
		if f == FieldType {
			// The type pattern follows the configured tag set.
			pattern = "^(" + joinQuoted(types) + ")$"
		}
		if override, ok := overrides[f]; ok && override != "" {
			if _, err := regexp.Compile(override); err != nil {
				if warn != nil {
					warn(f, override, err)
				}
			} else {
				pattern = override
			}
		}

		loose := StripAnchors(pattern)
		full, err := regexp.Compile(`\A(?:` + loose + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("compile %s pattern %q: %w", f, pattern, err)
		}
		r.full[f] = full
		r.loose[f] = loose
	}

	jiraAny, err := regexp.Compile(r.loose[FieldJira])
	if err != nil {
		return nil, fmt.Errorf("compile jira scan pattern: %w", err)
	}
	r.jiraAny = jiraAny
	r.typeSeg = regexp.MustCompile("/(" + joinQuoted(types) + ")/")

	parse, err := regexp.Compile(combinedPattern(r.loose))
	if err != nil {
		return nil, fmt.Errorf("combine field patterns: %w", err)
	}
	r.parse = parse

	return r, nil
}

// Valid reports whether text fully matches the field's pattern.
// The field's normalization (trim, case, space mapping) is applied once
// more before matching: normalization and validation are decoupled events,
// so validation never trusts its input to be pre-normalized. Partial
// matches are never accepted.
func (r *Rules) Valid(f Field, text string) bool {
	return r.full[f].MatchString(normalizeForMatch(f, text))
}

// Types returns the ordered allowed type tags.
func (r *Rules) Types() []string {
	return append([]string(nil), r.types...)
}

// DefaultType returns the first allowed type tag.
func (r *Rules) DefaultType() string {
	return r.types[0]
}

// IsType reports whether tag is one of the allowed type tags.
func (r *Rules) IsType(tag string) bool {
	for _, t := range r.types {
		if t == tag {
			return true
		}
	}
	return false
}

// normalizeForMatch applies the per-field trim/case/space normalization
// used before pattern matching.
func normalizeForMatch(f Field, text string) string {
	text = strings.TrimSpace(text)
	switch f {
	case FieldJira:
		return strings.ToUpper(text)
	case FieldDescription:
		return strings.ReplaceAll(strings.ToLower(text), " ", "-")
	}
	return text
}

// StripAnchors removes a leading ^ and a trailing $ from a pattern so it
// can be embedded in a larger expression.
func StripAnchors(pattern string) string {
	pattern = strings.TrimPrefix(pattern, "^")
	if strings.HasSuffix(pattern, "$") && !strings.HasSuffix(pattern, `\$`) {
		pattern = strings.TrimSuffix(pattern, "$")
	}
	return pattern
}

func joinQuoted(tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}
