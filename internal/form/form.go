// Package form holds the dialog's field state machine: each input event
// runs normalization, validation, and the derived preview/enablement
// recomputation. The package is free of UI toolkit dependencies; the
// hosting UI layer feeds it text changes and reads the derived state back.
package form

import (
	"strings"

	"mkbranch/internal/branch"
)

// Action identifies the dialog action that reacts to the return key.
type Action int

const (
	// ActionCancel is the default action while any field is invalid.
	ActionCancel Action = iota
	// ActionSubmit becomes the default action when all fields are valid.
	ActionSubmit
)

// FieldState is the outcome of the latest input event on one field.
type FieldState struct {
	Text   string // normalized text
	Cursor int    // cursor position, clamped to Text
	Valid  bool
}

// Form tracks the four field states and the derived dialog state.
// It has no history: every input event recomputes the derived values
// from the current field texts.
type Form struct {
	rules         *branch.Rules
	fields        map[branch.Field]FieldState
	ready         bool
	defaultAction Action
}

// New creates a Form with all fields empty and the cancel action as
// default.
func New(rules *branch.Rules) *Form {
	f := &Form{
		rules:         rules,
		fields:        make(map[branch.Field]FieldState, len(branch.Fields)),
		defaultAction: ActionCancel,
	}
	for _, field := range branch.Fields {
		f.fields[field] = FieldState{}
	}
	return f
}

// OnFieldChanged applies an input event to one field: the raw text is
// normalized (cursor carried along), validated, and the dialog's derived
// state recomputed. Returns the resulting field state.
func (f *Form) OnFieldChanged(field branch.Field, text string, cursor int) FieldState {
	normalized, cursor := f.rules.Normalize(field, text, cursor)
	state := FieldState{
		Text:   normalized,
		Cursor: cursor,
		Valid:  f.rules.Valid(field, normalized),
	}
	f.fields[field] = state
	f.recompute()
	return state
}

// Field returns the current state of one field.
func (f *Form) Field(field branch.Field) FieldState {
	return f.fields[field]
}

// Ready reports whether all four fields are valid. Submit and copy
// controls are enabled exactly when Ready is true.
func (f *Form) Ready() bool {
	return f.ready
}

// DefaultAction returns the action the return key should trigger.
func (f *Form) DefaultAction() Action {
	return f.defaultAction
}

// Preview returns the in-progress branch name draft: the values of the
// currently valid fields joined with '/', omitting invalid or empty
// fields. Never produces leading, trailing, or doubled separators.
func (f *Form) Preview() string {
	parts := make([]string, 0, len(branch.Fields))
	for _, field := range branch.Fields {
		if s := f.fields[field]; s.Valid && s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, "/")
}

// BranchName returns the canonical branch name built from all four
// fields. Only meaningful when Ready is true.
func (f *Form) BranchName() string {
	return branch.Format(
		f.fields[branch.FieldUsername].Text,
		f.fields[branch.FieldType].Text,
		f.fields[branch.FieldJira].Text,
		f.fields[branch.FieldDescription].Text,
	)
}

// recompute derives ready and the default action from field validity.
// Entering ready promotes submit to the default action; leaving ready
// demotes it back to cancel.
func (f *Form) recompute() {
	wasReady := f.ready
	f.ready = true
	for _, field := range branch.Fields {
		if !f.fields[field].Valid {
			f.ready = false
			break
		}
	}
	if f.ready && !wasReady {
		f.defaultAction = ActionSubmit
	} else if !f.ready && wasReady {
		f.defaultAction = ActionCancel
	}
}
