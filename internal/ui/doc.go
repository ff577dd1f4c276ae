// Package ui implements the interactive branch creation dialog.
//
// The dialog is a single Bubbletea model: three text inputs, a
// fuzzy-filtered type picker, a live preview of the branch name, and
// the create/copy/cancel actions. Every keystroke flows through the
// form state in internal/form, so what is displayed is always the
// normalized, validated value.
//
// The TUI renders to stderr; stdout is reserved for the created
// branch name.
package ui
