// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// It wraps [os/exec.Cmd] to capture stderr and include it in error messages,
// making command failures more informative for users. Commands are always
// executed directly (argv form), never through a shell.
//
// # Design Notes
//
// mkbranch shells out to the git CLI rather than using Go git libraries.
// This ensures compatibility with user configurations (SSH keys, credential
// helpers, aliases) and keeps the configured branch-creation command template
// fully user-controllable.
package cmd
