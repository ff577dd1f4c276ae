// Package git provides the git operations mkbranch needs, via shell
// commands.
//
// Only two kinds of operations are required: repository/branch queries
// used before the dialog opens (inside-work-tree, current branch, dirty
// state) and the configured branch-creation command itself, which is
// executed by the runner package. All of them call the git CLI directly
// rather than using a Go git library, so user configuration (aliases,
// credential helpers, GIT_* environment) applies unchanged.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"mkbranch/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = fmt.Errorf("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and debug logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command, returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// IsInsideRepo returns true if dir (or the current working directory when
// dir is empty) is inside a git work tree.
func IsInsideRepo(ctx context.Context, dir string) bool {
	out, err := outputGit(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// CurrentBranch returns the current branch name.
// Fails loudly: an error is returned when not inside a repository or when
// the branch name comes back blank or unknown.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := outputGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %v", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" || strings.EqualFold(branch, "unknown") {
		return "", fmt.Errorf("current branch is blank or unknown")
	}
	return branch, nil
}

// HasUncommittedChanges returns true if the work tree has staged or
// unstaged changes.
func HasUncommittedChanges(ctx context.Context, dir string) (bool, error) {
	out, err := outputGit(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check work tree status: %v", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}
