package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"mkbranch/internal/log"
)

func testCtx() context.Context {
	return log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false))
}

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// setupTestRepo creates a git repo with main branch, initial commit, and
// git config. Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := testCtx()
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

func TestIsInsideRepo(t *testing.T) {
	ctx := testCtx()

	t.Run("inside a repo", func(t *testing.T) {
		repoPath := setupTestRepo(t)
		if !IsInsideRepo(ctx, repoPath) {
			t.Error("IsInsideRepo = false inside a git repo")
		}
	})

	t.Run("outside a repo", func(t *testing.T) {
		dir := resolveTempDir(t)
		if IsInsideRepo(ctx, dir) {
			t.Error("IsInsideRepo = true outside a git repo")
		}
	})
}

func TestCurrentBranch(t *testing.T) {
	ctx := testCtx()

	t.Run("returns branch name", func(t *testing.T) {
		repoPath := setupTestRepo(t)
		branch, err := CurrentBranch(ctx, repoPath)
		if err != nil {
			t.Fatalf("CurrentBranch failed: %v", err)
		}
		if branch != "main" {
			t.Errorf("CurrentBranch = %q, want %q", branch, "main")
		}
	})

	t.Run("fails outside a repo", func(t *testing.T) {
		dir := resolveTempDir(t)
		if _, err := CurrentBranch(ctx, dir); err == nil {
			t.Error("CurrentBranch outside a repo = nil error, want error")
		}
	})
}

func TestHasUncommittedChanges(t *testing.T) {
	ctx := testCtx()

	t.Run("clean repo", func(t *testing.T) {
		repoPath := setupTestRepo(t)
		dirty, err := HasUncommittedChanges(ctx, repoPath)
		if err != nil {
			t.Fatalf("HasUncommittedChanges failed: %v", err)
		}
		if dirty {
			t.Error("HasUncommittedChanges = true for clean repo")
		}
	})

	t.Run("modified file", func(t *testing.T) {
		repoPath := setupTestRepo(t)
		readme := filepath.Join(repoPath, "README.md")
		if err := os.WriteFile(readme, []byte("# changed\n"), 0644); err != nil {
			t.Fatalf("failed to modify file: %v", err)
		}
		dirty, err := HasUncommittedChanges(ctx, repoPath)
		if err != nil {
			t.Fatalf("HasUncommittedChanges failed: %v", err)
		}
		if !dirty {
			t.Error("HasUncommittedChanges = false for dirty repo")
		}
	})
}

func TestCheckGit(t *testing.T) {
	if err := CheckGit(); err != nil {
		t.Errorf("CheckGit = %v, want nil (git required for tests)", err)
	}
}
