package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mkbranch/internal/git"
	"mkbranch/internal/log"
)

// Result is the outcome of one branch creation command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration

	// Err is non-nil when the creation failed: a non-zero exit, a
	// command that could not be started, or a zero exit that left the
	// current branch unchanged.
	Err error
}

// OK reports whether the branch was created and checked out.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the command's diagnostic output, preferring stderr.
func (r Result) Message() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// CurrentBranchFunc reports the branch currently checked out in dir.
type CurrentBranchFunc func(ctx context.Context, dir string) (string, error)

// Runner executes branch creation commands in a fixed working
// directory.
type Runner struct {
	dir string
	env []string

	// currentBranch is swapped out in tests.
	currentBranch CurrentBranchFunc
}

// New returns a Runner for the given repository directory. env is the
// environment for the spawned command; nil inherits the process
// environment.
func New(dir string, env []string) *Runner {
	return &Runner{
		dir:           dir,
		env:           env,
		currentBranch: git.CurrentBranch,
	}
}

// Create resolves the command template for branchName and runs it to
// completion. The command is executed directly, never through a shell.
// After a zero exit the current branch is re-read and compared against
// branchName; a mismatch is reported as a failure even though the
// command itself succeeded.
func (r *Runner) Create(ctx context.Context, branchName, template string) Result {
	logger := log.FromContext(ctx)

	argv, err := BuildArgv(template, branchName, logger.Warnf)
	if err != nil {
		return Result{ExitCode: 1, Err: err}
	}

	if logger.IsDebug() {
		logger.Debug("running branch creation command",
			"argv", fmt.Sprintf("%q", argv),
			"env", strings.Join(log.FilterEnv(r.env), " "))
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = r.dir
	c.Env = r.env
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	runErr := c.Run()
	res := Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	logger.Debug("command finished", "elapsed", res.Elapsed, "stdout", res.Stdout, "stderr", res.Stderr)

	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			msg := res.Message()
			if msg == "" {
				msg = runErr.Error()
			}
			res.Err = fmt.Errorf("command failed with exit code %d: %s", res.ExitCode, msg)
		} else {
			res.ExitCode = 1
			res.Err = fmt.Errorf("failed to run %s: %w", argv[0], runErr)
		}
		return res
	}

	current, err := r.currentBranch(ctx, r.dir)
	if err != nil {
		res.ExitCode = 1
		res.Err = fmt.Errorf("failed to verify branch after creation: %w", err)
		return res
	}
	if current != branchName {
		res.ExitCode = 1
		res.Err = fmt.Errorf("expected branch %q but current branch is %q", branchName, current)
		return res
	}
	return res
}

// Task is a handle on an in-flight branch creation. The command runs
// to completion; there is no cancellation path.
type Task struct {
	done   chan struct{}
	result Result
}

// Start launches Create on its own goroutine and returns immediately.
func (r *Runner) Start(ctx context.Context, branchName, template string) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		t.result = r.Create(ctx, branchName, template)
		close(t.done)
	}()
	return t
}

// Result returns the outcome if the command has finished.
func (t *Task) Result() (Result, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return Result{}, false
	}
}

// Done is closed when the command has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the command has finished and returns its result.
func (t *Task) Wait() Result {
	<-t.done
	return t.result
}
